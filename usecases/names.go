package usecases

import (
	"context"

	"social-server/cache"
	"social-server/entities"
	"social-server/repositories"
)

// UnknownUsername is shown for senders that no longer resolve to a user.
const UnknownUsername = "Unknown"

// NameResolver looks up display names in bulk, cache first.
type NameResolver struct {
	users repositories.UserRepository
	cache cache.UsernameCache
}

func NewNameResolver(users repositories.UserRepository, c cache.UsernameCache) *NameResolver {
	return &NameResolver{users: users, cache: c}
}

// Resolve returns a name for each distinct id; unresolved ids map to UnknownUsername.
func (r *NameResolver) Resolve(ctx context.Context, ids []string) (map[string]string, error) {
	ids = distinct(ids)
	names := make(map[string]string, len(ids))
	missing := ids
	if r.cache != nil {
		var found map[string]string
		found, missing = r.cache.GetMany(ctx, ids)
		for id, name := range found {
			names[id] = name
		}
	}

	if len(missing) > 0 {
		loaded, err := r.users.Usernames(ctx, missing)
		if err != nil {
			return nil, internalError(err)
		}
		if r.cache != nil {
			r.cache.SetMany(ctx, loaded)
		}
		for _, id := range missing {
			if name, ok := loaded[id]; ok {
				names[id] = name
			} else {
				names[id] = UnknownUsername
			}
		}
	}
	return names, nil
}

// Forget drops a cached name after the user changes or disappears.
func (r *NameResolver) Forget(ctx context.Context, id string) {
	if r.cache != nil {
		r.cache.Delete(ctx, id)
	}
}

// Views joins posts with their sender names, keeping the input order.
func (r *NameResolver) Views(ctx context.Context, posts []entities.Post) ([]entities.PostView, error) {
	views := make([]entities.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}
	senders := make([]string, 0, len(posts))
	for _, p := range posts {
		senders = append(senders, p.SenderID)
	}
	names, err := r.Resolve(ctx, senders)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		views = append(views, entities.PostView{
			ID:         p.ID,
			SenderID:   p.SenderID,
			SenderName: names[p.SenderID],
			ReceiverID: p.ReceiverID,
			Content:    p.Content,
			CreatedAt:  p.CreatedAt,
		})
	}
	return views, nil
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
