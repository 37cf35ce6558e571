package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"social-server/auth"
	"social-server/cache"
	"social-server/db"
	"social-server/entities"
	"social-server/events"
	"social-server/repositories"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// spyUsers records the ids passed to Usernames.
type spyUsers struct {
	repositories.UserRepository
	mu    sync.Mutex
	calls [][]string
}

func (s *spyUsers) Usernames(ctx context.Context, ids []string) (map[string]string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, append([]string(nil), ids...))
	s.mu.Unlock()
	return s.UserRepository.Usernames(ctx, ids)
}

// failingFollows fails the test if the store is touched.
type failingFollows struct {
	repositories.FollowRepository
	t *testing.T
}

func (f failingFollows) ListFollowees(context.Context, string) ([]string, error) {
	f.t.Fatal("store must not be queried")
	return nil, nil
}

type failingPosts struct {
	repositories.PostRepository
	t *testing.T
}

func (f failingPosts) ListBySenders(context.Context, []string) ([]entities.Post, error) {
	f.t.Fatal("posts must not be queried")
	return nil, nil
}

type fixture struct {
	users     *spyUsers
	follows   repositories.FollowRepository
	posts     repositories.PostRepository
	messages  repositories.DirectMessageRepository
	publisher *recordingPublisher
	names     *NameResolver

	follow   *FollowUseCase
	post     *PostUseCase
	timeline *TimelineUseCase
	feed     *FeedUseCase
	dm       *DirectMessageUseCase
	auth     *AuthUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	f := &fixture{
		users:     &spyUsers{UserRepository: repositories.NewUserPgRepository(database)},
		follows:   repositories.NewFollowPgRepository(database),
		posts:     repositories.NewPostPgRepository(database),
		messages:  repositories.NewDirectMessagePgRepository(database),
		publisher: &recordingPublisher{},
	}
	f.names = NewNameResolver(f.users, cache.NewMemoryCache(time.Minute))
	f.follow = NewFollowUseCase(f.follows, f.users, f.publisher, nil)
	f.post = NewPostUseCase(f.posts, f.users, f.publisher, nil)
	f.timeline = NewTimelineUseCase(f.posts, f.names)
	f.feed = NewFeedUseCase(f.follow, f.posts, f.names)
	f.dm = NewDirectMessageUseCase(f.messages, f.users, f.publisher, nil)
	f.auth = NewAuthUseCase(f.users, auth.NewJWTService("test-secret", time.Hour), f.names, nil).WithHashCost(bcrypt.MinCost)
	return f
}

func (f *fixture) user(t *testing.T, username string) *entities.User {
	t.Helper()
	u := &entities.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}
