package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.auth.Register(ctx, "Alice", "Alice@Example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
		wantMsg  string
	}{
		{name: "same username", username: "Alice", email: "other@example.com", password: "secret1", wantErr: ErrUsernameTaken},
		{name: "username differs by case", username: "aLiCe", email: "other@example.com", password: "secret1", wantErr: ErrUsernameTaken},
		{name: "same email", username: "bob", email: "alice@example.com", password: "secret1", wantErr: ErrEmailTaken},
		{name: "missing username", username: " ", email: "x@example.com", password: "secret1", wantMsg: "Username is required"},
		{name: "username with spaces", username: "a b", email: "x@example.com", password: "secret1", wantMsg: "Username cannot contain spaces"},
		{name: "bad email", username: "bob", email: "bob.example.com", password: "secret1", wantMsg: "Invalid email"},
		{name: "short password", username: "bob", email: "bob@example.com", password: "123", wantMsg: "Password must be at least 6 characters"},
		{name: "password over 72 bytes", username: "bob", email: "bob@example.com", password: strings.Repeat("a", 73), wantMsg: "Password must be at most 72 bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, tt.username, tt.email, tt.password)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, KindConflict, KindOf(err))
				return
			}
			assert.EqualError(t, err, tt.wantMsg)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestLoginAndValidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, err := f.auth.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	token, got, err := f.auth.Login(ctx, "ALICE", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	claims, err := f.auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Alice", claims.Username)

	_, _, err = f.auth.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.auth.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.ValidateToken(token + "x")
	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.EqualError(t, err, "Invalid token")
}

func TestEditProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, err := f.auth.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, "bob", "bob@example.com", "secret1")
	require.NoError(t, err)

	// prime the name cache
	names, err := f.names.Resolve(ctx, []string{alice.ID})
	require.NoError(t, err)
	assert.Equal(t, "alice", names[alice.ID])

	_, err = f.auth.EditProfile(ctx, alice.ID, EditProfileInput{Username: ptr("BOB")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = f.auth.EditProfile(ctx, alice.ID, EditProfileInput{Email: ptr("bob@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// changing only the case of one's own name is allowed
	updated, err := f.auth.EditProfile(ctx, alice.ID, EditProfileInput{Username: ptr("ALICE")})
	require.NoError(t, err)
	assert.Equal(t, "ALICE", updated.Username)

	updated, err = f.auth.EditProfile(ctx, alice.ID, EditProfileInput{Username: ptr("Alicia"), Password: ptr("newsecret")})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Username)

	names, err = f.names.Resolve(ctx, []string{alice.ID})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", names[alice.ID])

	_, _, err = f.auth.Login(ctx, "alicia", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, "alicia", "newsecret")
	assert.NoError(t, err)

	_, err = f.auth.EditProfile(ctx, alice.ID, EditProfileInput{Password: ptr(strings.Repeat("é", 40))})
	assert.Equal(t, KindValidation, KindOf(err))
	assert.EqualError(t, err, "Password must be at most 72 bytes")

	// exactly at the limit still hashes
	_, err = f.auth.EditProfile(ctx, alice.ID, EditProfileInput{Password: ptr(strings.Repeat("a", 72))})
	assert.NoError(t, err)

	_, err = f.auth.EditProfile(ctx, "ghost", EditProfileInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	gone, stays := f.user(t, "gone"), f.user(t, "stays")
	require.NoError(t, f.follow.Follow(ctx, gone.ID, stays.ID))
	require.NoError(t, f.follow.Follow(ctx, stays.ID, gone.ID))
	_, err := f.post.CreatePost(ctx, gone.ID, stays.ID, "bye")
	require.NoError(t, err)
	_, err = f.post.CreatePost(ctx, stays.ID, stays.ID, "still here")
	require.NoError(t, err)
	_, err = f.dm.SendDirectMessage(ctx, stays.ID, gone.ID, "hello?")
	require.NoError(t, err)

	require.NoError(t, f.auth.DeleteAccount(ctx, gone.ID))

	_, err = f.auth.GetUsername(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	followers, err := f.follow.GetFollowers(ctx, stays.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)
	follows, err := f.follow.GetFollows(ctx, stays.ID)
	require.NoError(t, err)
	assert.Empty(t, follows)

	timeline, err := f.timeline.GetTimeline(ctx, stays.ID)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, "still here", timeline[0].Content)

	msgs, err := f.messages.ListConversation(ctx, stays.ID, gone.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	assert.ErrorIs(t, f.auth.DeleteAccount(ctx, gone.ID), ErrUserNotFound)
}

func TestGetUsernameAndSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "Alice")
	f.user(t, "malice")
	f.user(t, "bob")
	f.user(t, "al_ex")

	name, err := f.auth.GetUsername(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	found, err := f.auth.SearchUsers(ctx, "ALI")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alice", "malice"}, summaryNames(found))

	// wildcards are matched literally
	found, err = f.auth.SearchUsers(ctx, "_")
	require.NoError(t, err)
	assert.Equal(t, []string{"al_ex"}, summaryNames(found))

	found, err = f.auth.SearchUsers(ctx, "  ")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func summaryNames(users []UserSummary) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Username
	}
	return out
}
