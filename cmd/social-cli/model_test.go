package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"social-server/client"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	loginErr error
	feed     []client.Post
	timeline []client.Post
	posted   []string
}

func (f *fakeAPI) Login(_ context.Context, username, _ string) (*client.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &client.Session{Token: "tok", UserID: "u1", Username: username}, nil
}

func (f *fakeAPI) Feed(context.Context, string) ([]client.Post, error) { return f.feed, nil }

func (f *fakeAPI) Timeline(context.Context, string) ([]client.Post, error) { return f.timeline, nil }

func (f *fakeAPI) CreatePost(_ context.Context, _ string, content string) (*client.Post, error) {
	f.posted = append(f.posted, content)
	f.timeline = append([]client.Post{{ID: "new", SenderName: "alice", Content: content}}, f.timeline...)
	return &f.timeline[0], nil
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		if r == ' ' {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// press sends a key and runs the resulting command, feeding its message back.
func press(t *testing.T, m tea.Model, key tea.KeyType) tea.Model {
	t.Helper()
	m, cmd := m.Update(tea.KeyMsg{Type: key})
	return drain(m, cmd)
}

func drain(m tea.Model, cmd tea.Cmd) tea.Model {
	for cmd != nil {
		msg := cmd()
		if _, quit := msg.(tea.QuitMsg); quit {
			return m
		}
		m, cmd = m.Update(msg)
	}
	return m
}

func login(t *testing.T, a *fakeAPI) model {
	t.Helper()
	var m tea.Model = initialModel(a)
	m = typeText(m, "alice")
	m = press(t, m, tea.KeyEnter)
	m = typeText(m, "secret1")
	m = press(t, m, tea.KeyEnter)
	return m.(model)
}

func TestLoginLoadsFeed(t *testing.T) {
	a := &fakeAPI{feed: []client.Post{{SenderName: "bea", Content: "hello"}}}
	m := login(t, a)

	assert.Equal(t, stepBrowsing, m.step)
	assert.Equal(t, "u1", m.session.UserID)
	require.Len(t, m.posts, 1)
	assert.Contains(t, m.View(), "bea: hello")
}

func TestLoginFailureReturnsToUsername(t *testing.T) {
	m := login(t, &fakeAPI{loginErr: errors.New("401: Invalid username or password")})

	assert.Equal(t, stepEnteringUsername, m.step)
	assert.Contains(t, m.View(), "Invalid username or password")
}

func TestTabTogglesTimeline(t *testing.T) {
	a := &fakeAPI{
		feed:     []client.Post{{SenderName: "bea", Content: "feed post"}},
		timeline: []client.Post{{SenderName: "cal", Content: "on my wall"}},
	}
	var m tea.Model = login(t, a)

	m = press(t, m, tea.KeyTab)
	assert.Equal(t, viewTimeline, m.(model).view)
	assert.Contains(t, m.View(), "cal: on my wall")

	m = press(t, m, tea.KeyTab)
	assert.Equal(t, viewFeed, m.(model).view)
}

func TestComposePost(t *testing.T) {
	a := &fakeAPI{}
	var m tea.Model = login(t, a)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, stepComposing, m.(model).step)

	// q is text while composing
	m = typeText(m, "quite nice")
	m = press(t, m, tea.KeyEnter)

	assert.Equal(t, []string{"quite nice"}, a.posted)
	assert.Equal(t, stepBrowsing, m.(model).step)
	assert.Equal(t, viewTimeline, m.(model).view)
	assert.Contains(t, m.View(), "alice: quite nice")
}

func TestComposeRejectsLongContent(t *testing.T) {
	a := &fakeAPI{}
	var m tea.Model = login(t, a)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(strings.Repeat("x", 281))})

	m = press(t, m, tea.KeyEnter)
	assert.Empty(t, a.posted)
	assert.Equal(t, stepComposing, m.(model).step)
	assert.Contains(t, m.View(), "cannot exceed 280")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stepBrowsing, m.(model).step)
}

func TestQuit(t *testing.T) {
	var m tea.Model = login(t, &fakeAPI{})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
