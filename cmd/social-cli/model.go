package main

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"social-server/client"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxContentLength = 280

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type api interface {
	Login(ctx context.Context, username, password string) (*client.Session, error)
	Feed(ctx context.Context, userID string) ([]client.Post, error)
	Timeline(ctx context.Context, userID string) ([]client.Post, error)
	CreatePost(ctx context.Context, receiverID, content string) (*client.Post, error)
}

type step int

const (
	stepEnteringUsername step = iota
	stepEnteringPassword
	stepLoggingIn
	stepBrowsing
	stepComposing
	stepPosting
)

type view int

const (
	viewFeed view = iota
	viewTimeline
)

func (v view) String() string {
	if v == viewTimeline {
		return "Timeline"
	}
	return "Feed"
}

type model struct {
	api          api
	step         step
	view         view
	username     string
	session      *client.Session
	posts        []client.Post
	cursor       int
	currentInput string
	message      string
	loading      bool
	quitting     bool
}

type loginSuccessMsg struct{ session *client.Session }
type postsLoadedMsg struct {
	view  view
	posts []client.Post
}
type postCreatedMsg struct{}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(a api) model {
	return model{api: a, step: stepEnteringUsername}
}

func (m model) Init() tea.Cmd {
	return nil
}

func loginUser(a api, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s, err := a.Login(ctx, username, password)
		if err != nil {
			return errMsg{fmt.Errorf("login failed: %w", err)}
		}
		return loginSuccessMsg{session: s}
	}
}

func loadPosts(a api, v view, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var (
			posts []client.Post
			err   error
		)
		if v == viewTimeline {
			posts, err = a.Timeline(ctx, userID)
		} else {
			posts, err = a.Feed(ctx, userID)
		}
		if err != nil {
			return errMsg{fmt.Errorf("loading %s: %w", strings.ToLower(v.String()), err)}
		}
		return postsLoadedMsg{view: v, posts: posts}
	}
}

func createPost(a api, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := a.CreatePost(ctx, "", content); err != nil {
			return errMsg{fmt.Errorf("posting: %w", err)}
		}
		return postCreatedMsg{}
	}
}

func (m model) typing() bool {
	return m.step == stepEnteringUsername || m.step == stepEnteringPassword || m.step == stepComposing
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginSuccessMsg:
		m.session = msg.session
		m.step = stepBrowsing
		m.loading = true
		m.message = successStyle.Render("✓ Logged in as " + msg.session.Username)
		return m, loadPosts(m.api, m.view, msg.session.UserID)

	case postsLoadedMsg:
		if msg.view != m.view {
			return m, nil
		}
		m.loading = false
		m.posts = msg.posts
		if m.cursor >= len(m.posts) {
			m.cursor = 0
		}

	case postCreatedMsg:
		m.step = stepBrowsing
		m.view = viewTimeline
		m.loading = true
		m.message = successStyle.Render("✓ Posted")
		return m, loadPosts(m.api, m.view, m.session.UserID)

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		m.loading = false
		switch m.step {
		case stepLoggingIn:
			m.step = stepEnteringUsername
		case stepPosting:
			m.step = stepComposing
		}
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyRunes, tea.KeySpace:
		if m.typing() {
			if msg.Type == tea.KeySpace {
				m.currentInput += " "
			} else {
				m.currentInput += string(msg.Runes)
			}
			return m, nil
		}
	case tea.KeyBackspace:
		if m.typing() && len(m.currentInput) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.currentInput)
			m.currentInput = m.currentInput[:len(m.currentInput)-size]
		}
		return m, nil
	case tea.KeyEsc:
		if m.step == stepComposing {
			m.currentInput = ""
			m.step = stepBrowsing
		}
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	}

	if m.step != stepBrowsing {
		return m, nil
	}
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case "tab":
		if m.view == viewFeed {
			m.view = viewTimeline
		} else {
			m.view = viewFeed
		}
		m.cursor = 0
		m.posts = nil
		m.loading = true
		return m, loadPosts(m.api, m.view, m.session.UserID)
	case "r":
		m.loading = true
		return m, loadPosts(m.api, m.view, m.session.UserID)
	case "n":
		m.step = stepComposing
		m.currentInput = ""
		m.message = ""
	}
	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	switch m.step {
	case stepEnteringUsername:
		if m.currentInput != "" {
			m.username = m.currentInput
			m.currentInput = ""
			m.step = stepEnteringPassword
		}

	case stepEnteringPassword:
		if m.currentInput != "" {
			password := m.currentInput
			m.currentInput = ""
			m.step = stepLoggingIn
			m.message = "Logging in..."
			return m, loginUser(m.api, m.username, password)
		}

	case stepComposing:
		content := strings.TrimSpace(m.currentInput)
		if content == "" {
			m.message = errorStyle.Render("✗ Content cannot be empty")
			return m, nil
		}
		if utf8.RuneCountInString(content) > maxContentLength {
			m.message = errorStyle.Render(fmt.Sprintf("✗ Content cannot exceed %d characters", maxContentLength))
			return m, nil
		}
		m.currentInput = ""
		m.step = stepPosting
		m.message = "Posting..."
		return m, createPost(m.api, content)
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Social CLI") + "\n")

	switch m.step {
	case stepEnteringUsername:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Enter your username:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", utf8.RuneCountInString(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepLoggingIn, stepPosting:
		s.WriteString(m.message + "\n")

	case stepBrowsing:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render(m.view.String()) + "\n\n")
		switch {
		case m.loading:
			s.WriteString("Loading...\n")
		case len(m.posts) == 0:
			s.WriteString(dimStyle.Render("Nothing here yet.") + "\n")
		}
		for i, p := range m.posts {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			line := fmt.Sprintf("%s: %s", p.SenderName, p.Content)
			s.WriteString(fmt.Sprintf("%s %s %s\n", cursor, style.Render(line), dimStyle.Render(p.CreatedAt.Local().Format("Jan 2 15:04"))))
		}
		s.WriteString("\n↑/↓ scroll, tab feed/timeline, n new post, r refresh, q quit\n")

	case stepComposing:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		count := utf8.RuneCountInString(m.currentInput)
		s.WriteString(promptStyle.Render("New post:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString(fmt.Sprintf("\n\n%d/%d  Enter to post, Esc to cancel\n", count, maxContentLength))
	}

	return s.String()
}
