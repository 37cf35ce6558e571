package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrNotConnected = errors.New("user not connected")

const writeWait = 10 * time.Second

// Conn is the part of *websocket.Conn the manager writes through.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client is one open connection. A user may hold several, one per tab or device.
type Client struct {
	UserID string
	conn   Conn
	mu     sync.Mutex
}

// Send writes a text frame; gorilla connections allow only one writer at a time.
func (c *Client) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *Client) Ping() error {
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Manager keeps track of active websocket connections per user.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]map[*Client]struct{} // userID -> clients
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]map[*Client]struct{})}
}

func (m *Manager) Register(userID string, conn Conn) *Client {
	c := &Client{UserID: userID, conn: conn}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connections[userID] == nil {
		m.connections[userID] = make(map[*Client]struct{})
	}
	m.connections[userID][c] = struct{}{}
	return c
}

// Unregister removes and closes a single connection.
func (m *Manager) Unregister(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if set, ok := m.connections[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(m.connections, c.UserID)
		}
	}
	_ = c.conn.Close()
}

// SendToUser writes payload to every connection of userID and returns how
// many writes succeeded. Connections that fail to write are dropped.
func (m *Manager) SendToUser(userID string, payload []byte) (int, error) {
	m.mu.RLock()
	clients := make([]*Client, 0, len(m.connections[userID]))
	for c := range m.connections[userID] {
		clients = append(clients, c)
	}
	m.mu.RUnlock()
	if len(clients) == 0 {
		return 0, ErrNotConnected
	}

	sent := 0
	var errs []error
	for _, c := range clients {
		if err := c.Send(payload); err != nil {
			errs = append(errs, err)
			m.Unregister(c)
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}

func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections[userID]) > 0
}

// List returns a copy of the connected user IDs.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.connections))
	for id := range m.connections {
		ids = append(ids, id)
	}
	return ids
}
