package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"social-server/cache"
	"social-server/events"
	"social-server/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, data)
	return nil
}

func (f *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error           { return nil }
func (f *fakeConn) Close() error                               { return nil }

type relay struct {
	events []events.Event
	err    error
}

func (r *relay) Publish(_ context.Context, evt events.Event) error {
	r.events = append(r.events, evt)
	return r.err
}

func TestNotifierDeliversToRecipient(t *testing.T) {
	mgr := ws.NewManager()
	bob, alice := &fakeConn{}, &fakeConn{}
	mgr.Register("bob", bob)
	mgr.Register("alice", alice)
	r := &relay{}
	n := NewNotifier(mgr, r, nil)

	evt := events.New(events.DirectMessageSent, "bob", map[string]string{"content": "hi"})
	require.NoError(t, n.Publish(context.Background(), evt))

	require.Len(t, bob.frames, 1)
	assert.Empty(t, alice.frames)
	var got struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(bob.frames[0], &got))
	assert.Equal(t, "dm.sent", got.Type)
	assert.Equal(t, "hi", got.Data["content"])
	assert.Len(t, r.events, 1)
}

func TestNotifierOfflineRecipient(t *testing.T) {
	n := NewNotifier(ws.NewManager(), nil, nil)
	err := n.Publish(context.Background(), events.New(events.FollowCreated, "nobody", nil))
	assert.NoError(t, err)
}

func TestNotifierReportsRelayFailure(t *testing.T) {
	boom := errors.New("nats down")
	n := NewNotifier(nil, &relay{err: boom}, nil)
	err := n.Publish(context.Background(), events.New(events.PostCreated, "bob", nil))
	assert.ErrorIs(t, err, boom)
}

func TestCacheSweeper(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(time.Nanosecond)
	c.SetMany(ctx, map[string]string{"a": "alice"})
	time.Sleep(time.Millisecond)

	s := NewCacheSweeper(c, time.Hour, nil)
	assert.Equal(t, 1, s.Stats()["total_entries"])
	s.Sweep()
	assert.Equal(t, 0, s.Stats()["total_entries"])
}
