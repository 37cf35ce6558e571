// Package events carries domain notifications from the use cases to
// whatever transports are listening (websocket clients, NATS).
package events

import (
	"context"
	"time"
)

type Type string

const (
	PostCreated       Type = "post.created"
	DirectMessageSent Type = "dm.sent"
	FollowCreated     Type = "follow.created"
)

// Event is addressed to a single user.
type Event struct {
	Type      Type        `json:"type"`
	Recipient string      `json:"recipient"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

func New(t Type, recipient string, data interface{}) Event {
	return Event{Type: t, Recipient: recipient, Data: data, Timestamp: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
