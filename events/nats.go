package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

const subjectPrefix = "social."

type natsConn interface {
	Publish(subj string, data []byte) error
	IsConnected() bool
	Drain() error
}

// NatsPublisher publishes each event as JSON on "social.<type>".
type NatsPublisher struct {
	conn natsConn
}

func ConnectNats(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("social-server"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NatsPublisher{conn: nc}, nil
}

func Subject(t Type) string {
	return subjectPrefix + string(t)
}

func (p *NatsPublisher) Publish(_ context.Context, evt Event) error {
	if p.conn == nil || !p.conn.IsConnected() {
		return nats.ErrConnectionClosed
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.conn.Publish(Subject(evt.Type), payload)
}

// Close drains pending messages and closes the connection.
func (p *NatsPublisher) Close() error {
	if p.conn == nil {
		return errors.New("nats publisher not connected")
	}
	return p.conn.Drain()
}
