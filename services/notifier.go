package services

import (
	"context"
	"encoding/json"
	"errors"

	"social-server/events"
	"social-server/ws"

	"go.uber.org/zap"
)

// Notifier delivers events to the recipient's open websockets and, when a
// relay is configured, forwards them to it as well (NATS in production).
type Notifier struct {
	conns *ws.Manager
	relay events.Publisher
	log   *zap.Logger
}

func NewNotifier(conns *ws.Manager, relay events.Publisher, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{conns: conns, relay: relay, log: log}
}

func (n *Notifier) Publish(ctx context.Context, evt events.Event) error {
	var errs []error

	if n.conns != nil && evt.Recipient != "" {
		payload, err := json.Marshal(evt)
		if err != nil {
			return err
		}
		sent, err := n.conns.SendToUser(evt.Recipient, payload)
		if err != nil && !errors.Is(err, ws.ErrNotConnected) {
			errs = append(errs, err)
		}
		if sent > 0 {
			n.log.Debug("event delivered",
				zap.String("type", string(evt.Type)),
				zap.String("recipient", evt.Recipient),
				zap.Int("connections", sent),
			)
		}
	}

	if n.relay != nil {
		if err := n.relay.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
