package usecases

import (
	"context"

	"social-server/events"

	"go.uber.org/zap"
)

// publish delivers evt best effort; the write it reports on has already succeeded.
func publish(ctx context.Context, p events.Publisher, log *zap.Logger, evt events.Event) {
	if err := p.Publish(ctx, evt); err != nil {
		log.Warn("event publish failed",
			zap.String("type", string(evt.Type)),
			zap.String("recipient", evt.Recipient),
			zap.Error(err),
		)
	}
}

func orNop(p events.Publisher) events.Publisher {
	if p == nil {
		return events.Nop{}
	}
	return p
}

func orNopLogger(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
