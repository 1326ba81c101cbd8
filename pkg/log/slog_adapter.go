package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes capture events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
		slog.Int("local", int(event.LocalAddress)),
	}

	switch {
	case event.Frame != nil:
		attrs = append(attrs,
			slog.String("frame", fmt.Sprintf("% x", event.Frame.Data)),
			slog.String("header", fmt.Sprintf("%X->%X", event.Frame.Source, event.Frame.Destination)),
		)
		if event.Frame.Result != TxNone {
			attrs = append(attrs, slog.String("result", event.Frame.Result.String()))
		}
	case event.Message != nil:
		attrs = append(attrs,
			slog.String("message", event.Message.Name),
			slog.String("header", fmt.Sprintf("%X->%X", event.Message.Source, event.Message.Destination)),
			slog.String("disposition", event.Message.Disposition.String()),
		)
		if event.Message.Detail != "" {
			attrs = append(attrs, slog.String("detail", event.Message.Detail))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Ping != nil:
		attrs = append(attrs,
			slog.Int("target", int(event.Ping.Target)),
			slog.Bool("acked", event.Ping.Acked),
		)
		if event.Ping.Purpose != "" {
			attrs = append(attrs, slog.String("purpose", event.Ping.Purpose))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "cec", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
