package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ngo-finance-backend/internal/domain/notification"
)

// Logger writes every notification to a zerolog logger. Useful when no
// broker is configured, and as an audit tap next to the Publisher.
type Logger struct{ l zerolog.Logger }

// NewLogger uses the global logger when l is nil.
func NewLogger(l *zerolog.Logger) *Logger {
	if l == nil {
		return &Logger{l: log.Logger}
	}
	return &Logger{l: *l}
}

func (d *Logger) Dispatch(_ context.Context, n notification.Notification) error {
	roles := make([]string, 0, len(n.Recipients.Roles))
	for _, r := range n.Recipients.Roles {
		roles = append(roles, string(r))
	}
	d.l.Info().
		Str("notification_id", n.ID).
		Str("event", string(n.Event)).
		Strs("roles", roles).
		Interface("user_ids", n.Recipients.UserIDs).
		Interface("payload", n.Payload).
		Msg("notification")
	return nil
}

// Fanout hands a notification to every dispatcher and returns the first error.
type Fanout []notification.Dispatcher

func (f Fanout) Dispatch(ctx context.Context, n notification.Notification) error {
	var first error
	for _, d := range f {
		if err := d.Dispatch(ctx, n); err != nil && first == nil {
			first = err
		}
	}
	return first
}
