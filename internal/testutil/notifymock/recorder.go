package notifymock

import (
	"context"
	"sync"

	"ngo-finance-backend/internal/domain/notification"
)

var _ notification.Dispatcher = (*Recorder)(nil)

// Recorder keeps every dispatched notification. Err, when set, is returned
// from Dispatch after recording.
type Recorder struct {
	mu   sync.Mutex
	Sent []notification.Notification
	Err  error
}

func (r *Recorder) Dispatch(_ context.Context, n notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, n)
	return r.Err
}

func (r *Recorder) Events() []notification.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification.Event, 0, len(r.Sent))
	for _, n := range r.Sent {
		out = append(out, n.Event)
	}
	return out
}

// Last returns the most recent notification for ev.
func (r *Recorder) Last(ev notification.Event) (notification.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.Sent) - 1; i >= 0; i-- {
		if r.Sent[i].Event == ev {
			return r.Sent[i], true
		}
	}
	return notification.Notification{}, false
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = nil
}
