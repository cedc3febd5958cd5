// Package notify delivers notifications produced by the usecases.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ngo-finance-backend/internal/domain/notification"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "ngo-finance:notifications"

var (
	_ notification.Dispatcher = (*Publisher)(nil)
	_ notification.Dispatcher = (*Logger)(nil)
	_ notification.Dispatcher = Fanout(nil)
)

// Publisher PUBLISHes each notification as JSON on a Redis channel.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{rdb: rdb, channel: channel}
}

func (p *Publisher) Channel() string { return p.channel }

func (p *Publisher) Dispatch(ctx context.Context, n notification.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", n.ID, err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}
	return nil
}
