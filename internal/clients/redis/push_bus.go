package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
)

// PushMessage is the payload fanned out to device delivery workers
// over the shared Redis channel.
type PushMessage struct {
	Tokens []string          `json:"tokens"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

type PushBus interface {
	Publish(ctx context.Context, msg PushMessage) error
	StartForwarder(ctx context.Context, onMsg func(m PushMessage)) error
	Close() error
}

type pushBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewPushBus(log *logger.Logger) (PushBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_PUSH_CHANNEL"))
	if ch == "" {
		ch = "push"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &pushBus{
		log:     log.With("service", "RedisPushBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *pushBus) Publish(ctx context.Context, msg PushMessage) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis push bus not initialized")
	}
	if len(msg.Tokens) == 0 {
		return nil
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *pushBus) StartForwarder(ctx context.Context, onMsg func(m PushMessage)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis push bus not initialized")
	}
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var msg PushMessage
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					b.log.Warn("bad redis push payload", "error", err)
					continue
				}
				onMsg(msg)
			}
		}
	}()

	return nil
}

func (b *pushBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
