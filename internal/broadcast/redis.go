package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	relayBufferSize     = 32
	relayPublishTimeout = 2 * time.Second
)

// Publisher is the part of a Redis client the relay needs.
// *redis.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisRelay is an observer that republishes every snapshot to a Redis
// pub/sub channel so other processes can follow prices. Snapshots are
// queued by Deliver and published by Run.
type RedisRelay struct {
	client  Publisher
	channel string
	queue   chan []byte
	logger  *slog.Logger
}

// NewRedisRelay creates a relay publishing to channel.
func NewRedisRelay(client Publisher, channel string, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		queue:   make(chan []byte, relayBufferSize),
		logger:  logger,
	}
}

func (r *RedisRelay) ID() string { return "redis:" + r.channel }

// Deliver queues msg without blocking. Every snapshot carries the whole
// catalog, so when the queue is full the oldest one is discarded to make
// room and the relay is never dropped from the Hub.
func (r *RedisRelay) Deliver(msg []byte) bool {
	for {
		select {
		case r.queue <- msg:
			return true
		default:
		}
		select {
		case <-r.queue:
			r.logger.Warn("redis relay: queue full, discarding oldest snapshot",
				slog.String("channel", r.channel),
			)
		default:
		}
	}
}

// Run publishes queued snapshots until ctx is cancelled. A failed publish
// is logged and the snapshot dropped.
func (r *RedisRelay) Run(ctx context.Context) error {
	r.logger.Info("redis relay started", slog.String("channel", r.channel))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("redis relay stopped")
			return nil
		case msg := <-r.queue:
			pubCtx, cancel := context.WithTimeout(ctx, relayPublishTimeout)
			err := r.client.Publish(pubCtx, r.channel, msg).Err()
			cancel()
			if err != nil {
				r.logger.Warn("redis relay: publish failed",
					slog.String("channel", r.channel),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// NewRedisClient connects to the Redis server at url (redis://…) and
// pings it.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}
