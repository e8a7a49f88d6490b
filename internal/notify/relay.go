package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ChannelStaffOrders is the single pub/sub topic. Filtering by role or
// table would add further channels here rather than restructuring.
const ChannelStaffOrders = "staff:orders"

// RedisRelay shares events across server instances: Publish goes to a
// Redis channel, and every instance's relay feeds the messages it
// receives into its local hub. Emission is fire-and-forget, matching
// the hub's own delivery contract.
type RedisRelay struct {
	rdb    *redis.Client
	hub    *Hub
	logger *zap.Logger
}

func NewRedisRelay(addr string, hub *Hub, logger *zap.Logger) *RedisRelay {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisRelay{rdb: rdb, hub: hub, logger: logger}
}

func (r *RedisRelay) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("failed to encode event", zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.rdb.Publish(ctx, ChannelStaffOrders, payload).Err(); err != nil {
			r.logger.Warn("redis publish failed", zap.Error(err))
		}
	}()
}

// Run subscribes to the staff-orders channel and forwards payloads to
// the local hub until ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context) {
	sub := r.rdb.Subscribe(ctx, ChannelStaffOrders)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			r.hub.publishRaw([]byte(msg.Payload))
		case <-ctx.Done():
			return
		}
	}
}

func (r *RedisRelay) Close() error {
	return r.rdb.Close()
}
