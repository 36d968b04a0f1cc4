package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StartRedisSubscriber inicia uma goroutine que escuta o canal Redis Pub/Sub
// onde o market-service publica snapshots de preço e os repassa para os
// clientes WebSocket conectados via Hub.
func StartRedisSubscriber(ctx context.Context, r *redis.Client, channel string, hub *Hub, log *zap.Logger) {
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close() // encerra a inscrição ao finalizar o contexto
				return
			case msg := <-ch:
				if msg == nil {
					continue
				}
				var payload map[string]any
				if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
					log.Warn("ws subscriber unmarshal error", zap.Error(err))
					continue
				}
				marketID, ok := payload["marketId"].(float64)
				if !ok {
					continue
				}
				hub.Broadcast(MarketUpdate{MarketID: uint64(marketID), Payload: payload})
			}
		}
	}()
}
