package prices

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Snapshot é o preço corrente de um mercado derivado dos pools,
// escrito no Redis a cada trade e transmitido via pub/sub para o
// hub websocket do query-service.
type Snapshot struct {
	MarketID uint64 `json:"marketId"`
	YesPrice string `json:"yes_price"` // probabilidade implícita, escala 10^18
	NoPrice  string `json:"no_price"`
	YesPool  string `json:"yes_pool"`
	NoPool   string `json:"no_pool"`
	Volume   string `json:"volume"`
	TsUnixMs int64  `json:"ts_unix_ms"`
}

type Cache struct {
	Client  *redis.Client
	TTL     time.Duration
	Channel string
}

func NewCache(c *redis.Client, ttl time.Duration, channel string) *Cache {
	return &Cache{Client: c, TTL: ttl, Channel: channel}
}

func key(marketID uint64) string {
	return "price:current:" + strconv.FormatUint(marketID, 10)
}

// SetCurrent grava o snapshot com TTL e o publica no canal de broadcast.
func (c *Cache) SetCurrent(ctx context.Context, s Snapshot) error {
	s.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := c.Client.Set(ctx, key(s.MarketID), b, c.TTL).Err(); err != nil {
		return err
	}
	return c.Client.Publish(ctx, c.Channel, b).Err()
}

// GetCurrent lê o snapshot do cache; ok=false quando expirado ou ausente.
func (c *Cache) GetCurrent(ctx context.Context, marketID uint64) (Snapshot, bool, error) {
	var s Snapshot
	b, err := c.Client.Get(ctx, key(marketID)).Bytes()
	if err == redis.Nil {
		return s, false, nil
	}
	if err != nil {
		return s, false, err
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, false, err
	}
	return s, true, nil
}
