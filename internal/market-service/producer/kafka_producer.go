package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/prediction-market-poc/pkg/contracts/events"
)

// KafkaPublisher publica os eventos de domínio do market-service,
// um writer por tópico.
type KafkaPublisher struct {
	Trades          *kafka.Writer
	MarketsCreated  *kafka.Writer
	MarketsResolved *kafka.Writer
	Claims          *kafka.Writer
	CombosCreated   *kafka.Writer
	CombosSettled   *kafka.Writer
}

func (p *KafkaPublisher) PublishTradeExecuted(ctx context.Context, e events.TradeExecuted) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Trades.WriteMessages(ctx, kafka.Message{Value: b})
}

func (p *KafkaPublisher) PublishMarketCreated(ctx context.Context, e events.MarketCreated) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.MarketsCreated.WriteMessages(ctx, kafka.Message{Value: b})
}

func (p *KafkaPublisher) PublishMarketResolved(ctx context.Context, e events.MarketResolved) error {
	e.Ts = time.Now()
	b, _ := json.Marshal(e)
	return p.MarketsResolved.WriteMessages(ctx, kafka.Message{Value: b})
}

func (p *KafkaPublisher) PublishWinningsClaimed(ctx context.Context, e events.WinningsClaimed) error {
	e.Ts = time.Now()
	b, _ := json.Marshal(e)
	return p.Claims.WriteMessages(ctx, kafka.Message{Value: b})
}

func (p *KafkaPublisher) PublishComboCreated(ctx context.Context, e events.ComboCreated) error {
	e.Ts = time.Now()
	b, _ := json.Marshal(e)
	return p.CombosCreated.WriteMessages(ctx, kafka.Message{Value: b})
}

func (p *KafkaPublisher) PublishComboSettled(ctx context.Context, e events.ComboSettled) error {
	e.Ts = time.Now()
	b, _ := json.Marshal(e)
	return p.CombosSettled.WriteMessages(ctx, kafka.Message{Value: b})
}
