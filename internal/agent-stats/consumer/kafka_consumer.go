package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/prediction-market-poc/internal/agent-stats/repository"
	sharedkafka "github.com/radieske/prediction-market-poc/internal/shared/kafka"
	"github.com/radieske/prediction-market-poc/pkg/contracts/events"
)

// Processor consome os eventos de trade/claim/combo e mantém a projeção
// de estatísticas dos agentes no Postgres. Trades que falham depois dos
// retries vão para a DLQ.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log    *zap.Logger
	Trades *kafka.Reader
	Claims *kafka.Reader
	Combos *kafka.Reader
	Repo   *repository.PostgresRepo
	DLQ    *kafka.Writer

	OnConsumed func()       // métricas (counter++)
	OnApplied  func()       // métricas
	OnError    func(string) // métricas por fase
}

// Run inicia um loop de consumo por tópico e bloqueia até o contexto encerrar.
func (p *Processor) Run(ctx context.Context) error {
	go p.loop(ctx, p.Claims, p.handleClaim)
	go p.loop(ctx, p.Combos, p.handleCombo)
	p.loop(ctx, p.Trades, p.handleTrade)
	return ctx.Err()
}

func (p *Processor) loop(ctx context.Context, r *kafka.Reader, handle func(context.Context, kafka.Message) error) {
	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed() // callback de métrica: mensagem consumida
		}

		if err := handle(ctx, m); err != nil {
			p.Log.Warn("apply failed", zap.String("topic", r.Config().Topic), zap.Error(err))
			if p.OnError != nil {
				p.OnError("apply")
			}
			continue
		}
		if p.OnApplied != nil {
			p.OnApplied()
		}
	}
}

func (p *Processor) handleTrade(ctx context.Context, m kafka.Message) error {
	var ev events.TradeExecuted
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		p.Log.Warn("invalid trade message", zap.Error(err))
		if p.OnError != nil {
			p.OnError("decode")
		}
		return nil
	}

	// Retry simples antes de desistir para a DLQ
	var err error
	for i := 0; i < 3; i++ {
		if err = p.Repo.ApplyTrade(ctx, ev.Trader, ev.Side, ev.Amount); err == nil {
			return nil
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}

	if p.DLQ != nil {
		_ = sharedkafka.WriteJSON(ctx, p.DLQ, ev.TradeID, m.Value)
	}
	return err
}

func (p *Processor) handleClaim(ctx context.Context, m kafka.Message) error {
	var ev events.WinningsClaimed
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		p.Log.Warn("invalid claim message", zap.Error(err))
		if p.OnError != nil {
			p.OnError("decode")
		}
		return nil
	}
	return p.Repo.ApplyClaim(ctx, ev.User, ev.Payout)
}

func (p *Processor) handleCombo(ctx context.Context, m kafka.Message) error {
	var ev events.ComboSettled
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		p.Log.Warn("invalid combo message", zap.Error(err))
		if p.OnError != nil {
			p.OnError("decode")
		}
		return nil
	}
	return p.Repo.ApplyComboSettled(ctx, ev.Owner, ev.Status, ev.Payout)
}
