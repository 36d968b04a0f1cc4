package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/prediction-market-poc/internal/agent-stats/consumer"
	"github.com/radieske/prediction-market-poc/internal/agent-stats/repository"
	"github.com/radieske/prediction-market-poc/internal/shared/config"
	"github.com/radieske/prediction-market-poc/internal/shared/db"
	"github.com/radieske/prediction-market-poc/internal/shared/kafka"
	"github.com/radieske/prediction-market-poc/internal/shared/logger"
)

var (
	consumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agent_stats_events_consumed_total",
		Help: "Eventos consumidos dos tópicos de trade/claim/combo",
	})
	applied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agent_stats_events_applied_total",
		Help: "Eventos aplicados na projeção de agentes",
	})
	errorsByPhase = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_stats_errors_total",
		Help: "Erros por fase do processamento",
	}, []string{"phase"})
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Conexão com banco de dados Postgres para a projeção de estatísticas
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	brokers := strings.Split(cfg.KafkaBrokers, ",")
	newReader := func(topic string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:  brokers,
			GroupID:  "agent-stats",
			Topic:    topic,
			MinBytes: 1e3,
			MaxBytes: 10e6,
		})
	}

	trades := newReader(cfg.TopicTradeExecuted)
	defer trades.Close()
	claims := newReader(cfg.TopicWinningsClaimed)
	defer claims.Close()
	combos := newReader(cfg.TopicComboSettled)
	defer combos.Close()

	// DLQ para trades que não aplicaram depois dos retries
	dlq := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTradeExecutedDLQ)
	defer dlq.Close()

	// Servidor HTTP para métricas Prometheus e healthcheck
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()
			if err := pg.PingContext(ctx); err != nil {
				http.Error(w, "pg", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		addr := ":" + cfg.MetricsPort
		log.Info("metrics/health", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	log.Info("agent-stats-worker started",
		zap.String("trades", cfg.TopicTradeExecuted),
		zap.String("claims", cfg.TopicWinningsClaimed),
		zap.String("combos", cfg.TopicComboSettled),
	)

	p := &consumer.Processor{
		Log:    log,
		Trades: trades,
		Claims: claims,
		Combos: combos,
		Repo:   &repository.PostgresRepo{DB: pg},
		DLQ:    dlq,

		OnConsumed: consumed.Inc,
		OnApplied:  applied.Inc,
		OnError:    func(phase string) { errorsByPhase.WithLabelValues(phase).Inc() },
	}

	if err := p.Run(context.Background()); err != nil && err != context.Canceled {
		log.Fatal("processor", zap.Error(err))
	}
}
