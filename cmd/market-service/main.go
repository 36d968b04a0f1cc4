package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/prediction-market-poc/internal/engine"
	mhttp "github.com/radieske/prediction-market-poc/internal/market-service/http"
	"github.com/radieske/prediction-market-poc/internal/market-service/prices"
	kpub "github.com/radieske/prediction-market-poc/internal/market-service/producer"
	"github.com/radieske/prediction-market-poc/internal/market-service/wallet"
	"github.com/radieske/prediction-market-poc/internal/shared/config"
	"github.com/radieske/prediction-market-poc/internal/shared/db"
	"github.com/radieske/prediction-market-poc/internal/shared/kafka"
	"github.com/radieske/prediction-market-poc/internal/shared/logger"
	"github.com/radieske/prediction-market-poc/internal/shared/metrics"
	pgstore "github.com/radieske/prediction-market-poc/internal/store/postgres"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	store := pgstore.New(pg)
	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Fatal("schema", zap.Error(err))
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writers, um por tópico de saída
	publ := &kpub.KafkaPublisher{
		Trades:          kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTradeExecuted),
		MarketsCreated:  kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMarketCreated),
		MarketsResolved: kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMarketResolved),
		Claims:          kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicWinningsClaimed),
		CombosCreated:   kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicComboCreated),
		CombosSettled:   kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicComboSettled),
	}
	defer publ.Trades.Close()
	defer publ.MarketsCreated.Close()
	defer publ.MarketsResolved.Close()
	defer publ.Claims.Close()
	defer publ.CombosCreated.Close()
	defer publ.CombosSettled.Close()

	// deps
	core := engine.New(store, log)
	priceCache := prices.NewCache(rdb, 60*time.Second, cfg.RedisPubSubChannel)
	wcli := wallet.New(cfg.WalletURL) // wallet-service

	// HTTP público
	api := mhttp.NewServer(log, core, publ, priceCache, wcli)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})
	defer metricsSrv.Close()
	log.Info("metrics/health", zap.String("addr", metricsSrv.Addr))

	log.Info("market-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
