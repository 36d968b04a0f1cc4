package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TradesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_trades_total",
		Help: "Trades executados, por lado (BUY/SELL)",
	}, []string{"side"})

	MarketsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "markets_created_total",
		Help: "Mercados criados",
	})

	MarketsResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "markets_resolved_total",
		Help: "Mercados resolvidos",
	})

	ClaimsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "winnings_claims_total",
		Help: "Claims de prêmio pagos",
	})

	CombosCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "combos_created_total",
		Help: "Combos criados",
	})

	CombosSettledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "combos_settled_total",
		Help: "Combos liquidados pela cascata, por status final",
	}, []string{"status"})

	WalletErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wallet_transfer_errors_total",
		Help: "Transferências best-effort que falharam",
	})

	PublishErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kafka_publish_errors_total",
		Help: "Eventos que falharam ao publicar",
	})
)
