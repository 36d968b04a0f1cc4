package engine

import (
	"time"

	"github.com/holiman/uint256"
)

// Scale é a granularidade fixed-point dos valores monetários (attos, 10^-18).
var Scale = uint256.NewInt(1e18)

// Market é um mercado binário (YES/NO) com liquidez em pool constant-product.
// Depois de resolvido, pools e shares ficam congelados.
type Market struct {
	ID              uint64
	Creator         string
	Question        string
	Categories      []string
	EndTime         time.Time
	CreatedAt       time.Time
	YesPool         *uint256.Int
	NoPool          *uint256.Int
	TotalYesShares  *uint256.Int
	TotalNoShares   *uint256.Int
	Resolved        bool
	Outcome         *bool // nil até a resolução; true = YES
	Volume          *uint256.Int
}

// Position guarda o saldo de shares de um usuário em um mercado.
// Criada lazy no primeiro trade; Claimed vira true no máximo uma vez.
type Position struct {
	MarketID  uint64
	Owner     string
	YesShares *uint256.Int
	NoShares  *uint256.Int
	Claimed   bool
}

// OrderSide indica compra ou venda em uma ordem limite.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// OrderDuration define a validade de uma ordem limite.
type OrderDuration string

const (
	OrderGoodTillCancelled OrderDuration = "GTC"
	OrderImmediateOrCancel OrderDuration = "IOC"
)

// OrderStatus é o ciclo de vida de uma ordem limite.
type OrderStatus string

const (
	OrderStatusOpen            OrderStatus = "OPEN"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

// LimitOrder é aceita e armazenada, mas nunca casada (sem matching engine).
type LimitOrder struct {
	ID             uint64
	Owner          string
	MarketID       uint64
	IsYes          bool
	Side           OrderSide
	Price          *uint256.Int
	OriginalAmount *uint256.Int
	FilledAmount   *uint256.Int
	Duration       OrderDuration
	CreatedAt      time.Time
	Status         OrderStatus
}

// ComboStatus é o ciclo de vida de um combo (parlay).
type ComboStatus string

const (
	ComboStatusActive            ComboStatus = "ACTIVE"
	ComboStatusPartiallyResolved ComboStatus = "PARTIALLY_RESOLVED"
	ComboStatusWon               ComboStatus = "WON"
	ComboStatusLost              ComboStatus = "LOST"
	ComboStatusCancelled         ComboStatus = "CANCELLED"
)

// ComboLeg é uma perna de um combo: mercado, lado previsto e odds
// congeladas no momento da criação. Resolved/Won só mudam via cascata.
type ComboLeg struct {
	MarketID   uint64
	Prediction bool
	Odds       *uint256.Int // probabilidade implícita do lado previsto, escala 10^18
	Resolved   bool
	Won        *bool
}

// Combo é uma aposta múltipla: paga somente se todas as pernas acertarem.
type Combo struct {
	ID              uint64
	Owner           string
	Name            string
	Legs            []ComboLeg
	Stake           *uint256.Int
	PotentialPayout *uint256.Int
	CreatedAt       time.Time
	Status          ComboStatus
}

// AgentStrategy rotula a estratégia declarada de um agente de trading.
type AgentStrategy string

const (
	StrategyMomentum      AgentStrategy = "MOMENTUM"
	StrategyMeanReversion AgentStrategy = "MEAN_REVERSION"
	StrategyArbitrage     AgentStrategy = "ARBITRAGE"
	StrategyMarketMaker   AgentStrategy = "MARKET_MAKER"
	StrategySentiment     AgentStrategy = "SENTIMENT"
	StrategyCustom        AgentStrategy = "CUSTOM"
)

// TradingAgent é metadado de copy-trading: não executa nada sozinho.
// Os campos de estatística são projeções mantidas pelo agent-stats-worker.
type TradingAgent struct {
	ID             uint64
	Owner          string
	Name           string
	Strategy       AgentStrategy
	Config         string // JSON opaco
	Capital        *uint256.Int
	TotalVolume    *uint256.Int
	ProfitLoss     int64
	WinRate        uint64 // base 10000
	TotalTrades    uint64
	WinningTrades  uint64
	FollowersCount uint64
	IsActive       bool
	CreatedAt      time.Time
}

// AgentFollower registra quem copia um agente e com qual alocação.
type AgentFollower struct {
	AgentID        uint64
	Follower       string
	Allocation     *uint256.Int
	CopyTrades     bool
	StartedAt      time.Time
	TotalCopiedPnl int64
}

// FeedItemType classifica itens do feed social.
type FeedItemType string

const (
	FeedTrade         FeedItemType = "TRADE"
	FeedMarketCreated FeedItemType = "MARKET_CREATED"
	FeedComment       FeedItemType = "COMMENT"
	FeedFollow        FeedItemType = "FOLLOW"
	FeedAchievement   FeedItemType = "ACHIEVEMENT"
)

// FeedItem é uma entrada do feed social.
type FeedItem struct {
	ID            uint64
	Author        string
	ItemType      FeedItemType
	MarketID      *uint64
	Content       string
	Data          string
	LikesCount    uint64
	CommentsCount uint64
	CreatedAt     time.Time
}
