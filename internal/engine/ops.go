package engine

import (
	"time"

	"github.com/holiman/uint256"
)

// Operation é o conjunto fechado de operações do núcleo, despachado por um
// único switch em Engine.Apply. Uma variante por operação.
type Operation interface{ isOperation() }

type CreateMarket struct {
	Question         string
	Categories       []string
	EndTime          time.Time
	InitialLiquidity *uint256.Int
}

type BuyShares struct {
	MarketID uint64
	IsYes    bool
	Shares   *uint256.Int
	MaxCost  *uint256.Int
}

type SellShares struct {
	MarketID    uint64
	IsYes       bool
	Shares      *uint256.Int
	MinProceeds *uint256.Int
}

type ResolveMarket struct {
	MarketID uint64
	Outcome  bool
}

type ClaimWinnings struct {
	MarketID uint64
}

type PlaceLimitOrder struct {
	MarketID uint64
	IsYes    bool
	Side     OrderSide
	Price    *uint256.Int
	Amount   *uint256.Int
	Duration OrderDuration
}

type CancelLimitOrder struct {
	OrderID uint64
}

// ComboLegInput é a perna pedida na criação: mercado e lado previsto.
type ComboLegInput struct {
	MarketID   uint64
	Prediction bool
}

type CreateCombo struct {
	Name  string
	Legs  []ComboLegInput
	Stake *uint256.Int
}

type CancelCombo struct {
	ComboID uint64
}

type CreateAgent struct {
	Name           string
	Strategy       AgentStrategy
	Config         string
	InitialCapital *uint256.Int
}

type UpdateAgentConfig struct {
	AgentID uint64
	Config  string
}

type ToggleAgent struct {
	AgentID uint64
	Active  bool
}

type FollowAgent struct {
	AgentID    uint64
	Allocation *uint256.Int
}

type UnfollowAgent struct {
	AgentID uint64
}

type PostComment struct {
	MarketID uint64
	Content  string
}

type FollowUser struct {
	User string
}

type UnfollowUser struct {
	User string
}

type LikeFeedItem struct {
	ItemID uint64
}

func (CreateMarket) isOperation()      {}
func (BuyShares) isOperation()         {}
func (SellShares) isOperation()        {}
func (ResolveMarket) isOperation()     {}
func (ClaimWinnings) isOperation()     {}
func (PlaceLimitOrder) isOperation()   {}
func (CancelLimitOrder) isOperation()  {}
func (CreateCombo) isOperation()       {}
func (CancelCombo) isOperation()       {}
func (CreateAgent) isOperation()       {}
func (UpdateAgentConfig) isOperation() {}
func (ToggleAgent) isOperation()       {}
func (FollowAgent) isOperation()       {}
func (UnfollowAgent) isOperation()     {}
func (PostComment) isOperation()       {}
func (FollowUser) isOperation()        {}
func (UnfollowUser) isOperation()      {}
func (LikeFeedItem) isOperation()      {}

// Response é o resultado estruturado de uma operação aplicada.
type Response interface{ isResponse() }

type MarketCreated struct {
	Market *Market
}

type SharesPurchased struct {
	Market *Market
	IsYes  bool
	Shares *uint256.Int
	Cost   *uint256.Int
}

type SharesSold struct {
	Market   *Market
	IsYes    bool
	Shares   *uint256.Int
	Proceeds *uint256.Int
}

type MarketResolved struct {
	Market *Market
	// Combos cujo status mudou com a cascata desta resolução
	SettledCombos []*Combo
}

type WinningsClaimed struct {
	MarketID uint64
	Payout   *uint256.Int
}

type OrderPlaced struct {
	Order *LimitOrder
}

type OrderCancelled struct {
	OrderID uint64
}

type ComboCreated struct {
	Combo *Combo
}

type ComboCancelled struct {
	ComboID uint64
	Owner   string
	// Stake a devolver ao dono
	Stake *uint256.Int
}

type AgentCreated struct {
	Agent *TradingAgent
}

type CommentPosted struct {
	FeedID uint64
}

// Ack confirma operações sem payload de retorno.
type Ack struct{}

func (MarketCreated) isResponse()   {}
func (SharesPurchased) isResponse() {}
func (SharesSold) isResponse()      {}
func (MarketResolved) isResponse()  {}
func (WinningsClaimed) isResponse() {}
func (OrderPlaced) isResponse()     {}
func (OrderCancelled) isResponse()  {}
func (ComboCreated) isResponse()    {}
func (ComboCancelled) isResponse()  {}
func (AgentCreated) isResponse()    {}
func (CommentPosted) isResponse()   {}
func (Ack) isResponse()             {}
