package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// Engine aplica operações contra o Store, uma por vez. O ambiente serializa
// as chamadas mutantes; o mutex só reforça read-modify-write por operação.
//
// Toda validação e precificação acontece antes da primeira escrita, então
// uma operação que falha não deixa mutação parcial.
type Engine struct {
	mu    sync.Mutex
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// Apply executa uma operação autenticada com o timestamp fornecido pelo
// ambiente e devolve a resposta da variante correspondente.
func (e *Engine) Apply(ctx context.Context, caller string, now time.Time, op Operation) (Response, error) {
	if caller == "" {
		return nil, ErrUnauthenticated
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch op := op.(type) {
	case CreateMarket:
		return e.createMarket(ctx, caller, now, op)
	case BuyShares:
		return e.buyShares(ctx, caller, now, op)
	case SellShares:
		return e.sellShares(ctx, caller, op)
	case ResolveMarket:
		return e.resolveMarket(ctx, caller, op)
	case ClaimWinnings:
		return e.claimWinnings(ctx, caller, op)
	case PlaceLimitOrder:
		return e.placeLimitOrder(ctx, caller, now, op)
	case CancelLimitOrder:
		return e.cancelLimitOrder(ctx, caller, op)
	case CreateCombo:
		return e.createCombo(ctx, caller, now, op)
	case CancelCombo:
		return e.cancelCombo(ctx, caller, op)
	case CreateAgent:
		return e.createAgent(ctx, caller, now, op)
	case UpdateAgentConfig:
		return e.updateAgentConfig(ctx, caller, op)
	case ToggleAgent:
		return e.toggleAgent(ctx, caller, op)
	case FollowAgent:
		return e.followAgent(ctx, caller, now, op)
	case UnfollowAgent:
		return e.unfollowAgent(ctx, caller, op)
	case PostComment:
		return e.postComment(ctx, caller, now, op)
	case FollowUser:
		return e.followUser(ctx, caller, op)
	case UnfollowUser:
		return e.unfollowUser(ctx, caller, op)
	case LikeFeedItem:
		return e.likeFeedItem(ctx, caller, op)
	default:
		return nil, fmt.Errorf("unknown operation %T", op)
	}
}

// createMarket semeia os dois pools com metade da liquidez inicial cada;
// os contadores de shares começam iguais aos pools.
func (e *Engine) createMarket(ctx context.Context, caller string, now time.Time, op CreateMarket) (Response, error) {
	half := new(uint256.Int).Div(op.InitialLiquidity, uint256.NewInt(2))

	id, err := e.store.NextMarketID(ctx)
	if err != nil {
		return nil, err
	}

	market := &Market{
		ID:             id,
		Creator:        caller,
		Question:       op.Question,
		Categories:     op.Categories,
		EndTime:        op.EndTime,
		CreatedAt:      now,
		YesPool:        new(uint256.Int).Set(half),
		NoPool:         new(uint256.Int).Set(half),
		TotalYesShares: new(uint256.Int).Set(half),
		TotalNoShares:  new(uint256.Int).Set(half),
		Volume:         new(uint256.Int),
	}

	if err := e.store.PutMarket(ctx, market); err != nil {
		return nil, err
	}

	if _, err := e.createFeedItem(ctx, caller, FeedMarketCreated, &id, op.Question, now); err != nil {
		return nil, err
	}

	return MarketCreated{Market: market}, nil
}

// buyShares compra do pool escolhido pagando no pool oposto. O custo vem
// da fórmula constant-product e respeita o teto max_cost do chamador.
func (e *Engine) buyShares(ctx context.Context, caller string, now time.Time, op BuyShares) (Response, error) {
	market, err := e.store.GetMarket(ctx, op.MarketID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, ErrMarketNotFound
	}
	if market.Resolved {
		return nil, ErrAlreadyResolved
	}
	if now.After(market.EndTime) {
		return nil, ErrMarketEnded
	}

	poolIn, poolOut := market.NoPool, market.YesPool
	if !op.IsYes {
		poolIn, poolOut = market.YesPool, market.NoPool
	}

	cost, err := CostToBuy(poolIn, poolOut, op.Shares)
	if err != nil {
		return nil, err
	}
	if cost.Cmp(op.MaxCost) > 0 {
		return nil, ErrCostExceedsLimit
	}

	position, err := e.positionOrDefault(ctx, caller, op.MarketID)
	if err != nil {
		return nil, err
	}
	totalVolume, err := e.store.TotalVolume(ctx)
	if err != nil {
		return nil, err
	}

	// Pré-condições conferidas; daqui em diante só mutação
	if op.IsYes {
		market.NoPool.Add(market.NoPool, cost)
		market.YesPool.Sub(market.YesPool, op.Shares)
		market.TotalYesShares.Add(market.TotalYesShares, op.Shares)
		position.YesShares.Add(position.YesShares, op.Shares)
	} else {
		market.YesPool.Add(market.YesPool, cost)
		market.NoPool.Sub(market.NoPool, op.Shares)
		market.TotalNoShares.Add(market.TotalNoShares, op.Shares)
		position.NoShares.Add(position.NoShares, op.Shares)
	}
	market.Volume.Add(market.Volume, cost)

	if err := e.store.PutMarket(ctx, market); err != nil {
		return nil, err
	}
	if err := e.store.PutPosition(ctx, position); err != nil {
		return nil, err
	}
	if err := e.store.SetTotalVolume(ctx, totalVolume.Add(totalVolume, cost)); err != nil {
		return nil, err
	}

	side := "NO"
	if op.IsYes {
		side = "YES"
	}
	content := fmt.Sprintf("Bought %s %s shares", op.Shares.Dec(), side)
	if _, err := e.createFeedItem(ctx, caller, FeedTrade, &op.MarketID, content, now); err != nil {
		return nil, err
	}

	return SharesPurchased{Market: market, IsYes: op.IsYes, Shares: op.Shares, Cost: cost}, nil
}

// sellShares vende de volta ao pool. Não há checagem de end_time: liquidar
// posição continua possível depois do prazo, até a resolução.
func (e *Engine) sellShares(ctx context.Context, caller string, op SellShares) (Response, error) {
	market, err := e.store.GetMarket(ctx, op.MarketID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, ErrMarketNotFound
	}
	if market.Resolved {
		return nil, ErrAlreadyResolved
	}

	position, err := e.store.GetPosition(ctx, caller, op.MarketID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, ErrPositionNotFound
	}

	// Subtração checada: vender mais do que a posição possui é erro,
	// nunca clamp silencioso
	held := position.YesShares
	if !op.IsYes {
		held = position.NoShares
	}
	if op.Shares.Cmp(held) > 0 {
		return nil, ErrInsufficientShares
	}

	poolIn, poolOut := market.YesPool, market.NoPool
	if !op.IsYes {
		poolIn, poolOut = market.NoPool, market.YesPool
	}

	proceeds, err := ProceedsFromSell(poolIn, poolOut, op.Shares)
	if err != nil {
		return nil, err
	}
	if proceeds.Cmp(op.MinProceeds) < 0 {
		return nil, ErrProceedsBelowMinimum
	}

	totalVolume, err := e.store.TotalVolume(ctx)
	if err != nil {
		return nil, err
	}

	if op.IsYes {
		market.YesPool.Add(market.YesPool, op.Shares)
		market.NoPool.Sub(market.NoPool, proceeds)
		market.TotalYesShares.Sub(market.TotalYesShares, op.Shares)
		position.YesShares.Sub(position.YesShares, op.Shares)
	} else {
		market.NoPool.Add(market.NoPool, op.Shares)
		market.YesPool.Sub(market.YesPool, proceeds)
		market.TotalNoShares.Sub(market.TotalNoShares, op.Shares)
		position.NoShares.Sub(position.NoShares, op.Shares)
	}
	market.Volume.Add(market.Volume, proceeds)

	if err := e.store.PutMarket(ctx, market); err != nil {
		return nil, err
	}
	if err := e.store.PutPosition(ctx, position); err != nil {
		return nil, err
	}
	if err := e.store.SetTotalVolume(ctx, totalVolume.Add(totalVolume, proceeds)); err != nil {
		return nil, err
	}

	return SharesSold{Market: market, IsYes: op.IsYes, Shares: op.Shares, Proceeds: proceeds}, nil
}

// resolveMarket congela o mercado e dispara a cascata sobre todos os combos
// que referenciam este mercado, na mesma chamada.
func (e *Engine) resolveMarket(ctx context.Context, caller string, op ResolveMarket) (Response, error) {
	market, err := e.store.GetMarket(ctx, op.MarketID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, ErrMarketNotFound
	}
	if market.Resolved {
		return nil, ErrAlreadyResolved
	}
	if market.Creator != caller {
		return nil, ErrNotAuthorized
	}

	outcome := op.Outcome
	market.Resolved = true
	market.Outcome = &outcome

	if err := e.store.PutMarket(ctx, market); err != nil {
		return nil, err
	}

	settled, err := e.cascadeResolution(ctx, op.MarketID, outcome)
	if err != nil {
		return nil, err
	}

	return MarketResolved{Market: market, SettledCombos: settled}, nil
}

// positionOrDefault devolve a posição existente ou uma zerada (criação lazy).
func (e *Engine) positionOrDefault(ctx context.Context, owner string, marketID uint64) (*Position, error) {
	position, err := e.store.GetPosition(ctx, owner, marketID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		position = &Position{
			MarketID:  marketID,
			Owner:     owner,
			YesShares: new(uint256.Int),
			NoShares:  new(uint256.Int),
		}
	}
	return position, nil
}

// createFeedItem insere um item no feed social e devolve o id atribuído.
func (e *Engine) createFeedItem(ctx context.Context, author string, itemType FeedItemType, marketID *uint64, content string, now time.Time) (uint64, error) {
	id, err := e.store.NextFeedID(ctx)
	if err != nil {
		return 0, err
	}
	item := &FeedItem{
		ID:        id,
		Author:    author,
		ItemType:  itemType,
		MarketID:  marketID,
		Content:   content,
		Data:      "{}",
		CreatedAt: now,
	}
	if err := e.store.PutFeedItem(ctx, item); err != nil {
		return 0, err
	}
	return id, nil
}
