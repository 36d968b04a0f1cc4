package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/radieske/prediction-market-poc/internal/engine"
	"github.com/radieske/prediction-market-poc/internal/market-service/dto"
	"github.com/radieske/prediction-market-poc/internal/market-service/metrics"
	"github.com/radieske/prediction-market-poc/internal/market-service/prices"
	"github.com/radieske/prediction-market-poc/internal/market-service/producer"
	"github.com/radieske/prediction-market-poc/internal/market-service/wallet"
	"github.com/radieske/prediction-market-poc/pkg/contracts/events"
)

// Server é a API de escrita: toda mutação passa pelo núcleo (engine.Apply)
// e só depois dispara os efeitos laterais (wallet, kafka, cache de preço).
type Server struct {
	log    *zap.Logger
	core   *engine.Engine
	publ   *producer.KafkaPublisher
	prices *prices.Cache
	wcli   *wallet.Client
}

func NewServer(log *zap.Logger, core *engine.Engine, p *producer.KafkaPublisher, pc *prices.Cache, w *wallet.Client) *Server {
	return &Server{log: log, core: core, publ: p, prices: pc, wcli: w}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/v1/markets", s.createMarket)
	r.Post("/v1/markets/{id}/buy", s.buyShares)
	r.Post("/v1/markets/{id}/sell", s.sellShares)
	r.Post("/v1/markets/{id}/resolve", s.resolveMarket)
	r.Post("/v1/markets/{id}/claim", s.claimWinnings)
	r.Post("/v1/markets/{id}/orders", s.placeOrder)
	r.Post("/v1/markets/{id}/comments", s.postComment)
	r.Delete("/v1/orders/{id}", s.cancelOrder)

	r.Post("/v1/combos", s.createCombo)
	r.Delete("/v1/combos/{id}", s.cancelCombo)

	r.Post("/v1/agents", s.createAgent)
	r.Put("/v1/agents/{id}/config", s.updateAgentConfig)
	r.Post("/v1/agents/{id}/toggle", s.toggleAgent)
	r.Post("/v1/agents/{id}/follow", s.followAgent)
	r.Delete("/v1/agents/{id}/follow", s.unfollowAgent)

	r.Post("/v1/social/follow", s.followUser)
	r.Delete("/v1/social/follow", s.unfollowUser)
	r.Post("/v1/feed/{id}/like", s.likeFeedItem)

	return r
}

func (s *Server) createMarket(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMarketRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Question == "" || req.EndTimeUnixMs <= 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}
	liquidity, ok := parseAmount(w, req.InitialLiquidity)
	if !ok {
		return
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.CreateMarket{
		Question:         req.Question,
		Categories:       req.Categories,
		EndTime:          time.UnixMilli(req.EndTimeUnixMs),
		InitialLiquidity: liquidity,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	created := resp.(engine.MarketCreated)
	m := created.Market

	// Liquidez inicial sai da carteira do criador; best-effort
	if _, err := s.wcli.Debit(r.Context(), req.UserID, liquidity.Dec(), "market-"+strconv.FormatUint(m.ID, 10)); err != nil {
		metrics.WalletErrorsTotal.Inc()
		s.log.Warn("wallet debit failed", zap.Uint64("marketId", m.ID), zap.Error(err))
	}

	if err := s.publ.PublishMarketCreated(r.Context(), events.MarketCreated{
		MarketID:         m.ID,
		Creator:          m.Creator,
		Question:         m.Question,
		Categories:       m.Categories,
		EndTimeUnixMs:    m.EndTime.UnixMilli(),
		InitialLiquidity: liquidity.Dec(),
	}); err != nil {
		metrics.PublishErrorsTotal.Inc()
		s.log.Warn("publish market_created failed", zap.Error(err))
	}

	s.refreshPrice(r, m)
	metrics.MarketsCreatedTotal.Inc()

	writeJSON(w, http.StatusCreated, marketResponse(m))
}

func (s *Server) buyShares(w http.ResponseWriter, r *http.Request) {
	marketID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.BuyRequest
	if !decode(w, r, &req) {
		return
	}
	shares, ok := parseAmount(w, req.Shares)
	if !ok {
		return
	}
	maxCost, ok := parseAmount(w, req.MaxCost)
	if !ok {
		return
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.BuyShares{
		MarketID: marketID,
		IsYes:    req.IsYes,
		Shares:   shares,
		MaxCost:  maxCost,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	purchase := resp.(engine.SharesPurchased)

	s.afterTrade(r, tradeResult{
		market: purchase.Market,
		trader: req.UserID,
		isYes:  purchase.IsYes,
		side:   "BUY",
		shares: purchase.Shares,
		amount: purchase.Cost,
	})

	writeJSON(w, http.StatusOK, dto.TradeResponse{
		MarketID: marketID,
		Side:     "BUY",
		IsYes:    purchase.IsYes,
		Shares:   purchase.Shares.Dec(),
		Amount:   purchase.Cost.Dec(),
		YesPool:  purchase.Market.YesPool.Dec(),
		NoPool:   purchase.Market.NoPool.Dec(),
	})
}

func (s *Server) sellShares(w http.ResponseWriter, r *http.Request) {
	marketID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.SellRequest
	if !decode(w, r, &req) {
		return
	}
	shares, ok := parseAmount(w, req.Shares)
	if !ok {
		return
	}
	minProceeds, ok := parseAmount(w, req.MinProceeds)
	if !ok {
		return
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.SellShares{
		MarketID:    marketID,
		IsYes:       req.IsYes,
		Shares:      shares,
		MinProceeds: minProceeds,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	sale := resp.(engine.SharesSold)

	s.afterTrade(r, tradeResult{
		market: sale.Market,
		trader: req.UserID,
		isYes:  sale.IsYes,
		side:   "SELL",
		shares: sale.Shares,
		amount: sale.Proceeds,
	})

	writeJSON(w, http.StatusOK, dto.TradeResponse{
		MarketID: marketID,
		Side:     "SELL",
		IsYes:    sale.IsYes,
		Shares:   sale.Shares.Dec(),
		Amount:   sale.Proceeds.Dec(),
		YesPool:  sale.Market.YesPool.Dec(),
		NoPool:   sale.Market.NoPool.Dec(),
	})
}

type tradeResult struct {
	market *engine.Market
	trader string
	isYes  bool
	side   string
	shares *uint256.Int
	amount *uint256.Int
}

// afterTrade executa os efeitos laterais de um trade já aplicado:
// carteira, evento kafka, snapshot de preço e métricas.
func (s *Server) afterTrade(r *http.Request, t tradeResult) {
	tradeID := uuid.NewString()

	var err error
	if t.side == "BUY" {
		_, err = s.wcli.Debit(r.Context(), t.trader, t.amount.Dec(), tradeID)
	} else {
		_, err = s.wcli.Credit(r.Context(), t.trader, t.amount.Dec(), tradeID)
	}
	if err != nil {
		metrics.WalletErrorsTotal.Inc()
		s.log.Warn("wallet transfer failed",
			zap.String("tradeId", tradeID), zap.String("side", t.side), zap.Error(err))
	}

	if err := s.publ.PublishTradeExecuted(r.Context(), events.TradeExecuted{
		TradeID:  tradeID,
		MarketID: t.market.ID,
		Trader:   t.trader,
		IsYes:    t.isYes,
		Side:     t.side,
		Shares:   t.shares.Dec(),
		Amount:   t.amount.Dec(),
		YesPool:  t.market.YesPool.Dec(),
		NoPool:   t.market.NoPool.Dec(),
	}); err != nil {
		metrics.PublishErrorsTotal.Inc()
		s.log.Warn("publish trade_executed failed", zap.Error(err))
	}

	s.refreshPrice(r, t.market)
	metrics.TradesTotal.WithLabelValues(t.side).Inc()
}

func (s *Server) resolveMarket(w http.ResponseWriter, r *http.Request) {
	marketID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.ResolveRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.ResolveMarket{
		MarketID: marketID,
		Outcome:  req.Outcome,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	resolved := resp.(engine.MarketResolved)

	if err := s.publ.PublishMarketResolved(r.Context(), events.MarketResolved{
		MarketID: marketID,
		Resolver: req.UserID,
		Outcome:  req.Outcome,
	}); err != nil {
		metrics.PublishErrorsTotal.Inc()
		s.log.Warn("publish market_resolved failed", zap.Error(err))
	}

	settled := make([]uint64, 0, len(resolved.SettledCombos))
	for _, c := range resolved.SettledCombos {
		settled = append(settled, c.ID)
		if c.Status != engine.ComboStatusWon && c.Status != engine.ComboStatusLost {
			continue
		}

		payout := "0"
		if c.Status == engine.ComboStatusWon {
			payout = c.PotentialPayout.Dec()
			if _, err := s.wcli.Credit(r.Context(), c.Owner, payout, "combo-"+strconv.FormatUint(c.ID, 10)); err != nil {
				metrics.WalletErrorsTotal.Inc()
				s.log.Warn("wallet credit failed", zap.Uint64("comboId", c.ID), zap.Error(err))
			}
		}
		if err := s.publ.PublishComboSettled(r.Context(), events.ComboSettled{
			ComboID: c.ID,
			Owner:   c.Owner,
			Status:  string(c.Status),
			Payout:  payout,
		}); err != nil {
			metrics.PublishErrorsTotal.Inc()
			s.log.Warn("publish combo_settled failed", zap.Error(err))
		}
		metrics.CombosSettledTotal.WithLabelValues(string(c.Status)).Inc()
	}

	metrics.MarketsResolvedTotal.Inc()
	writeJSON(w, http.StatusOK, dto.ResolveResponse{
		MarketID:      marketID,
		Outcome:       req.Outcome,
		SettledCombos: settled,
	})
}

func (s *Server) claimWinnings(w http.ResponseWriter, r *http.Request) {
	marketID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.ClaimRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.ClaimWinnings{MarketID: marketID})
	if err != nil {
		writeErr(w, err)
		return
	}
	claimed := resp.(engine.WinningsClaimed)

	ref := "claim-" + strconv.FormatUint(marketID, 10) + "-" + req.UserID
	if _, err := s.wcli.Credit(r.Context(), req.UserID, claimed.Payout.Dec(), ref); err != nil {
		metrics.WalletErrorsTotal.Inc()
		s.log.Warn("wallet credit failed", zap.Uint64("marketId", marketID), zap.Error(err))
	}

	if err := s.publ.PublishWinningsClaimed(r.Context(), events.WinningsClaimed{
		MarketID: marketID,
		User:     req.UserID,
		Payout:   claimed.Payout.Dec(),
	}); err != nil {
		metrics.PublishErrorsTotal.Inc()
		s.log.Warn("publish winnings_claimed failed", zap.Error(err))
	}

	metrics.ClaimsTotal.Inc()
	writeJSON(w, http.StatusOK, dto.ClaimResponse{MarketID: marketID, Payout: claimed.Payout.Dec()})
}

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	marketID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.PlaceOrderRequest
	if !decode(w, r, &req) {
		return
	}
	price, ok := parseAmount(w, req.Price)
	if !ok {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	side := engine.OrderSide(req.Side)
	if side != engine.OrderSideBuy && side != engine.OrderSideSell {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid side"})
		return
	}
	duration := engine.OrderDuration(req.Duration)
	if duration == "" {
		duration = engine.OrderGoodTillCancelled
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.PlaceLimitOrder{
		MarketID: marketID,
		IsYes:    req.IsYes,
		Side:     side,
		Price:    price,
		Amount:   amount,
		Duration: duration,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	placed := resp.(engine.OrderPlaced)
	writeJSON(w, http.StatusCreated, dto.OrderResponse{OrderID: placed.Order.ID, Status: string(placed.Order.Status)})
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.UserOnlyRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.CancelLimitOrder{OrderID: orderID})
	if err != nil {
		writeErr(w, err)
		return
	}
	cancelled := resp.(engine.OrderCancelled)
	writeJSON(w, http.StatusOK, dto.OrderResponse{OrderID: cancelled.OrderID, Status: string(engine.OrderStatusCancelled)})
}

func (s *Server) createCombo(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateComboRequest
	if !decode(w, r, &req) {
		return
	}
	stake, ok := parseAmount(w, req.Stake)
	if !ok {
		return
	}
	legs := make([]engine.ComboLegInput, len(req.Legs))
	for i, leg := range req.Legs {
		legs[i] = engine.ComboLegInput{MarketID: leg.MarketID, Prediction: leg.Prediction}
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.CreateCombo{
		Name:  req.Name,
		Legs:  legs,
		Stake: stake,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	created := resp.(engine.ComboCreated)
	c := created.Combo

	// Stake sai da carteira na criação; best-effort
	if _, err := s.wcli.Debit(r.Context(), req.UserID, stake.Dec(), "combo-stake-"+strconv.FormatUint(c.ID, 10)); err != nil {
		metrics.WalletErrorsTotal.Inc()
		s.log.Warn("wallet debit failed", zap.Uint64("comboId", c.ID), zap.Error(err))
	}

	if err := s.publ.PublishComboCreated(r.Context(), events.ComboCreated{
		ComboID:         c.ID,
		Owner:           c.Owner,
		LegCount:        len(c.Legs),
		Stake:           c.Stake.Dec(),
		PotentialPayout: c.PotentialPayout.Dec(),
	}); err != nil {
		metrics.PublishErrorsTotal.Inc()
		s.log.Warn("publish combo_created failed", zap.Error(err))
	}

	metrics.CombosCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, dto.ComboResponse{
		ComboID:         c.ID,
		Status:          string(c.Status),
		PotentialPayout: c.PotentialPayout.Dec(),
	})
}

func (s *Server) cancelCombo(w http.ResponseWriter, r *http.Request) {
	comboID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.UserOnlyRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.CancelCombo{ComboID: comboID})
	if err != nil {
		writeErr(w, err)
		return
	}
	cancelled := resp.(engine.ComboCancelled)

	// Devolve o stake; best-effort
	ref := "combo-refund-" + strconv.FormatUint(cancelled.ComboID, 10)
	if _, err := s.wcli.Credit(r.Context(), cancelled.Owner, cancelled.Stake.Dec(), ref); err != nil {
		metrics.WalletErrorsTotal.Inc()
		s.log.Warn("wallet refund failed", zap.Uint64("comboId", cancelled.ComboID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, dto.ComboResponse{ComboID: cancelled.ComboID, Status: string(engine.ComboStatusCancelled)})
}

func (s *Server) createAgent(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAgentRequest
	if !decode(w, r, &req) {
		return
	}
	capital, ok := parseAmount(w, req.InitialCapital)
	if !ok {
		return
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.CreateAgent{
		Name:           req.Name,
		Strategy:       engine.AgentStrategy(req.Strategy),
		Config:         req.Config,
		InitialCapital: capital,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	created := resp.(engine.AgentCreated)
	writeJSON(w, http.StatusCreated, dto.AgentResponse{AgentID: created.Agent.ID, Status: "ACTIVE"})
}

func (s *Server) updateAgentConfig(w http.ResponseWriter, r *http.Request) {
	agentID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateAgentConfigRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.UpdateAgentConfig{
		AgentID: agentID,
		Config:  req.Config,
	}); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AckResponse{Status: "OK"})
}

func (s *Server) toggleAgent(w http.ResponseWriter, r *http.Request) {
	agentID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.ToggleAgentRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.ToggleAgent{
		AgentID: agentID,
		Active:  req.Active,
	}); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AckResponse{Status: "OK"})
}

func (s *Server) followAgent(w http.ResponseWriter, r *http.Request) {
	agentID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.FollowAgentRequest
	if !decode(w, r, &req) {
		return
	}
	allocation, ok := parseAmount(w, req.Allocation)
	if !ok {
		return
	}
	if _, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.FollowAgent{
		AgentID:    agentID,
		Allocation: allocation,
	}); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AckResponse{Status: "OK"})
}

func (s *Server) unfollowAgent(w http.ResponseWriter, r *http.Request) {
	agentID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.UserOnlyRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.UnfollowAgent{AgentID: agentID}); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AckResponse{Status: "OK"})
}

func (s *Server) postComment(w http.ResponseWriter, r *http.Request) {
	marketID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "content required"})
		return
	}

	resp, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.PostComment{
		MarketID: marketID,
		Content:  req.Content,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	posted := resp.(engine.CommentPosted)
	writeJSON(w, http.StatusCreated, dto.CommentResponse{FeedID: posted.FeedID})
}

func (s *Server) followUser(w http.ResponseWriter, r *http.Request) {
	var req dto.FollowUserRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.FollowUser{User: req.Target}); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AckResponse{Status: "OK"})
}

func (s *Server) unfollowUser(w http.ResponseWriter, r *http.Request) {
	var req dto.FollowUserRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.UnfollowUser{User: req.Target}); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AckResponse{Status: "OK"})
}

func (s *Server) likeFeedItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := urlID(w, r)
	if !ok {
		return
	}
	var req dto.UserOnlyRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := s.core.Apply(r.Context(), req.UserID, time.Now(), engine.LikeFeedItem{ItemID: itemID}); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AckResponse{Status: "OK"})
}

// refreshPrice recalcula as probabilidades implícitas e atualiza o
// snapshot no Redis (e o broadcast para o hub websocket); best-effort.
func (s *Server) refreshPrice(r *http.Request, m *engine.Market) {
	yesPrice, err := engine.ImpliedProbability(m.YesPool, m.NoPool, true)
	if err != nil {
		return
	}
	noPrice, err := engine.ImpliedProbability(m.YesPool, m.NoPool, false)
	if err != nil {
		return
	}
	if err := s.prices.SetCurrent(r.Context(), prices.Snapshot{
		MarketID: m.ID,
		YesPrice: yesPrice.Dec(),
		NoPrice:  noPrice.Dec(),
		YesPool:  m.YesPool.Dec(),
		NoPool:   m.NoPool.Dec(),
		Volume:   m.Volume.Dec(),
	}); err != nil {
		s.log.Warn("price cache update failed", zap.Uint64("marketId", m.ID), zap.Error(err))
	}
}

func marketResponse(m *engine.Market) dto.MarketResponse {
	return dto.MarketResponse{
		MarketID:       m.ID,
		Creator:        m.Creator,
		Question:       m.Question,
		Categories:     m.Categories,
		EndTimeUnixMs:  m.EndTime.UnixMilli(),
		YesPool:        m.YesPool.Dec(),
		NoPool:         m.NoPool.Dec(),
		TotalYesShares: m.TotalYesShares.Dec(),
		TotalNoShares:  m.TotalNoShares.Dec(),
		Volume:         m.Volume.Dec(),
		Resolved:       m.Resolved,
		Outcome:        m.Outcome,
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return false
	}
	return true
}

func urlID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func parseAmount(w http.ResponseWriter, s string) (*uint256.Int, bool) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid amount"})
		return nil, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr mapeia os erros sentinela do núcleo para status HTTP.
func writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, engine.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, engine.ErrMarketNotFound),
		errors.Is(err, engine.ErrPositionNotFound),
		errors.Is(err, engine.ErrOrderNotFound),
		errors.Is(err, engine.ErrComboNotFound),
		errors.Is(err, engine.ErrAgentNotFound),
		errors.Is(err, engine.ErrFeedItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrMarketEnded),
		errors.Is(err, engine.ErrAlreadyResolved),
		errors.Is(err, engine.ErrMarketNotResolved),
		errors.Is(err, engine.ErrAlreadyClaimed),
		errors.Is(err, engine.ErrCostExceedsLimit),
		errors.Is(err, engine.ErrProceedsBelowMinimum),
		errors.Is(err, engine.ErrNotCancellable),
		errors.Is(err, engine.ErrPartialResolutionPreventsCancel):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrInsufficientLiquidity),
		errors.Is(err, engine.ErrInsufficientShares),
		errors.Is(err, engine.ErrNoWinningShares),
		errors.Is(err, engine.ErrInvalidLegCount),
		errors.Is(err, engine.ErrZeroLiquidity),
		errors.Is(err, engine.ErrOutcomeUnset),
		errors.Is(err, engine.ErrDivisionByZero),
		errors.Is(err, engine.ErrArithmeticOverflow):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, dto.ErrorResponse{Error: err.Error()})
}
