// Package memstore guarda o estado do núcleo em mapas na memória.
// Usado nos testes e em execução standalone; o contrato é o mesmo do
// store Postgres: gets devolvem (nil, nil) na ausência e cada get/put
// copia a entidade, nunca compartilha ponteiro com o chamador.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/holiman/uint256"

	"github.com/radieske/prediction-market-poc/internal/engine"
)

type Store struct {
	mu sync.RWMutex

	markets    map[uint64]*engine.Market
	positions  map[positionKey]*engine.Position
	orders     map[uint64]*engine.LimitOrder
	combos     map[uint64]*engine.Combo
	agents     map[uint64]*engine.TradingAgent
	followers  map[followerKey]*engine.AgentFollower
	feedItems  map[uint64]*engine.FeedItem
	following  map[string][]string
	followedBy map[string][]string
	itemLikes  map[uint64][]string

	nextMarketID uint64
	nextOrderID  uint64
	nextComboID  uint64
	nextAgentID  uint64
	nextFeedID   uint64
	totalVolume  *uint256.Int
}

type positionKey struct {
	owner    string
	marketID uint64
}

type followerKey struct {
	agentID  uint64
	follower string
}

func New() *Store {
	return &Store{
		markets:     make(map[uint64]*engine.Market),
		positions:   make(map[positionKey]*engine.Position),
		orders:      make(map[uint64]*engine.LimitOrder),
		combos:      make(map[uint64]*engine.Combo),
		agents:      make(map[uint64]*engine.TradingAgent),
		followers:   make(map[followerKey]*engine.AgentFollower),
		feedItems:   make(map[uint64]*engine.FeedItem),
		following:   make(map[string][]string),
		followedBy:  make(map[string][]string),
		itemLikes:   make(map[uint64][]string),
		totalVolume: new(uint256.Int),
	}
}

func (s *Store) GetMarket(_ context.Context, id uint64) (*engine.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.markets[id]
	if !ok {
		return nil, nil
	}
	return cloneMarket(m), nil
}

func (s *Store) PutMarket(_ context.Context, m *engine.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markets[m.ID] = cloneMarket(m)
	return nil
}

func (s *Store) NextMarketID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextMarketID
	s.nextMarketID++
	return id, nil
}

func (s *Store) GetPosition(_ context.Context, owner string, marketID uint64) (*engine.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[positionKey{owner, marketID}]
	if !ok {
		return nil, nil
	}
	return clonePosition(p), nil
}

func (s *Store) PutPosition(_ context.Context, p *engine.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[positionKey{p.Owner, p.MarketID}] = clonePosition(p)
	return nil
}

func (s *Store) GetOrder(_ context.Context, id uint64) (*engine.LimitOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (s *Store) PutOrder(_ context.Context, o *engine.LimitOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (s *Store) NextOrderID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextOrderID
	s.nextOrderID++
	return id, nil
}

func (s *Store) GetCombo(_ context.Context, id uint64) (*engine.Combo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.combos[id]
	if !ok {
		return nil, nil
	}
	return cloneCombo(c), nil
}

func (s *Store) PutCombo(_ context.Context, c *engine.Combo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.combos[c.ID] = cloneCombo(c)
	return nil
}

func (s *Store) NextComboID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextComboID
	s.nextComboID++
	return id, nil
}

func (s *Store) ListCombos(_ context.Context) ([]*engine.Combo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*engine.Combo, 0, len(s.combos))
	for _, c := range s.combos {
		out = append(out, cloneCombo(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetAgent(_ context.Context, id uint64) (*engine.TradingAgent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agents[id]
	if !ok {
		return nil, nil
	}
	return cloneAgent(a), nil
}

func (s *Store) PutAgent(_ context.Context, a *engine.TradingAgent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[a.ID] = cloneAgent(a)
	return nil
}

func (s *Store) NextAgentID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextAgentID
	s.nextAgentID++
	return id, nil
}

func (s *Store) PutFollower(_ context.Context, f *engine.AgentFollower) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *f
	if f.Allocation != nil {
		clone.Allocation = new(uint256.Int).Set(f.Allocation)
	}
	s.followers[followerKey{f.AgentID, f.Follower}] = &clone
	return nil
}

func (s *Store) RemoveFollower(_ context.Context, agentID uint64, follower string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.followers, followerKey{agentID, follower})
	return nil
}

func (s *Store) GetFeedItem(_ context.Context, id uint64) (*engine.FeedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.feedItems[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (s *Store) PutFeedItem(_ context.Context, item *engine.FeedItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *item
	s.feedItems[item.ID] = &clone
	return nil
}

func (s *Store) NextFeedID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextFeedID
	s.nextFeedID++
	return id, nil
}

func (s *Store) Following(_ context.Context, user string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.following[user]...), nil
}

func (s *Store) PutFollowing(_ context.Context, user string, following []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.following[user] = append([]string(nil), following...)
	return nil
}

func (s *Store) Followers(_ context.Context, user string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.followedBy[user]...), nil
}

func (s *Store) PutFollowers(_ context.Context, user string, followers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followedBy[user] = append([]string(nil), followers...)
	return nil
}

func (s *Store) ItemLikes(_ context.Context, itemID uint64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.itemLikes[itemID]...), nil
}

func (s *Store) PutItemLikes(_ context.Context, itemID uint64, likes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemLikes[itemID] = append([]string(nil), likes...)
	return nil
}

func (s *Store) TotalVolume(_ context.Context) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return new(uint256.Int).Set(s.totalVolume), nil
}

func (s *Store) SetTotalVolume(_ context.Context, v *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalVolume = new(uint256.Int).Set(v)
	return nil
}

func cloneMarket(m *engine.Market) *engine.Market {
	clone := *m
	clone.Categories = append([]string(nil), m.Categories...)
	clone.YesPool = new(uint256.Int).Set(m.YesPool)
	clone.NoPool = new(uint256.Int).Set(m.NoPool)
	clone.TotalYesShares = new(uint256.Int).Set(m.TotalYesShares)
	clone.TotalNoShares = new(uint256.Int).Set(m.TotalNoShares)
	clone.Volume = new(uint256.Int).Set(m.Volume)
	if m.Outcome != nil {
		outcome := *m.Outcome
		clone.Outcome = &outcome
	}
	return &clone
}

func clonePosition(p *engine.Position) *engine.Position {
	clone := *p
	clone.YesShares = new(uint256.Int).Set(p.YesShares)
	clone.NoShares = new(uint256.Int).Set(p.NoShares)
	return &clone
}

func cloneOrder(o *engine.LimitOrder) *engine.LimitOrder {
	clone := *o
	clone.Price = new(uint256.Int).Set(o.Price)
	clone.OriginalAmount = new(uint256.Int).Set(o.OriginalAmount)
	clone.FilledAmount = new(uint256.Int).Set(o.FilledAmount)
	return &clone
}

func cloneCombo(c *engine.Combo) *engine.Combo {
	clone := *c
	clone.Stake = new(uint256.Int).Set(c.Stake)
	clone.PotentialPayout = new(uint256.Int).Set(c.PotentialPayout)
	clone.Legs = make([]engine.ComboLeg, len(c.Legs))
	for i, leg := range c.Legs {
		clone.Legs[i] = leg
		clone.Legs[i].Odds = new(uint256.Int).Set(leg.Odds)
		if leg.Won != nil {
			won := *leg.Won
			clone.Legs[i].Won = &won
		}
	}
	return &clone
}

func cloneAgent(a *engine.TradingAgent) *engine.TradingAgent {
	clone := *a
	clone.Capital = new(uint256.Int).Set(a.Capital)
	clone.TotalVolume = new(uint256.Int).Set(a.TotalVolume)
	return &clone
}
