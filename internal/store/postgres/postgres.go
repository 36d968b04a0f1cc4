// Package postgres implementa engine.Store sobre Postgres (lib/pq).
// Valores monetários são NUMERIC(78,0) em attos; contadores densos ficam
// na tabela counters e são incrementados na mesma instrução que os lê.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/lib/pq"

	"github.com/radieske/prediction-market-poc/internal/engine"
)

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// DB expõe a conexão para healthchecks.
func (s *Store) DB() *sql.DB { return s.db }

const (
	counterMarket = "next_market_id"
	counterOrder  = "next_order_id"
	counterCombo  = "next_combo_id"
	counterAgent  = "next_agent_id"
	counterFeed   = "next_feed_id"
)

// EnsureSchema cria as tabelas e os contadores se ainda não existem.
// POC: bootstrap no startup em vez de migrações versionadas.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS counters (
		name  TEXT PRIMARY KEY,
		value BIGINT NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS platform_totals (
		name  TEXT PRIMARY KEY,
		value NUMERIC(78,0) NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS markets (
		id               BIGINT PRIMARY KEY,
		creator          TEXT NOT NULL,
		question         TEXT NOT NULL,
		categories       TEXT[] NOT NULL DEFAULT '{}',
		end_time         TIMESTAMPTZ NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		yes_pool         NUMERIC(78,0) NOT NULL,
		no_pool          NUMERIC(78,0) NOT NULL,
		total_yes_shares NUMERIC(78,0) NOT NULL,
		total_no_shares  NUMERIC(78,0) NOT NULL,
		resolved         BOOLEAN NOT NULL DEFAULT FALSE,
		outcome          BOOLEAN,
		volume           NUMERIC(78,0) NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS positions (
		owner      TEXT NOT NULL,
		market_id  BIGINT NOT NULL,
		yes_shares NUMERIC(78,0) NOT NULL DEFAULT 0,
		no_shares  NUMERIC(78,0) NOT NULL DEFAULT 0,
		claimed    BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (owner, market_id)
	);
	CREATE TABLE IF NOT EXISTS limit_orders (
		id              BIGINT PRIMARY KEY,
		owner           TEXT NOT NULL,
		market_id       BIGINT NOT NULL,
		is_yes          BOOLEAN NOT NULL,
		side            TEXT NOT NULL,
		price           NUMERIC(78,0) NOT NULL,
		original_amount NUMERIC(78,0) NOT NULL,
		filled_amount   NUMERIC(78,0) NOT NULL DEFAULT 0,
		duration        TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		status          TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS combos (
		id               BIGINT PRIMARY KEY,
		owner            TEXT NOT NULL,
		name             TEXT NOT NULL,
		legs             JSONB NOT NULL,
		stake            NUMERIC(78,0) NOT NULL,
		potential_payout NUMERIC(78,0) NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		status           TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS agents (
		id              BIGINT PRIMARY KEY,
		owner           TEXT NOT NULL,
		name            TEXT NOT NULL,
		strategy        TEXT NOT NULL,
		config          TEXT NOT NULL DEFAULT '',
		capital         NUMERIC(78,0) NOT NULL,
		total_volume    NUMERIC(78,0) NOT NULL DEFAULT 0,
		profit_loss     BIGINT NOT NULL DEFAULT 0,
		win_rate        BIGINT NOT NULL DEFAULT 0,
		total_trades    BIGINT NOT NULL DEFAULT 0,
		winning_trades  BIGINT NOT NULL DEFAULT 0,
		followers_count BIGINT NOT NULL DEFAULT 0,
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS agent_followers (
		agent_id         BIGINT NOT NULL,
		follower         TEXT NOT NULL,
		allocation       NUMERIC(78,0) NOT NULL,
		copy_trades      BOOLEAN NOT NULL DEFAULT TRUE,
		started_at       TIMESTAMPTZ NOT NULL,
		total_copied_pnl BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (agent_id, follower)
	);
	CREATE TABLE IF NOT EXISTS feed_items (
		id             BIGINT PRIMARY KEY,
		author         TEXT NOT NULL,
		item_type      TEXT NOT NULL,
		market_id      BIGINT,
		content        TEXT NOT NULL,
		data           TEXT NOT NULL DEFAULT '{}',
		likes_count    BIGINT NOT NULL DEFAULT 0,
		comments_count BIGINT NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS user_following (
		user_id   TEXT PRIMARY KEY,
		following TEXT[] NOT NULL DEFAULT '{}'
	);
	CREATE TABLE IF NOT EXISTS user_followers (
		user_id   TEXT PRIMARY KEY,
		followers TEXT[] NOT NULL DEFAULT '{}'
	);
	CREATE TABLE IF NOT EXISTS item_likes (
		item_id BIGINT PRIMARY KEY,
		likes   TEXT[] NOT NULL DEFAULT '{}'
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	for _, name := range []string{counterMarket, counterOrder, counterCombo, counterAgent, counterFeed} {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO counters(name, value) VALUES($1, 0) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed counter %s: %w", name, err)
		}
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO platform_totals(name, value) VALUES('total_volume', 0) ON CONFLICT (name) DO NOTHING`); err != nil {
		return fmt.Errorf("seed totals: %w", err)
	}
	return nil
}

// nextID incrementa e devolve o valor anterior do contador, numa única
// instrução (increment-and-read atômico).
func (s *Store) nextID(ctx context.Context, name string) (uint64, error) {
	var next int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE counters SET value = value + 1 WHERE name=$1 RETURNING value - 1`, name).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", name, err)
	}
	return uint64(next), nil
}

func (s *Store) NextMarketID(ctx context.Context) (uint64, error) { return s.nextID(ctx, counterMarket) }
func (s *Store) NextOrderID(ctx context.Context) (uint64, error)  { return s.nextID(ctx, counterOrder) }
func (s *Store) NextComboID(ctx context.Context) (uint64, error)  { return s.nextID(ctx, counterCombo) }
func (s *Store) NextAgentID(ctx context.Context) (uint64, error)  { return s.nextID(ctx, counterAgent) }
func (s *Store) NextFeedID(ctx context.Context) (uint64, error)   { return s.nextID(ctx, counterFeed) }

func (s *Store) GetMarket(ctx context.Context, id uint64) (*engine.Market, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, creator, question, categories, end_time, created_at,
		       yes_pool::text, no_pool::text, total_yes_shares::text, total_no_shares::text,
		       resolved, outcome, volume::text
		FROM markets WHERE id=$1`, int64(id))

	var m engine.Market
	var yesPool, noPool, totalYes, totalNo, volume string
	var outcome sql.NullBool
	err := row.Scan(&m.ID, &m.Creator, &m.Question, pq.Array(&m.Categories), &m.EndTime, &m.CreatedAt,
		&yesPool, &noPool, &totalYes, &totalNo, &m.Resolved, &outcome, &volume)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get market: %w", err)
	}
	if outcome.Valid {
		m.Outcome = &outcome.Bool
	}
	if m.YesPool, err = parseAmount(yesPool); err != nil {
		return nil, err
	}
	if m.NoPool, err = parseAmount(noPool); err != nil {
		return nil, err
	}
	if m.TotalYesShares, err = parseAmount(totalYes); err != nil {
		return nil, err
	}
	if m.TotalNoShares, err = parseAmount(totalNo); err != nil {
		return nil, err
	}
	if m.Volume, err = parseAmount(volume); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) PutMarket(ctx context.Context, m *engine.Market) error {
	var outcome sql.NullBool
	if m.Outcome != nil {
		outcome = sql.NullBool{Bool: *m.Outcome, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO markets (id, creator, question, categories, end_time, created_at,
			yes_pool, no_pool, total_yes_shares, total_no_shares, resolved, outcome, volume)
		VALUES ($1,$2,$3,$4,$5,$6,$7::numeric,$8::numeric,$9::numeric,$10::numeric,$11,$12,$13::numeric)
		ON CONFLICT (id) DO UPDATE SET
			yes_pool=EXCLUDED.yes_pool, no_pool=EXCLUDED.no_pool,
			total_yes_shares=EXCLUDED.total_yes_shares, total_no_shares=EXCLUDED.total_no_shares,
			resolved=EXCLUDED.resolved, outcome=EXCLUDED.outcome, volume=EXCLUDED.volume`,
		int64(m.ID), m.Creator, m.Question, pq.Array(m.Categories), m.EndTime, m.CreatedAt,
		m.YesPool.Dec(), m.NoPool.Dec(), m.TotalYesShares.Dec(), m.TotalNoShares.Dec(),
		m.Resolved, outcome, m.Volume.Dec())
	if err != nil {
		return fmt.Errorf("put market: %w", err)
	}
	return nil
}

func (s *Store) GetPosition(ctx context.Context, owner string, marketID uint64) (*engine.Position, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT owner, market_id, yes_shares::text, no_shares::text, claimed
		FROM positions WHERE owner=$1 AND market_id=$2`, owner, int64(marketID))

	var p engine.Position
	var yes, no string
	err := row.Scan(&p.Owner, &p.MarketID, &yes, &no, &p.Claimed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get position: %w", err)
	}
	if p.YesShares, err = parseAmount(yes); err != nil {
		return nil, err
	}
	if p.NoShares, err = parseAmount(no); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) PutPosition(ctx context.Context, p *engine.Position) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (owner, market_id, yes_shares, no_shares, claimed)
		VALUES ($1,$2,$3::numeric,$4::numeric,$5)
		ON CONFLICT (owner, market_id) DO UPDATE SET
			yes_shares=EXCLUDED.yes_shares, no_shares=EXCLUDED.no_shares, claimed=EXCLUDED.claimed`,
		p.Owner, int64(p.MarketID), p.YesShares.Dec(), p.NoShares.Dec(), p.Claimed)
	if err != nil {
		return fmt.Errorf("put position: %w", err)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id uint64) (*engine.LimitOrder, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, market_id, is_yes, side, price::text, original_amount::text,
		       filled_amount::text, duration, created_at, status
		FROM limit_orders WHERE id=$1`, int64(id))

	var o engine.LimitOrder
	var price, original, filled string
	err := row.Scan(&o.ID, &o.Owner, &o.MarketID, &o.IsYes, &o.Side, &price, &original,
		&filled, &o.Duration, &o.CreatedAt, &o.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.Price, err = parseAmount(price); err != nil {
		return nil, err
	}
	if o.OriginalAmount, err = parseAmount(original); err != nil {
		return nil, err
	}
	if o.FilledAmount, err = parseAmount(filled); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) PutOrder(ctx context.Context, o *engine.LimitOrder) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO limit_orders (id, owner, market_id, is_yes, side, price, original_amount,
			filled_amount, duration, created_at, status)
		VALUES ($1,$2,$3,$4,$5,$6::numeric,$7::numeric,$8::numeric,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			filled_amount=EXCLUDED.filled_amount, status=EXCLUDED.status`,
		int64(o.ID), o.Owner, int64(o.MarketID), o.IsYes, string(o.Side), o.Price.Dec(),
		o.OriginalAmount.Dec(), o.FilledAmount.Dec(), string(o.Duration), o.CreatedAt, string(o.Status))
	if err != nil {
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

// comboLegRow é a forma JSONB das pernas de um combo.
type comboLegRow struct {
	MarketID   uint64 `json:"market_id"`
	Prediction bool   `json:"prediction"`
	Odds       string `json:"odds"`
	Resolved   bool   `json:"resolved"`
	Won        *bool  `json:"won,omitempty"`
}

func (s *Store) GetCombo(ctx context.Context, id uint64) (*engine.Combo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, name, legs, stake::text, potential_payout::text, created_at, status
		FROM combos WHERE id=$1`, int64(id))
	combo, err := scanCombo(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return combo, err
}

func (s *Store) PutCombo(ctx context.Context, c *engine.Combo) error {
	legs := make([]comboLegRow, len(c.Legs))
	for i, leg := range c.Legs {
		legs[i] = comboLegRow{
			MarketID:   leg.MarketID,
			Prediction: leg.Prediction,
			Odds:       leg.Odds.Dec(),
			Resolved:   leg.Resolved,
			Won:        leg.Won,
		}
	}
	legsJSON, err := json.Marshal(legs)
	if err != nil {
		return fmt.Errorf("marshal combo legs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO combos (id, owner, name, legs, stake, potential_payout, created_at, status)
		VALUES ($1,$2,$3,$4,$5::numeric,$6::numeric,$7,$8)
		ON CONFLICT (id) DO UPDATE SET legs=EXCLUDED.legs, status=EXCLUDED.status`,
		int64(c.ID), c.Owner, c.Name, legsJSON, c.Stake.Dec(), c.PotentialPayout.Dec(),
		c.CreatedAt, string(c.Status))
	if err != nil {
		return fmt.Errorf("put combo: %w", err)
	}
	return nil
}

func (s *Store) ListCombos(ctx context.Context) ([]*engine.Combo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, name, legs, stake::text, potential_payout::text, created_at, status
		FROM combos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	defer rows.Close()

	var out []*engine.Combo
	for rows.Next() {
		combo, err := scanCombo(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, combo)
	}
	return out, rows.Err()
}

func scanCombo(scan func(...any) error) (*engine.Combo, error) {
	var c engine.Combo
	var legsJSON []byte
	var stake, payout string
	if err := scan(&c.ID, &c.Owner, &c.Name, &legsJSON, &stake, &payout, &c.CreatedAt, &c.Status); err != nil {
		return nil, err
	}

	var legs []comboLegRow
	if err := json.Unmarshal(legsJSON, &legs); err != nil {
		return nil, fmt.Errorf("unmarshal combo legs: %w", err)
	}
	c.Legs = make([]engine.ComboLeg, len(legs))
	for i, leg := range legs {
		odds, err := parseAmount(leg.Odds)
		if err != nil {
			return nil, err
		}
		c.Legs[i] = engine.ComboLeg{
			MarketID:   leg.MarketID,
			Prediction: leg.Prediction,
			Odds:       odds,
			Resolved:   leg.Resolved,
			Won:        leg.Won,
		}
	}

	var err error
	if c.Stake, err = parseAmount(stake); err != nil {
		return nil, err
	}
	if c.PotentialPayout, err = parseAmount(payout); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetAgent(ctx context.Context, id uint64) (*engine.TradingAgent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, name, strategy, config, capital::text, total_volume::text,
		       profit_loss, win_rate, total_trades, winning_trades, followers_count,
		       is_active, created_at
		FROM agents WHERE id=$1`, int64(id))

	var a engine.TradingAgent
	var capital, volume string
	err := row.Scan(&a.ID, &a.Owner, &a.Name, &a.Strategy, &a.Config, &capital, &volume,
		&a.ProfitLoss, &a.WinRate, &a.TotalTrades, &a.WinningTrades, &a.FollowersCount,
		&a.IsActive, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	if a.Capital, err = parseAmount(capital); err != nil {
		return nil, err
	}
	if a.TotalVolume, err = parseAmount(volume); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) PutAgent(ctx context.Context, a *engine.TradingAgent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agents (id, owner, name, strategy, config, capital, total_volume,
			profit_loss, win_rate, total_trades, winning_trades, followers_count, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6::numeric,$7::numeric,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO UPDATE SET
			config=EXCLUDED.config, capital=EXCLUDED.capital, total_volume=EXCLUDED.total_volume,
			profit_loss=EXCLUDED.profit_loss, win_rate=EXCLUDED.win_rate,
			total_trades=EXCLUDED.total_trades, winning_trades=EXCLUDED.winning_trades,
			followers_count=EXCLUDED.followers_count, is_active=EXCLUDED.is_active`,
		int64(a.ID), a.Owner, a.Name, string(a.Strategy), a.Config, a.Capital.Dec(), a.TotalVolume.Dec(),
		a.ProfitLoss, int64(a.WinRate), int64(a.TotalTrades), int64(a.WinningTrades),
		int64(a.FollowersCount), a.IsActive, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("put agent: %w", err)
	}
	return nil
}

func (s *Store) PutFollower(ctx context.Context, f *engine.AgentFollower) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agent_followers (agent_id, follower, allocation, copy_trades, started_at, total_copied_pnl)
		VALUES ($1,$2,$3::numeric,$4,$5,$6)
		ON CONFLICT (agent_id, follower) DO UPDATE SET
			allocation=EXCLUDED.allocation, copy_trades=EXCLUDED.copy_trades`,
		int64(f.AgentID), f.Follower, f.Allocation.Dec(), f.CopyTrades, f.StartedAt, f.TotalCopiedPnl)
	if err != nil {
		return fmt.Errorf("put follower: %w", err)
	}
	return nil
}

func (s *Store) RemoveFollower(ctx context.Context, agentID uint64, follower string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM agent_followers WHERE agent_id=$1 AND follower=$2`, int64(agentID), follower)
	if err != nil {
		return fmt.Errorf("remove follower: %w", err)
	}
	return nil
}

func (s *Store) GetFeedItem(ctx context.Context, id uint64) (*engine.FeedItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, author, item_type, market_id, content, data, likes_count, comments_count, created_at
		FROM feed_items WHERE id=$1`, int64(id))

	var item engine.FeedItem
	var marketID sql.NullInt64
	err := row.Scan(&item.ID, &item.Author, &item.ItemType, &marketID, &item.Content, &item.Data,
		&item.LikesCount, &item.CommentsCount, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feed item: %w", err)
	}
	if marketID.Valid {
		id := uint64(marketID.Int64)
		item.MarketID = &id
	}
	return &item, nil
}

func (s *Store) PutFeedItem(ctx context.Context, item *engine.FeedItem) error {
	var marketID sql.NullInt64
	if item.MarketID != nil {
		marketID = sql.NullInt64{Int64: int64(*item.MarketID), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feed_items (id, author, item_type, market_id, content, data, likes_count, comments_count, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			likes_count=EXCLUDED.likes_count, comments_count=EXCLUDED.comments_count`,
		int64(item.ID), item.Author, string(item.ItemType), marketID, item.Content, item.Data,
		int64(item.LikesCount), int64(item.CommentsCount), item.CreatedAt)
	if err != nil {
		return fmt.Errorf("put feed item: %w", err)
	}
	return nil
}

func (s *Store) Following(ctx context.Context, user string) ([]string, error) {
	return s.userList(ctx, `SELECT following FROM user_following WHERE user_id=$1`, user)
}

func (s *Store) PutFollowing(ctx context.Context, user string, following []string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_following (user_id, following) VALUES ($1,$2)
		ON CONFLICT (user_id) DO UPDATE SET following=EXCLUDED.following`,
		user, pq.Array(following))
	if err != nil {
		return fmt.Errorf("put following: %w", err)
	}
	return nil
}

func (s *Store) Followers(ctx context.Context, user string) ([]string, error) {
	return s.userList(ctx, `SELECT followers FROM user_followers WHERE user_id=$1`, user)
}

func (s *Store) PutFollowers(ctx context.Context, user string, followers []string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_followers (user_id, followers) VALUES ($1,$2)
		ON CONFLICT (user_id) DO UPDATE SET followers=EXCLUDED.followers`,
		user, pq.Array(followers))
	if err != nil {
		return fmt.Errorf("put followers: %w", err)
	}
	return nil
}

func (s *Store) ItemLikes(ctx context.Context, itemID uint64) ([]string, error) {
	var likes []string
	err := s.db.QueryRowContext(ctx,
		`SELECT likes FROM item_likes WHERE item_id=$1`, int64(itemID)).Scan(pq.Array(&likes))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("item likes: %w", err)
	}
	return likes, nil
}

func (s *Store) PutItemLikes(ctx context.Context, itemID uint64, likes []string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO item_likes (item_id, likes) VALUES ($1,$2)
		ON CONFLICT (item_id) DO UPDATE SET likes=EXCLUDED.likes`,
		int64(itemID), pq.Array(likes))
	if err != nil {
		return fmt.Errorf("put item likes: %w", err)
	}
	return nil
}

func (s *Store) TotalVolume(ctx context.Context) (*uint256.Int, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value::text FROM platform_totals WHERE name='total_volume'`).Scan(&v)
	if err == sql.ErrNoRows {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("total volume: %w", err)
	}
	return parseAmount(v)
}

func (s *Store) SetTotalVolume(ctx context.Context, v *uint256.Int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO platform_totals (name, value) VALUES ('total_volume', $1::numeric)
		ON CONFLICT (name) DO UPDATE SET value=EXCLUDED.value`, v.Dec())
	if err != nil {
		return fmt.Errorf("set total volume: %w", err)
	}
	return nil
}

func (s *Store) userList(ctx context.Context, query, user string) ([]string, error) {
	var list []string
	err := s.db.QueryRowContext(ctx, query, user).Scan(pq.Array(&list))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	return list, nil
}

func parseAmount(v string) (*uint256.Int, error) {
	x, err := uint256.FromDecimal(v)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", v, err)
	}
	return x, nil
}
