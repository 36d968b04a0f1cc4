package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/radieske/prediction-market-poc/internal/query-service/dto"
)

// ReadRepo é o lado de consulta: lê as mesmas tabelas que o market-service
// escreve, mas nunca as altera.
type ReadRepo struct {
	DB *sql.DB
}

const marketCols = `id, creator, question, categories, end_time, yes_pool::text, no_pool::text,
	total_yes_shares::text, total_no_shares::text, volume::text, resolved, outcome`

// ListMarkets filtra por status ("active"/"resolved"/"") e categoria opcional.
func (r *ReadRepo) ListMarkets(ctx context.Context, status, category string) ([]dto.MarketView, error) {
	q := `SELECT ` + marketCols + ` FROM markets`
	var args []any

	switch status {
	case "active":
		q += ` WHERE NOT resolved AND end_time > now()`
	case "resolved":
		q += ` WHERE resolved`
	default:
		q += ` WHERE TRUE`
	}
	if category != "" {
		q += ` AND $1 = ANY(categories)`
		args = append(args, category)
	}
	q += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.MarketView
	for rows.Next() {
		m, err := scanMarket(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ReadRepo) GetMarket(ctx context.Context, id uint64) (dto.MarketView, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+marketCols+` FROM markets WHERE id=$1`, int64(id))
	return scanMarket(row.Scan)
}

func scanMarket(scan func(...any) error) (dto.MarketView, error) {
	var m dto.MarketView
	var endTime sql.NullTime
	var outcome sql.NullBool
	err := scan(&m.MarketID, &m.Creator, &m.Question, pq.Array(&m.Categories), &endTime,
		&m.YesPool, &m.NoPool, &m.TotalYesShares, &m.TotalNoShares, &m.Volume, &m.Resolved, &outcome)
	if err != nil {
		return m, err
	}
	if endTime.Valid {
		m.EndTimeUnixMs = endTime.Time.UnixMilli()
	}
	if outcome.Valid {
		m.Outcome = &outcome.Bool
	}
	return m, nil
}

func (r *ReadRepo) ListPositions(ctx context.Context, owner string) ([]dto.PositionView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT market_id, owner, yes_shares::text, no_shares::text, claimed
		FROM positions WHERE owner=$1 ORDER BY market_id`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.PositionView
	for rows.Next() {
		var p dto.PositionView
		if err := rows.Scan(&p.MarketID, &p.Owner, &p.YesShares, &p.NoShares, &p.Claimed); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ReadRepo) ListOrders(ctx context.Context, owner string) ([]dto.OrderView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, market_id, owner, is_yes, side, price::text, original_amount::text,
		       filled_amount::text, duration, status
		FROM limit_orders WHERE owner=$1 ORDER BY id`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.OrderView
	for rows.Next() {
		var o dto.OrderView
		if err := rows.Scan(&o.OrderID, &o.MarketID, &o.Owner, &o.IsYes, &o.Side, &o.Price,
			&o.OriginalAmount, &o.FilledAmount, &o.Duration, &o.Status); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListMarketOrders lista ordens de um mercado; openOnly restringe a
// OPEN/PARTIALLY_FILLED.
func (r *ReadRepo) ListMarketOrders(ctx context.Context, marketID uint64, openOnly bool) ([]dto.OrderView, error) {
	q := `SELECT id, market_id, owner, is_yes, side, price::text, original_amount::text,
	             filled_amount::text, duration, status
	      FROM limit_orders WHERE market_id=$1`
	if openOnly {
		q += ` AND status IN ('OPEN','PARTIALLY_FILLED')`
	}
	q += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, q, int64(marketID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.OrderView
	for rows.Next() {
		var o dto.OrderView
		if err := rows.Scan(&o.OrderID, &o.MarketID, &o.Owner, &o.IsYes, &o.Side, &o.Price,
			&o.OriginalAmount, &o.FilledAmount, &o.Duration, &o.Status); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *ReadRepo) ListCombos(ctx context.Context, owner string) ([]dto.ComboView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, owner, name, legs, stake::text, potential_payout::text, status
		FROM combos WHERE owner=$1 ORDER BY id`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.ComboView
	for rows.Next() {
		c, err := scanComboView(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReadRepo) GetCombo(ctx context.Context, id uint64) (dto.ComboView, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, owner, name, legs, stake::text, potential_payout::text, status
		FROM combos WHERE id=$1`, int64(id))
	return scanComboView(row.Scan)
}

func scanComboView(scan func(...any) error) (dto.ComboView, error) {
	var c dto.ComboView
	var legsJSON []byte
	if err := scan(&c.ComboID, &c.Owner, &c.Name, &legsJSON, &c.Stake,
		&c.PotentialPayout, &c.Status); err != nil {
		return c, err
	}
	if err := json.Unmarshal(legsJSON, &c.Legs); err != nil {
		return c, err
	}
	return c, nil
}

// ListAgents lista agentes; activeOnly restringe aos habilitados.
func (r *ReadRepo) ListAgents(ctx context.Context, activeOnly bool) ([]dto.AgentView, error) {
	q := `SELECT id, owner, name, strategy, capital::text, total_volume::text,
	             profit_loss, win_rate, total_trades, followers_count, is_active
	      FROM agents`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.AgentView
	for rows.Next() {
		var a dto.AgentView
		if err := rows.Scan(&a.AgentID, &a.Owner, &a.Name, &a.Strategy, &a.Capital, &a.TotalVolume,
			&a.ProfitLoss, &a.WinRate, &a.TotalTrades, &a.FollowersCount, &a.IsActive); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// TopAgents ordena por win_rate; empates caem para volume.
func (r *ReadRepo) TopAgents(ctx context.Context, limit int) ([]dto.AgentView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, owner, name, strategy, capital::text, total_volume::text,
		       profit_loss, win_rate, total_trades, followers_count, is_active
		FROM agents ORDER BY win_rate DESC, total_volume DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.AgentView
	for rows.Next() {
		var a dto.AgentView
		if err := rows.Scan(&a.AgentID, &a.Owner, &a.Name, &a.Strategy, &a.Capital, &a.TotalVolume,
			&a.ProfitLoss, &a.WinRate, &a.TotalTrades, &a.FollowersCount, &a.IsActive); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListFeed pagina do mais recente para o mais antigo; marketID opcional
// restringe a um mercado (nil = feed global).
func (r *ReadRepo) ListFeed(ctx context.Context, marketID *uint64, limit, offset int) ([]dto.FeedItemView, error) {
	q := `SELECT id, author, item_type, market_id, content, likes_count, comments_count, created_at
	      FROM feed_items`
	args := []any{limit, offset}
	if marketID != nil {
		q += ` WHERE market_id=$3`
		args = append(args, int64(*marketID))
	}
	q += ` ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.FeedItemView
	for rows.Next() {
		var item dto.FeedItemView
		var marketID sql.NullInt64
		var createdAt sql.NullTime
		if err := rows.Scan(&item.FeedID, &item.Author, &item.ItemType, &marketID, &item.Content,
			&item.LikesCount, &item.CommentsCount, &createdAt); err != nil {
			return nil, err
		}
		if marketID.Valid {
			id := uint64(marketID.Int64)
			item.MarketID = &id
		}
		if createdAt.Valid {
			item.CreatedAtUnix = createdAt.Time.UnixMilli()
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *ReadRepo) TotalVolume(ctx context.Context) (string, error) {
	var v string
	err := r.DB.QueryRowContext(ctx,
		`SELECT value::text FROM platform_totals WHERE name='total_volume'`).Scan(&v)
	if err == sql.ErrNoRows {
		return "0", nil
	}
	return v, err
}
