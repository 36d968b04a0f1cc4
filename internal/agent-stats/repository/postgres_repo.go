package repository

import (
	"context"
	"database/sql"
)

// PostgresRepo mantém a projeção de estatísticas dos agentes de trading.
// Cada trade/claim do dono de um agente atualiza os contadores de todos
// os agentes dele. PnL é contabilizado em tokens inteiros (attos / 10^18)
// para caber em BIGINT; win_rate em base 10000.
type PostgresRepo struct {
	DB *sql.DB
}

// ApplyTrade soma volume e conta o trade; compra reduz o PnL pelo custo,
// venda soma os proventos.
func (r *PostgresRepo) ApplyTrade(ctx context.Context, trader, side, amount string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE agents SET
			total_volume = total_volume + $2::numeric,
			total_trades = total_trades + 1,
			profit_loss  = profit_loss +
				(CASE WHEN $3 = 'SELL' THEN 1 ELSE -1 END) * ($2::numeric / 1000000000000000000)::bigint,
			win_rate     = winning_trades * 10000 / (total_trades + 1)
		WHERE owner = $1 AND is_active`, trader, amount, side)
	return err
}

// ApplyClaim conta o trade vencedor e soma o prêmio ao PnL.
func (r *PostgresRepo) ApplyClaim(ctx context.Context, user, payout string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE agents SET
			winning_trades = winning_trades + 1,
			profit_loss    = profit_loss + ($2::numeric / 1000000000000000000)::bigint,
			win_rate       = CASE WHEN total_trades > 0
				THEN LEAST((winning_trades + 1) * 10000 / total_trades, 10000)
				ELSE 0 END
		WHERE owner = $1 AND is_active`, user, payout)
	return err
}

// ApplyComboSettled ajusta o PnL do dono conforme o resultado do combo.
func (r *PostgresRepo) ApplyComboSettled(ctx context.Context, owner, status, payout string) error {
	if status != "WON" {
		return nil
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE agents SET
			winning_trades = winning_trades + 1,
			profit_loss    = profit_loss + ($2::numeric / 1000000000000000000)::bigint
		WHERE owner = $1 AND is_active`, owner, payout)
	return err
}
