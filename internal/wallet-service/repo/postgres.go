package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Postgres implementa operações de carteira em banco.
// Saldos em NUMERIC(78,0) (attos), comparados e somados no próprio SQL.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotFound          = errors.New("not found")
)

// EnsureSchema cria as tabelas de carteira se ainda não existem.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS wallets (
		id      TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		balance NUMERIC(78,0) NOT NULL DEFAULT 0,
		version BIGINT NOT NULL DEFAULT 1
	);
	CREATE TABLE IF NOT EXISTS wallet_transfers (
		id           TEXT PRIMARY KEY,
		wallet_id    TEXT NOT NULL,
		external_ref TEXT NOT NULL,
		direction    TEXT NOT NULL, -- 'DEBIT' | 'CREDIT'
		amount       NUMERIC(78,0) NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (wallet_id, external_ref)
	);
	CREATE TABLE IF NOT EXISTS wallet_ledger (
		id             BIGSERIAL PRIMARY KEY,
		wallet_id      TEXT NOT NULL,
		operation_type TEXT NOT NULL,
		amount         NUMERIC(78,0) NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure wallet schema: %w", err)
	}
	return nil
}

// GetOrCreateWallet retorna o walletId e saldo de um usuário, criando a carteira se não existir
// Usa transação para garantir atomicidade
func (p *Postgres) GetOrCreateWallet(ctx context.Context, userID string) (walletID string, balance string, err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", "", err
	}
	defer tx.Rollback()

	var id, bal string
	err = tx.QueryRowContext(ctx, `SELECT id, balance::text FROM wallets WHERE user_id=$1`, userID).Scan(&id, &bal)
	if err == sql.ErrNoRows {
		id = uuid.New().String()
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO wallets(id, user_id, balance, version) VALUES($1,$2,0,1)`,
			id, userID); err != nil {
			return "", "", err
		}
		bal = "0"
	} else if err != nil {
		return "", "", err
	}

	if err = tx.Commit(); err != nil {
		return "", "", err
	}

	return id, bal, nil
}

// Deposit incrementa o saldo da carteira e registra a operação no ledger
// Garante lock pessimista na linha da carteira
func (p *Postgres) Deposit(ctx context.Context, userID string, amount string, externalRef string) (walletID string, newBalance string, err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", "", err
	}
	defer tx.Rollback()

	var id string
	if err = tx.QueryRowContext(ctx, `SELECT id FROM wallets WHERE user_id=$1 FOR UPDATE`, userID).Scan(&id); err != nil {
		return "", "", err
	}

	if _, err = tx.ExecContext(ctx, `UPDATE wallets SET balance = balance + $1::numeric, version = version + 1 WHERE id=$2`, amount, id); err != nil {
		return "", "", err
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO wallet_ledger(wallet_id, operation_type, amount, description) VALUES($1,'CREDIT',$2::numeric,$3)`,
		id, amount, "deposit:"+externalRef); err != nil {
		return "", "", err
	}

	if err = tx.QueryRowContext(ctx, `SELECT balance::text FROM wallets WHERE id=$1`, id).Scan(&newBalance); err != nil {
		return "", "", err
	}

	if err = tx.Commit(); err != nil {
		return "", "", err
	}
	return id, newBalance, nil
}

// Debit desconta saldo da carteira; idempotente por (wallet_id, external_ref).
// O trade já foi aplicado pelo núcleo quando o débito chega aqui, então a
// comparação de saldo acontece no SQL para não haver janela entre leitura
// e escrita.
func (p *Postgres) Debit(ctx context.Context, userID, amount, externalRef string) (transferID string, newBalance string, err error) {
	return p.transfer(ctx, userID, amount, externalRef, "DEBIT")
}

// Credit devolve/paga saldo; cria a carteira se ainda não existir, porque
// prêmios podem chegar antes do primeiro depósito.
func (p *Postgres) Credit(ctx context.Context, userID, amount, externalRef string) (transferID string, newBalance string, err error) {
	if _, _, err := p.GetOrCreateWallet(ctx, userID); err != nil {
		return "", "", err
	}
	return p.transfer(ctx, userID, amount, externalRef, "CREDIT")
}

func (p *Postgres) transfer(ctx context.Context, userID, amount, externalRef, direction string) (string, string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", "", err
	}
	defer tx.Rollback()

	var walletID, balance string
	err = tx.QueryRowContext(ctx, `SELECT id, balance::text FROM wallets WHERE user_id=$1 FOR UPDATE`, userID).Scan(&walletID, &balance)
	if err == sql.ErrNoRows {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", err
	}

	// Idempotência: mesma external_ref devolve a transferência existente
	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM wallet_transfers WHERE wallet_id=$1 AND external_ref=$2`, walletID, externalRef).Scan(&existing)
	if err == nil {
		return existing, balance, nil
	}
	if err != sql.ErrNoRows {
		return "", "", err
	}

	if direction == "DEBIT" {
		var enough bool
		if err = tx.QueryRowContext(ctx, `SELECT balance >= $1::numeric FROM wallets WHERE id=$2`, amount, walletID).Scan(&enough); err != nil {
			return "", "", err
		}
		if !enough {
			return "", "", ErrInsufficientFunds
		}
		if _, err = tx.ExecContext(ctx, `UPDATE wallets SET balance = balance - $1::numeric, version = version + 1 WHERE id=$2`, amount, walletID); err != nil {
			return "", "", err
		}
	} else {
		if _, err = tx.ExecContext(ctx, `UPDATE wallets SET balance = balance + $1::numeric, version = version + 1 WHERE id=$2`, amount, walletID); err != nil {
			return "", "", err
		}
	}

	transferID := uuid.New().String()
	if _, err = tx.ExecContext(ctx, `INSERT INTO wallet_transfers(id, wallet_id, external_ref, direction, amount) VALUES($1,$2,$3,$4,$5::numeric)`,
		transferID, walletID, externalRef, direction, amount); err != nil {
		return "", "", err
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO wallet_ledger(wallet_id, operation_type, amount, description) VALUES($1,$2,$3::numeric,$4)`,
		walletID, direction, amount, direction+":"+externalRef); err != nil {
		return "", "", err
	}

	var newBalance string
	if err = tx.QueryRowContext(ctx, `SELECT balance::text FROM wallets WHERE id=$1`, walletID).Scan(&newBalance); err != nil {
		return "", "", err
	}

	if err = tx.Commit(); err != nil {
		return "", "", err
	}
	return transferID, newBalance, nil
}
