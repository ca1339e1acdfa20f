package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreditBalance increases a user's balance by amount (cents).
func (s *Store) CreditBalance(ctx context.Context, userID, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET balance = balance + $1 WHERE id = $2", amount, userID)
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DebitBalance decreases a user's balance by amount (cents). The
// caller is responsible for checking sufficiency first; settlement
// does so under a row lock in PlaceOrderTx.
func (s *Store) DebitBalance(ctx context.Context, userID, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET balance = balance - $1 WHERE id = $2", amount, userID)
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// lockBalance reads the user's balance with a row lock, serializing
// concurrent balance mutations for the same user.
func lockBalance(ctx context.Context, tx *sqlx.Tx, userID int64) (int64, error) {
	var balance int64
	err := tx.GetContext(ctx, &balance,
		"SELECT balance FROM users WHERE id = $1 FOR UPDATE", userID)
	if err == sql.ErrNoRows {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock user balance: %w", err)
	}
	return balance, nil
}

func creditBalanceTx(ctx context.Context, tx *sqlx.Tx, userID, amount int64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE users SET balance = balance + $1 WHERE id = $2", amount, userID)
	return err
}

func debitBalanceTx(ctx context.Context, tx *sqlx.Tx, userID, amount int64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE users SET balance = balance - $1 WHERE id = $2", amount, userID)
	return err
}
