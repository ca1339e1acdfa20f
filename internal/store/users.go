package store

import (
	"context"
	"database/sql"
	"fmt"

	"bookstore-service/internal/models"
)

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE username = $1", username)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser persists a new user. Returns ErrConflict on a duplicate
// username or email.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, address, is_admin, balance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := s.db.GetContext(ctx, user, query,
		user.Username, user.Email, user.PasswordHash, user.Address, user.IsAdmin, user.Balance)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUser updates a user's profile fields, balance and credential.
// Returns ErrConflict if the email is taken by another user.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, address = $4, is_admin = $5, balance = $6
		WHERE id = $7`,
		user.Username, user.Email, user.PasswordHash, user.Address, user.IsAdmin, user.Balance, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to update user: %w", err)
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

// EmailTakenByOther reports whether the email belongs to a user other
// than excludeID.
func (s *Store) EmailTakenByOther(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)", email, excludeID)
	return exists, err
}

// ListUsers retrieves all users except the named one (the seed admin
// is hidden from the back-office list).
func (s *Store) ListUsers(ctx context.Context, excludeUsername string) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users,
		"SELECT * FROM users WHERE username != $1 ORDER BY id", excludeUsername)
	return users, err
}

// DeleteUserTx deletes a user together with their carts and feedback
// in one transaction. Orders and their items go with the user via the
// ownership relationship; cart items go with the cart.
func (s *Store) DeleteUserTx(ctx context.Context, userID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM carts WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete carts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM feedback WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
