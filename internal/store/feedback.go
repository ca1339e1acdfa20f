package store

import (
	"context"
	"database/sql"
	"fmt"

	"bookstore-service/internal/models"
)

// CreateFeedback persists a new feedback entry
func (s *Store) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (user_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := s.db.GetContext(ctx, feedback, query, feedback.UserID, feedback.Content)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// GetFeedbackByID retrieves a feedback entry by ID
func (s *Store) GetFeedbackByID(ctx context.Context, id int64) (*models.Feedback, error) {
	var feedback models.Feedback
	err := s.db.GetContext(ctx, &feedback, "SELECT * FROM feedback WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListFeedbackByUser retrieves a user's own feedback entries
func (s *Store) ListFeedbackByUser(ctx context.Context, userID int64) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := s.db.SelectContext(ctx, &feedbacks,
		"SELECT * FROM feedback WHERE user_id = $1 ORDER BY created_at DESC", userID)
	return feedbacks, err
}

// ListFeedback retrieves all feedback entries for the back-office
func (s *Store) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := s.db.SelectContext(ctx, &feedbacks, "SELECT * FROM feedback ORDER BY created_at DESC")
	return feedbacks, err
}

// DeleteFeedbackOwned removes a feedback entry only if it belongs to
// the given user. Returns ErrNotFound otherwise.
func (s *Store) DeleteFeedbackOwned(ctx context.Context, userID, feedbackID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM feedback WHERE id = $1 AND user_id = $2", feedbackID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
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

// DeleteFeedback removes any feedback entry (admin path)
func (s *Store) DeleteFeedback(ctx context.Context, feedbackID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM feedback WHERE id = $1", feedbackID)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
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

// RespondFeedback stores the admin response on a feedback entry
func (s *Store) RespondFeedback(ctx context.Context, feedbackID int64, response string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE feedback SET response = $1 WHERE id = $2", response, feedbackID)
	if err != nil {
		return fmt.Errorf("failed to respond to feedback: %w", err)
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
