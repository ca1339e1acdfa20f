package service

import (
	"context"
	"strings"

	"bookstore-service/internal/models"
	"bookstore-service/internal/store"
	"bookstore-service/internal/util"

	"go.uber.org/zap"
)

// FeedbackService handles the feedback/response channel
type FeedbackService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(store *store.Store) *FeedbackService {
	return &FeedbackService{store: store, logger: util.GetLogger()}
}

// Submit records a feedback entry for the user
func (s *FeedbackService) Submit(ctx context.Context, userID int64, content string) (*models.Feedback, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	feedback := &models.Feedback{UserID: userID, Content: content}
	if err := s.store.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	s.logger.Info("Feedback submitted", zap.Int64("user_id", userID), zap.Int64("feedback_id", feedback.ID))
	return feedback, nil
}

// ListMine retrieves the user's own feedback entries
func (s *FeedbackService) ListMine(ctx context.Context, userID int64) ([]models.Feedback, error) {
	return s.store.ListFeedbackByUser(ctx, userID)
}

// DeleteOwn removes a feedback entry owned by the user; other users'
// entries report ErrNotFound.
func (s *FeedbackService) DeleteOwn(ctx context.Context, userID, feedbackID int64) error {
	return s.store.DeleteFeedbackOwned(ctx, userID, feedbackID)
}

// ListAll retrieves every feedback entry for the back-office
func (s *FeedbackService) ListAll(ctx context.Context) ([]models.Feedback, error) {
	return s.store.ListFeedback(ctx)
}

// Respond stores the admin response on a feedback entry
func (s *FeedbackService) Respond(ctx context.Context, feedbackID int64, response string) error {
	if strings.TrimSpace(response) == "" {
		return ErrEmptyContent
	}
	return s.store.RespondFeedback(ctx, feedbackID, response)
}

// AdminDelete removes any feedback entry
func (s *FeedbackService) AdminDelete(ctx context.Context, feedbackID int64) error {
	return s.store.DeleteFeedback(ctx, feedbackID)
}
