package service

import (
	"context"
	"errors"

	"bookstore-service/internal/auth"
	"bookstore-service/internal/models"
	"bookstore-service/internal/store"
	"bookstore-service/internal/util"

	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for a bad username or password.
// The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AccountService handles registration, login and the admin user CRUD
type AccountService struct {
	store    *store.Store
	sessions *auth.SessionManager
	logger   *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(store *store.Store, sessions *auth.SessionManager) *AccountService {
	return &AccountService{
		store:    store,
		sessions: sessions,
		logger:   util.GetLogger(),
	}
}

// Register creates a new non-admin account. Duplicate usernames and
// emails fail with store.ErrConflict and create nothing.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingField
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	util.RegistrationsTotal.Inc()
	s.logger.Info("User registered", zap.String("username", username))
	return user, nil
}

// LoginResult carries the minted session and the landing hint
type LoginResult struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	IsAdmin bool         `json:"is_admin"`
}

// Login verifies credentials and mints a session token. Admin
// accounts are flagged so the client can route to the back-office
// landing.
func (s *AccountService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		util.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	util.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return &LoginResult{Token: token, User: user, IsAdmin: user.IsAdmin}, nil
}

// Logout destroys the session token
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// AdminCreateUser creates an account from the back-office, with
// password confirmation and an explicit balance and admin flag.
func (s *AccountService) AdminCreateUser(ctx context.Context, username, email, password, confirm, address string, isAdmin bool, balance int64) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingField
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Address:      address,
		IsAdmin:      isAdmin,
		Balance:      balance,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUpdateUserParams are the editable account fields. A non-empty
// Password (with matching Confirm) replaces the credential.
type AdminUpdateUserParams struct {
	Username string
	Email    string
	Address  string
	IsAdmin  bool
	Balance  int64
	Password string
	Confirm  string
}

// AdminUpdateUser edits an account from the back-office. The email
// must not belong to another user.
func (s *AccountService) AdminUpdateUser(ctx context.Context, userID int64, params AdminUpdateUserParams) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	taken, err := s.store.EmailTakenByOther(ctx, params.Email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, store.ErrConflict
	}

	user.Username = params.Username
	user.Email = params.Email
	user.Address = params.Address
	user.IsAdmin = params.IsAdmin
	user.Balance = params.Balance

	if params.Password != "" {
		if params.Password != params.Confirm {
			return nil, ErrPasswordMismatch
		}
		hash, err := auth.HashPassword(params.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminDeleteUser removes an account with its carts and feedback in
// one transaction; orders follow via the ownership relationship.
func (s *AccountService) AdminDeleteUser(ctx context.Context, userID int64) error {
	if err := s.store.DeleteUserTx(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.Int64("user_id", userID))
	return nil
}

// ListUsers retrieves all accounts except the seed admin
func (s *AccountService) ListUsers(ctx context.Context, excludeUsername string) ([]models.User, error) {
	return s.store.ListUsers(ctx, excludeUsername)
}

// GetUser retrieves one account
func (s *AccountService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}
