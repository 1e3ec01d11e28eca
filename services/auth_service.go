package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	awspkg "github.com/tebele-dev/tailor-made-couture/pkg/aws"
	"github.com/tebele-dev/tailor-made-couture/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionKeyPrefix = "tmc_user:"

const (
	msgCredentialsRequired = "Email and password are required"
	msgInvalidEmail        = "Please enter a valid email address"
	msgAllFieldsRequired   = "All fields are required"
	msgPasswordMismatch    = "Passwords do not match"
	msgPasswordTooShort    = "Password must be at least 6 characters"
	msgSaveUserFailed      = "Failed to save user data"

	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type demoAccount struct {
	email        string
	passwordHash []byte
	name         string
	role         models.Role
}

// AuthService signs demo accounts in and out and restores sessions.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, sessionID string)
	Hydrate(ctx context.Context, sessionID string) *models.User
	ParseToken(token string) (*SessionClaims, error)
}

type authServiceImpl struct {
	accounts []demoAccount
	store    repository.KVStore
	tokens   TokenService
	ttl      time.Duration
	metrics  awspkg.MetricsRecorder
	now      func() time.Time
	logger   *zap.Logger
}

func NewAuthService(store repository.KVStore, tokens TokenService, ttl time.Duration, metrics awspkg.MetricsRecorder, logger *zap.Logger) (AuthService, error) {
	seed := []struct {
		email, password, name string
		role                  models.Role
	}{
		{"admin@tailormade.com", "admin123", "Admin User", models.RoleAdmin},
		{"customer@tailormade.com", "customer123", "Customer User", models.RoleShopper},
	}

	accounts := make([]demoAccount, 0, len(seed))
	for _, a := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash demo password: %w", err)
		}
		accounts = append(accounts, demoAccount{email: a.email, passwordHash: hash, name: a.name, role: a.role})
	}

	return &authServiceImpl{
		accounts: accounts,
		store:    store,
		tokens:   tokens,
		ttl:      ttl,
		metrics:  metrics,
		now:      time.Now,
		logger:   logger,
	}, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, apperrors.Validation(msgCredentialsRequired)
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.Format(msgInvalidEmail)
	}

	account := s.match(email, password)
	if account == nil {
		s.recordLoginFailure(ctx)
		return nil, apperrors.ErrInvalidCredentials
	}

	user := models.User{
		ID:    fmt.Sprintf("u_%d", s.now().UnixMilli()),
		Email: account.email,
		Name:  account.name,
		Role:  account.role,
	}
	return s.startSession(ctx, user)
}

// Signup validates the registration form, then signs in against the demo
// accounts and keeps the submitted display name.
func (s *authServiceImpl) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, apperrors.Validation(msgAllFieldsRequired)
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.Validation(msgPasswordMismatch)
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.Validation(msgPasswordTooShort)
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, apperrors.Format(msgInvalidEmail)
	}

	account := s.match(req.Email, req.Password)
	if account == nil {
		s.recordLoginFailure(ctx)
		return nil, apperrors.ErrInvalidCredentials
	}

	user := models.User{
		ID:    fmt.Sprintf("u_%d", s.now().UnixMilli()),
		Email: account.email,
		Name:  req.Name,
		Role:  account.role,
	}
	return s.startSession(ctx, user)
}

// match compares email exactly and the password against the stored hash.
func (s *authServiceImpl) match(email, password string) *demoAccount {
	for i := range s.accounts {
		a := &s.accounts[i]
		if a.email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil {
			return a
		}
	}
	return nil
}

func (s *authServiceImpl) startSession(ctx context.Context, user models.User) (*models.AuthResponse, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: s.now(),
	}
	if err := repository.SaveJSON(ctx, s.store, sessionKey(session.ID), session, s.ttl); err != nil {
		s.logger.Error("Failed to persist session", zap.String("user_id", user.ID), zap.Error(err))
		return nil, apperrors.Storage(msgSaveUserFailed, err)
	}

	token, err := s.tokens.Issue(session)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInternalServer.Code, apperrors.KindInternal, "Failed to issue session token", err)
	}

	s.logger.Info("User signed in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return &models.AuthResponse{
		Token:     token,
		SessionID: session.ID,
		User:      user,
		Redirect:  user.HomeRoute(),
	}, nil
}

func (s *authServiceImpl) recordLoginFailure(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.RecordCount(ctx, awspkg.MetricLoginFailed, nil); err != nil {
		s.logger.Warn("Failed to record login failure metric", zap.Error(err))
	}
}

func (s *authServiceImpl) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.store.Delete(ctx, sessionKey(sessionID)); err != nil {
		s.logger.Error("Error during logout", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// Hydrate restores the session user. Missing or corrupt records yield nil; a
// corrupt record is also removed.
func (s *authServiceImpl) Hydrate(ctx context.Context, sessionID string) *models.User {
	if sessionID == "" {
		return nil
	}
	data, err := s.store.Get(ctx, sessionKey(sessionID))
	if err != nil {
		s.logger.Error("Failed to read session", zap.String("session_id", sessionID), zap.Error(err))
		return nil
	}
	if data == nil {
		return nil
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil || session.User.ID == "" {
		if err == nil {
			err = fmt.Errorf("session record has no user")
		}
		s.logger.Warn("Discarding stored session",
			zap.String("session_id", sessionID),
			zap.Error(apperrors.Storage("Stored session is corrupt", err)),
		)
		if delErr := s.store.Delete(ctx, sessionKey(sessionID)); delErr != nil {
			s.logger.Error("Failed to clear corrupt session", zap.String("session_id", sessionID), zap.Error(delErr))
		}
		return nil
	}

	user := session.User
	if strings.TrimSpace(string(user.Role)) == "" {
		user.Role = models.RoleShopper
	}
	return &user
}

func (s *authServiceImpl) ParseToken(token string) (*SessionClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidToken.Code, apperrors.KindAuth, apperrors.ErrInvalidToken.Message, err)
	}
	return claims, nil
}
