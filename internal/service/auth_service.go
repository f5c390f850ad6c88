package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/curriculum-api/internal/models"
	"github.com/noah-isme/curriculum-api/internal/repository"
	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// SessionRepository persists server-side sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	Issuer        string
	Audit         bool
}

// AuthService provides login, logout and session resolution. It is the only
// writer of session state.
type AuthService struct {
	repo      authUserRepository
	sessions  SessionRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, sessions SessionRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 24 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "curriculum-api"
	}
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equaliseTiming burns one bcrypt comparison so unknown emails take as long
// as wrong passwords.
func equaliseTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("curriculum-api-dummy"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Login authenticates a user, opens a session and returns its signed token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			equaliseTiming(req.Password)
			s.metrics.RecordLogin(LoginOutcomeInvalid)
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		s.metrics.RecordLogin(LoginOutcomeError)
		s.logger.Error("login lookup failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "server error during login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.RecordLogin(LoginOutcomeInvalid)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	now := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.metrics.RecordLogin(LoginOutcomeError)
		s.logger.Error("failed to create session", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrSession.Code, appErrors.ErrSession.Status, "server error during login")
	}

	token, err := s.signSessionToken(session)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		s.metrics.RecordLogin(LoginOutcomeError)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "server error during login")
	}

	s.metrics.RecordLogin(LoginOutcomeSuccess)
	s.audit(ctx, &user.ID, models.AuditActionLogin, `{"status":"success"}`, req)

	return &models.LoginResult{User: user.Info(), Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Logout destroys the caller's session. Without a session it is a no-op.
func (s *AuthService) Logout(ctx context.Context, session *models.Session, meta models.LoginRequest) error {
	if session == nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		s.logger.Error("failed to destroy session", zap.String("session_id", session.ID), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrSession.Code, appErrors.ErrSession.Status, "logout failed")
	}
	userID := session.UserID
	s.audit(ctx, &userID, models.AuditActionLogout, `{"status":"logout"}`, meta)
	return nil
}

// CurrentSession reports the identity bound to session. It never fails.
func (s *AuthService) CurrentSession(session *models.Session) models.SessionStatus {
	if session == nil {
		return models.SessionStatus{Authenticated: false}
	}
	user := session.User()
	return models.SessionStatus{Authenticated: true, User: &user}
}

// ResolveToken verifies a session cookie value and loads the live session.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (*models.Session, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SessionSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.ID == "" {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session")
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrSession.Code, appErrors.ErrSession.Status, "failed to load session")
	}

	if strconv.FormatInt(session.UserID, 10) != claims.Subject {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session")
	}
	return session, nil
}

func (s *AuthService) signSessionToken(session *models.Session) (string, error) {
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Issuer:    s.config.Issuer,
			Subject:   strconv.FormatInt(session.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.SessionSecret))
}

func (s *AuthService) audit(ctx context.Context, userID *int64, action, values string, meta models.LoginRequest) {
	if !s.config.Audit {
		return
	}
	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Resource:  "auth",
		NewValues: []byte(values),
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record auth audit log", zap.String("action", action), zap.Error(err))
	}
}
