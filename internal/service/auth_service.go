package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/event-platform/internal/auth"
	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/events"
	"github.com/spec-kit/event-platform/internal/ratelimit"
	"github.com/spec-kit/event-platform/internal/repository"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

// LoginThrottle limits repeated failed logins.
type LoginThrottle interface {
	Check(ctx context.Context, email, ip string) error
	RecordFailure(ctx context.Context, email, ip string) error
	Reset(ctx context.Context, email, ip string) error
}

// RegisterInput carries a sign-up request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *domain.User
	Token auth.IssuedToken
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	limiter    LoginThrottle
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	Limiter    LoginThrottle
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		limiter:    deps.Limiter,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: deps.BcryptCost,
	}
}

// Register creates a new account and issues its first token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	details := map[string]any{}
	if email == "" {
		details["email"] = "required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		details["email"] = "invalid"
	}
	if in.Password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid registration request", details)
	}

	role := domain.RoleUser
	if strings.TrimSpace(in.Role) != "" {
		parsed, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": in.Role})
		}
		role = parsed
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("The email already exists", nil)
	} else if !isNotFound(err) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError("The email already exists", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserRegistered, user.ID, user.Email,
		events.UserRegisteredPayload{Email: user.Email, Role: string(user.Role)}))
	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates a user. Failed attempts count against both the email and
// the client address.
func (s *AuthService) Login(ctx context.Context, email, password, clientIP string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	if err := s.checkThrottle(ctx, email, clientIP); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			s.recordFailure(ctx, email, clientIP)
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email, clientIP)
		return nil, apperrors.NewValidationError("Invalid password", nil)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email, clientIP); err != nil {
			s.logger.Warn("login limiter reset failed", zap.Error(err))
		}
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// GetUser returns a user record. Staff may read anyone; other callers only
// themselves.
func (s *AuthService) GetUser(ctx context.Context, principal *auth.Principal, email string) (*domain.User, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized(auth.MsgAuthenticationRequired)
	}
	email = normalizeEmail(email)
	if !principal.HasRole(auth.StaffRoles...) && normalizeEmail(principal.Subject) != email {
		return nil, apperrors.NewForbidden(auth.MsgInsufficientRole)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// checkThrottle fails open when Redis is unreachable.
func (s *AuthService) checkThrottle(ctx context.Context, email, ip string) error {
	if s.limiter == nil {
		return nil
	}
	err := s.limiter.Check(ctx, email, ip)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ratelimit.ErrRateLimited):
		return apperrors.NewTooManyRequests("Too many failed login attempts, try again later")
	default:
		s.logger.Warn("login limiter unavailable", zap.Error(err))
		return nil
	}
}

func (s *AuthService) recordFailure(ctx context.Context, email, ip string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email, ip); err != nil {
		s.logger.Warn("login limiter record failed", zap.Error(err))
	}
}
