package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/event-platform/internal/domain"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

const (
	principalKey = "auth_principal"
	bearerPrefix = "Bearer "
)

// Messages rendered for authentication and authorization failures.
const (
	MsgInvalidToken           = "Invalid token"
	MsgAuthenticationRequired = "Authentication required"
	MsgInsufficientRole       = "Insufficient role"
)

type principalCtxKey struct{}

// Principal represents the authenticated caller.
type Principal struct {
	Subject string
	Role    domain.Role
}

// Authority returns the single authority granted to the principal.
func (p *Principal) Authority() string {
	return p.Role.Authority()
}

// HasRole reports whether the principal holds one of the given roles.
func (p *Principal) HasRole(roles ...domain.Role) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// AuthMiddleware verifies bearer tokens and attaches principals to the request.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle lets requests without a bearer header through anonymously and rejects
// requests whose bearer token fails verification. Role gates further down the
// chain decide whether anonymous access is allowed.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	principal, err := m.tokens.Verify(token)
	if err != nil {
		m.logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return apperrors.NewUnauthorized(MsgInvalidToken)
	}

	c.Locals(principalKey, principal)
	c.SetUserContext(WithPrincipal(c.UserContext(), principal))
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	return header[len(bearerPrefix):], true
}

// PrincipalFromContext retrieves the authenticated caller of a fiber request.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// WithPrincipal returns a copy of ctx carrying the principal.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, principal)
}

// PrincipalFromCtx retrieves a principal stored by WithPrincipal.
func PrincipalFromCtx(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalCtxKey{}).(*Principal)
	return principal, ok && principal != nil
}
