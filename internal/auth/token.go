package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/event-platform/internal/domain"
)

// MinSecretLength is the smallest HMAC key accepted, matching HS256's 256-bit minimum.
const MinSecretLength = 32

const defaultTokenTTL = 60 * time.Minute

var (
	// ErrInvalidToken is returned for any token that fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for a well-signed token past its exp claim.
	// It wraps ErrInvalidToken.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)
	// ErrInvalidSigningKey reports a missing or too short signing secret.
	ErrInvalidSigningKey = errors.New("invalid signing key")
)

var hmacMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// TokenManager issues and verifies HMAC-signed access tokens with a shared secret.
// It is immutable after construction and safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	method jwt.SigningMethod
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for iat/exp and for validation.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a manager for the given secret. The HMAC variant follows
// the key size: HS512 for 64+ bytes, HS384 for 48+, HS256 otherwise.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: secret must be at least %d bytes", ErrInvalidSigningKey, MinSecretLength)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	tm := &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		method: methodForKey(len(secret)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

func methodForKey(size int) jwt.SigningMethod {
	switch {
	case size >= 64:
		return jwt.SigningMethodHS512
	case size >= 48:
		return jwt.SigningMethodHS384
	default:
		return jwt.SigningMethodHS256
	}
}

// Claims describes the JWT payload: sub, role, iat, exp and jti.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token with its validity window.
type IssuedToken struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issue signs a token for the subject and role.
func (tm *TokenManager) Issue(subject string, role domain.Role) (IssuedToken, error) {
	if subject == "" {
		return IssuedToken{}, errors.New("subject required")
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return IssuedToken{}, err
	}

	issuedAt := tm.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(tm.method, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Token: tokenString, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// Verify validates signature, structure and expiry and returns the principal
// carried by the token.
func (tm *TokenManager) Verify(tokenStr string) (*Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods(hmacMethods),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &Principal{Subject: claims.Subject, Role: role}, nil
}

// TTL returns the configured validity window.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
