package dto

import (
	"time"

	"github.com/spec-kit/event-platform/internal/auth"
	"github.com/spec-kit/event-platform/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse is the public view of a user. The password hash is never included.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// PrincipalResponse describes the caller of GET /api/me.
type PrincipalResponse struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	Authority string `json:"authority"`
}

func NewAuthResponse(user *domain.User, token auth.IssuedToken) AuthResponse {
	return AuthResponse{
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}
}

func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func NewPrincipalResponse(p *auth.Principal) PrincipalResponse {
	return PrincipalResponse{Email: p.Subject, Role: string(p.Role), Authority: p.Authority()}
}
