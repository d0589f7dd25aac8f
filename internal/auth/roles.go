package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-platform/internal/domain"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

var (
	// StaffRoles may manage events, budgets and planners.
	StaffRoles = []domain.Role{domain.RoleAdmin, domain.RoleManager}
	// AllRoles covers every authenticated caller.
	AllRoles = []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleUser}
)

// RequireRoles rejects anonymous callers with 401 and callers whose role is not
// in the allowed set with 403. With no roles given any authenticated caller passes.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgAuthenticationRequired)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden(MsgInsufficientRole)
		}
		return c.Next()
	}
}

// RequireStaff allows ADMIN and MANAGER.
func RequireStaff() fiber.Handler {
	return RequireRoles(StaffRoles...)
}

// RequireAnyRole ensures the caller is authenticated with a known role.
func RequireAnyRole() fiber.Handler {
	return RequireRoles(AllRoles...)
}
