package auth

import (
	"fmt"

	"github.com/adventure-league/tracker/internal/domain"
)

// RequireRole aborts a privileged operation before any store is touched:
// ErrUnauthorized when there is no actor, ErrForbidden when the actor's role
// ranks below the required one.
func RequireRole(actor domain.User, required domain.Role) error {
	if actor.ID == "" {
		return domain.ErrUnauthorized
	}
	if !actor.Role.AtLeast(required) {
		return fmt.Errorf("%w: requires %s", domain.ErrForbidden, required)
	}
	return nil
}
