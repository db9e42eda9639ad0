package context

import (
	"alerte/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyActor is the key for storing the authenticated profile in context.
const KeyActor ContextKey = "actor"

// SetActor stores the reconciled profile of the authenticated caller.
func SetActor(c echo.Context, user *entity.User) {
	c.Set(string(KeyActor), user)
}

// GetActor retrieves the authenticated profile from echo.Context.
// Returns nil when the request did not pass authentication.
func GetActor(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyActor)).(*entity.User); ok {
		return user
	}

	return nil
}
