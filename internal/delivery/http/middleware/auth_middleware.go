package middleware

import (
	"strings"

	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/delivery/http/response"
	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/service"
	"alerte/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc       service.TokenService
	profileUsecase usecase.ProfileUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, profileUsecase usecase.ProfileUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, profileUsecase: profileUsecase}
}

// Authenticate validates the access token and resolves the caller's profile.
// The token proves identity only; role and commune come from the reconciled
// profile row, so a stale role claim in an old token never grants access.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authentification requise")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Le jeton doit être de type Bearer")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Jeton invalide ou expiré")
		}

		actor, err := m.profileUsecase.EnsureProfile(c.Request().Context(), claims.Identity())
		if err != nil {
			if errors.Is(err, domainerrors.ErrProfileNotLoaded) {
				return response.Error(c, domainerrors.ErrProfileNotLoaded.HTTPCode(),
					domainerrors.ErrProfileNotLoaded.ErrorCode(),
					domainerrors.ErrProfileNotLoaded.Message(), "")
			}

			return errors.WithStack(err)
		}

		deliverycontext.SetActor(c, actor)

		return next(c)
	}
}

// OptionalAuthenticate resolves the caller's profile when a Bearer token is
// presented and lets the request through without an actor otherwise. Used on
// report submission, which accepts unauthenticated citizens. A token that is
// present but invalid is still rejected.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}

		return m.Authenticate(next)(c)
	}
}

// RequireRole is a middleware factory that checks the reconciled profile's
// role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRoles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := deliverycontext.GetActor(c)
			if actor == nil {
				return response.Forbidden(c, "FORBIDDEN", "Profil non chargé")
			}

			for _, role := range requiredRoles {
				if actor.Role == role {
					return next(c)
				}
			}

			return response.Forbidden(c, "FORBIDDEN", "Accès refusé")
		}
	}
}
