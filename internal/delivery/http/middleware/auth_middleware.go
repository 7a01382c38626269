package middleware

import (
	"strings"

	"easesupply/config"
	"easesupply/internal/delivery/http/response"
	"easesupply/internal/domain/service"
	"easesupply/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by the auth middleware.
const (
	// ContextKeyAccountID is the token subject: the identity provider's
	// account id. Set by Authenticate.
	ContextKeyAccountID = "accountID"
	// ContextKeyActor is the *entity.User behind the account. Set by
	// RequireUser; absent on routes that only need a valid token.
	ContextKeyActor = "actor"
)

// AuthMiddleware provides middleware for JWT authentication and actor
// resolution. Tokens are issued by the external identity provider; this
// service only verifies them.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userUC   usecase.UserUsecase
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userUC usecase.UserUsecase, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userUC: userUC, cfg: cfg}
}

// Authenticate validates the bearer token and stores the account id on the
// context. It does NOT require the account to be registered in the
// directory; registration itself runs behind this middleware.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "invalid token format, must be Bearer token")
		}

		token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "failed to parse token claims")
		}

		accountID, ok := claims["sub"].(string)
		if !ok || accountID == "" {
			return response.Unauthorized(c, "account id missing from token")
		}

		c.Set(ContextKeyAccountID, accountID)

		return next(c)
	}
}

// RequireUser resolves the authenticated account to its directory entry and
// stores it as the acting user. Must be used AFTER Authenticate. Accounts
// that never registered get the directory's not-found error.
func (m *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accountID, ok := c.Get(ContextKeyAccountID).(string)
		if !ok || accountID == "" {
			return response.Unauthorized(c, "account id missing from context")
		}

		user, err := m.userUC.GetByAccountID(c.Request().Context(), accountID)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		c.Set(ContextKeyActor, user)

		return next(c)
	}
}
