package middleware

import (
	"context"

	"bookstore/internal/common"
	"bookstore/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "claims"

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTMiddleware handles JWT token validation
type JWTMiddleware struct {
	secret  []byte
	revoked RevocationChecker
}

func NewJWTMiddleware(secret string, revoked RevocationChecker) *JWTMiddleware {
	return &JWTMiddleware{secret: []byte(secret), revoked: revoked}
}

// Authenticate verifies the bearer token, rejects revoked tokens and puts the
// user id and role on the request context.
func (m *JWTMiddleware) Authenticate() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:    m.secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.TokenClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorizedError(c)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(m.loadClaims(next))
	}
}

func (m *JWTMiddleware) loadClaims(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return common.SendUnauthorizedError(c)
		}
		claims, ok := token.Claims.(*models.TokenClaims)
		if !ok || claims.UserID == 0 {
			return common.SendUnauthorizedError(c)
		}

		ctx := c.Request().Context()
		if m.revoked != nil {
			revoked, err := m.revoked.IsTokenRevoked(ctx, claims.ID)
			if err != nil {
				return common.SendFailure(c, "Failed to verify token", err)
			}
			if revoked {
				return common.SendUnauthorizedError(c)
			}
		}

		c.Set(claimsContextKey, claims)
		c.SetRequest(c.Request().WithContext(common.WithUser(ctx, claims.UserID, claims.Role)))
		return next(c)
	}
}

// ClaimsFromContext returns the verified claims of the current request.
func ClaimsFromContext(c echo.Context) (*models.TokenClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*models.TokenClaims)
	return claims, ok
}
