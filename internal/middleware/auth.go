package middleware

import (
	"net/http"
	"strings"

	"menu-service/pkg/jwtutil"
	"menu-service/pkg/logger"
	"menu-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token and extracts the caller's role and
// business type into the request context. Requests without a valid token are
// rejected; use OptionalAuthMiddleware on routes that accept anonymous
// callers.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)
		prometheus.AuthAttemptsCounter.Inc()

		claims, errResp := authenticate(c)
		if errResp != nil {
			prometheus.AuthErrorsCounter.Inc()
			log.Warn("Authentication failed", zap.String("reason", errResp.reason))
			return c.JSON(errResp.status, echo.Map{"error": errResp.message})
		}

		prometheus.AuthSuccessCounter.Inc()
		storeClaims(c, claims)
		log.Info("Request authenticated",
			zap.Uint("user_id", claims.UserID),
			zap.String("role", claims.Role))
		return next(c)
	}
}

// OptionalAuthMiddleware authenticates when an Authorization header is
// present and lets the request through without a role when it is not. A
// caller with no role gets the unrestricted menu view, so a malformed or
// expired token must still be rejected rather than silently downgraded.
func OptionalAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}

		log := logger.FromContext(c)
		prometheus.AuthAttemptsCounter.Inc()

		claims, errResp := authenticate(c)
		if errResp != nil {
			prometheus.AuthErrorsCounter.Inc()
			log.Warn("Authentication failed", zap.String("reason", errResp.reason))
			return c.JSON(errResp.status, echo.Map{"error": errResp.message})
		}

		prometheus.AuthSuccessCounter.Inc()
		storeClaims(c, claims)
		return next(c)
	}
}

type authError struct {
	status  int
	message string
	reason  string
}

func authenticate(c echo.Context) (*jwtutil.UserClaims, *authError) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, &authError{http.StatusUnauthorized, "missing authorization token", "missing header"}
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, &authError{http.StatusUnauthorized, "invalid authorization format, expected Bearer token", "malformed header"}
	}

	claims, err := jwtutil.ValidateToken(parts[1])
	if err != nil {
		return nil, &authError{http.StatusUnauthorized, "invalid or expired token", "invalid token"}
	}
	return claims, nil
}

func storeClaims(c echo.Context, claims *jwtutil.UserClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	if claims.Role != "" {
		c.Set("user_role", claims.Role)
	}
	if claims.BusinessTypeID != nil {
		c.Set("business_type_id", *claims.BusinessTypeID)
	}
}

// RoleFromContext returns the caller's role, or nil when the request carries
// no role and the visibility bypass applies.
func RoleFromContext(c echo.Context) *string {
	if role, ok := c.Get("user_role").(string); ok && role != "" {
		return &role
	}
	return nil
}
