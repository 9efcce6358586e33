package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims issued by the external identity provider.
// The subject is the user ID; Role is one of admin, editor, viewer.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and stores the acting user (ID and role) in the request context.
// A non-empty issuer must match the token's iss claim.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	var parserOptions []jwt.ParserOption
	if issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(issuer))
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required", "kind": "unauthorized"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "kind": "unauthorized"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		}, parserOptions...)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "kind": "unauthorized"})
			return
		}

		if !token.Valid || claims.Subject == "" {
			logger.Warn("Invalid token claims or token is not valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims", "kind": "unauthorized"})
			return
		}

		user := domain.ActingUser{UserID: claims.Subject, Role: domain.ParseRole(claims.Role)}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
		ctx := WithActingUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))
		c.Set(string(userIDKey), user.UserID)
		c.Set(string(roleKey), user.Role)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user is an admin.
// Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetActingUserFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "kind": "unauthorized"})
			return
		}
		if !user.Role.IsAdmin() {
			GetLoggerFromCtx(c.Request.Context()).Warn("Admin route denied", slog.String("role", string(user.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required", "kind": "access_denied"})
			return
		}
		c.Next()
	}
}
