package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adventure-league/tracker/internal/auth"
	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/service"
)

const ContextUserKey = "user"

// RequireAuth verifies the bearer token (or the token cookie set at login)
// and loads the active user into the request context.
func RequireAuth(tokens *auth.Tokens, tracker *service.Tracker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		userID, err := tokens.Verify(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := tracker.CurrentUser(ctx.Request.Context(), userID)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}

		return ""
	}

	if cookie, err := ctx.Cookie("token"); err == nil {
		return cookie
	}

	return ""
}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(ctx *gin.Context) (domain.User, bool) {
	value, exists := ctx.Get(ContextUserKey)

	if !exists {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)

	return user, ok
}
