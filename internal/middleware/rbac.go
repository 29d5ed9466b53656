package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openclass/courseware-backend/internal/authz"
	"github.com/openclass/courseware-backend/internal/response"
)

// GroupResolver looks up the actor's current group names.
// *repository.UserRepository satisfies it.
type GroupResolver interface {
	GroupNames(ctx context.Context, userID int) ([]string, error)
}

// RequireAction authorizes the named action against a collection's rule
// table. Group membership is resolved fresh on every request, so a revoked
// group denies immediately regardless of what the token was issued with.
// Denials short-circuit before any handler logic runs.
func RequireAction(resolver GroupResolver, rules []authz.Rule, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		groups, err := resolver.GroupNames(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		if !authz.Allowed(groups, rules, action) {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}

		c.Next()
	}
}
