package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dto"
	"github.com/dmitrijs2005/planner/internal/logging"
	"github.com/dmitrijs2005/planner/internal/server/auth"
)

const ownerIDKey = "ownerID"

func OwnerIDFromContext(c *gin.Context) string {
	return c.GetString(ownerIDKey)
}

// Auth rejects requests without a valid bearer token and stores the token's
// owner id on the context.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := strings.TrimSpace(c.GetHeader(common.AuthorizationHeader))
		if len(h) < len(common.BearerPrefix) || !strings.EqualFold(h[:len(common.BearerPrefix)], common.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Error: "missing token"})
			return
		}

		ownerID, err := auth.GetOwnerIDFromToken(strings.TrimSpace(h[len(common.BearerPrefix):]), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
			return
		}
		c.Set(ownerIDKey, ownerID)
		c.Next()
	}
}

func RequestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if owner := OwnerIDFromContext(c); owner != "" {
			args = append(args, "owner", owner)
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			l.Error(c.Request.Context(), "request", args...)
			return
		}
		l.Info(c.Request.Context(), "request", args...)
	}
}
