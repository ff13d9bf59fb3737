package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/purvjoshi04/SharedInk/internal/auth"
	"github.com/purvjoshi04/SharedInk/pkg/log"
	"github.com/purvjoshi04/SharedInk/pkg/response"
)

// ctxKeyUserID is the gin context key the middleware stores the
// authenticated user id under. It matches the request logger's user
// field so completed-request logs carry the actor.
const ctxKeyUserID = log.FieldUserID

// AuthRequired verifies the bearer token and stores the user id in the
// request context.
func AuthRequired(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			response.Unauthorized(c, "malformed authorization header")
			c.Abort()
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(ctxKeyUserID, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxKeyUserID)
}
