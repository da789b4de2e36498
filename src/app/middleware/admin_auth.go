package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"isiledger/src/app/http/response"
)

// AdminTokenHeader carries the operator token on guarded routes.
const AdminTokenHeader = "X-Admin-Token"

// AdminToken rejects requests whose X-Admin-Token header does not match
// token. An empty token disables the guard.
func AdminToken(token string) gin.HandlerFunc {
	want := []byte(token)
	return func(c *gin.Context) {
		if len(want) == 0 {
			c.Next()
			return
		}

		got := c.GetHeader(AdminTokenHeader)
		if got == "" {
			response.Unauthorized(c, "missing "+AdminTokenHeader+" header", GetRequestID(c))
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			response.Unauthorized(c, "invalid admin token", GetRequestID(c))
			c.Abort()
			return
		}

		c.Next()
	}
}
