package middleware

import (
	"errors"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"isiledger/src/app/http/response"
	"isiledger/src/core/domain"
)

// Recovery recovers from panics and answers 500.
//
// A panic carrying a precondition violation from instruction execution is
// reported with code PRECONDITION_VIOLATED and its message; any other panic
// gets the generic INTERNAL_ERROR body.
//
// Usage:
//
//	router.Use(middleware.Recovery(logger))
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			requestID := GetRequestID(c)

			var domainErr *domain.DomainError
			if err, ok := r.(error); ok && domain.IsPreconditionViolated(err) && errors.As(err, &domainErr) {
				log.Error("precondition violated",
					"request_id", requestID,
					"error", err,
					"path", c.Request.URL.Path,
				)
				response.PreconditionViolated(c, domainErr.Message, requestID)
				return
			}

			log.Error("panic recovered",
				"request_id", requestID,
				"error", r,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"stack", string(debug.Stack()),
			)
			response.InternalError(c, requestID)
			c.Abort()
		}()

		c.Next()
	}
}
