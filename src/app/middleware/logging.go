package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody caps how much of a JSON body is copied into the access log.
const maxLoggedBody = 2048

// Logging writes one access-log record per request. The first maxLoggedBody
// bytes of JSON request and response bodies are included as the handler
// reads and writes them; binary payloads and websocket upgrades are logged by
// size only.
//
// Register it outside Recovery so requests that panic are logged too.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}

		captureBodies := isJSON(c.ContentType()) && c.Request.Body != nil
		var reqBody *cappedBuffer
		if captureBodies {
			reqBody = &cappedBuffer{limit: maxLoggedBody}
			c.Request.Body = teeBody{
				Reader: io.TeeReader(c.Request.Body, reqBody),
				Closer: c.Request.Body,
			}
		}

		var rec *responseCapture
		if c.GetHeader("Upgrade") == "" {
			rec = &responseCapture{ResponseWriter: c.Writer, body: cappedBuffer{limit: maxLoggedBody}}
			c.Writer = rec
		}

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
			"bytes_in", c.Request.ContentLength,
		}
		if captureBodies {
			attrs = append(attrs, "request", reqBody.String())
		}
		if rec != nil && isJSON(rec.Header().Get("Content-Type")) {
			attrs = append(attrs, "response", rec.body.String())
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("http request", attrs...)
		case status >= 400:
			log.Warn("http request", attrs...)
		default:
			log.Info("http request", attrs...)
		}
	}
}

type teeBody struct {
	io.Reader
	io.Closer
}

// cappedBuffer keeps the first limit bytes written to it and drops the rest.
type cappedBuffer struct {
	buf     bytes.Buffer
	limit   int
	dropped bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.limit - b.buf.Len()
	switch {
	case room >= len(p):
		b.buf.Write(p)
	case room > 0:
		b.buf.Write(p[:room])
		b.dropped = true
	default:
		b.dropped = b.dropped || len(p) > 0
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	if b.dropped {
		return b.buf.String() + "..."
	}
	return b.buf.String()
}

// responseCapture captures response body while delegating to original writer.
type responseCapture struct {
	gin.ResponseWriter
	body cappedBuffer
}

func (r *responseCapture) Write(b []byte) (int, error) {
	_, _ = r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) WriteString(s string) (int, error) {
	_, _ = r.body.Write([]byte(s))
	return r.ResponseWriter.WriteString(s)
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(contentType, "application/json")
}
