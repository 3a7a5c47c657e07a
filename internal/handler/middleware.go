package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maxviazov/swc-fantasy-api/internal/metrics"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/pkg/response"
	"github.com/rs/zerolog"
)

const (
	// HeaderRequestID carries the per-request correlation id in both directions.
	HeaderRequestID = "X-Request-ID"
	ctxKeyRequestID = "request_id"
)

// RequestID reuses an incoming X-Request-ID or mints a fresh UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog writes one zerolog line per request and feeds the request metrics.
// Routes are labelled by template so ids never explode label cardinality.
func AccessLog(logger zerolog.Logger) gin.HandlerFunc {
	l := logger.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		took := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, route, status, took)

		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = l.Error()
		case status >= http.StatusBadRequest:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		if last := c.Errors.Last(); last != nil {
			ev = ev.Err(last.Err)
		}
		ev.Str("request_id", c.GetString(ctxKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("duration", took).
			Msg("request served")
	}
}

// Recovery turns a panic into the standard 500 envelope.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error().
			Interface("panic", recovered).
			Str("request_id", c.GetString(ctxKeyRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorPayload{
			Detail: http.StatusText(http.StatusInternalServerError),
		})
	})
}

// Session scopes the rest of the chain to one store session.
// The session is released on every exit path, panics included.
func Session(sessions repository.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil {
			c.Next()
			return
		}
		err := sessions.WithinSession(c.Request.Context(), func(ctx context.Context) error {
			metrics.StoreSessionsInUse.Inc()
			defer metrics.StoreSessionsInUse.Dec()
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return nil
		})
		if err != nil {
			metrics.StoreSessionErrors.Inc()
			response.WriteError(c, err)
		}
	}
}
