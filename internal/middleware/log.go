package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taskify/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// RequestIDHeader is echoed back, or generated when absent.
	RequestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// RequestLogger attaches a request-scoped logger and logs one line per
// request once it has been handled.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)

		log := base.With("request_id", reqID)
		c.Set(loggerKey, log)

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		if id, ok := CurrentIdentity(c); ok {
			attrs = append(attrs, "user_id", id.ID)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("request", attrs...)
		case status >= http.StatusBadRequest:
			log.Warn("request", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}

// Logger returns the request-scoped logger, or slog.Default outside one.
func Logger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// Activity records successful mutating requests of authenticated users.
// Reads are not recorded. A failed insert is logged and otherwise ignored.
func Activity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return
		}

		id, ok := CurrentIdentity(c)
		if !ok || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		entry := models.ActivityLog{
			UserID:    id.ID,
			Method:    c.Request.Method,
			Path:      truncate(c.Request.URL.Path, 255),
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: truncate(c.Request.UserAgent(), 255),
		}

		// the request context may already be cancelled by now
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
		defer cancel()
		if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
			Logger(c).Warn("record activity", "err", err)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
