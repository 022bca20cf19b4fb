package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"restaurant-reservation/internal/handler/httperr"
	"restaurant-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLinesLogged = 12

// ErrorHandler renders the last public error a handler recorded when nothing was written
// yet. Server-side failures are logged with their stack.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for i := len(c.Errors) - 1; i >= 0; i-- {
			ginErr := c.Errors[i]
			resp, ok := ginErr.Meta.(httperr.Response)
			if !ok || !ginErr.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp.Status >= http.StatusInternalServerError {
				slog.Error("request failed",
					"request_id", GetRequestID(c),
					"status", resp.Status,
					"error", ginErr.Err.Error(),
					"stack", errs.ExtractStackLines(ginErr.Err, stackLinesLogged))
			}
			if !c.Writer.Written() {
				c.JSON(resp.Status, resp)
			}
			return
		}

		if c.Writer.Written() {
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if len(c.Errors) > 0 {
			c.JSON(http.StatusInternalServerError, httperr.Internal())
		}
	}
}

// CustomRecovery turns a panic into a 500 with the usual error body.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			slog.Error("recovered from panic",
				"request_id", GetRequestID(c),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))

			c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.Internal())
		}()
		c.Next()
	}
}
