package api

import (
	"log"

	"readinglist-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceIDKey = "traceId"

// RequestID assigns every request a trace id, honoring an inbound
// X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(traceIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// ErrorNormalizer is the single place where error kinds become status codes
// and response bodies. Internal detail is masked in production but always
// logged server-side with the trace id.
func ErrorNormalizer(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperror.From(c.Errors.Last().Err)
		status := appErr.Status()
		traceID := c.GetString(traceIDKey)

		log.Printf("[error] %s %s status=%d traceId=%s err=%v",
			c.Request.Method, c.Request.URL.Path, status, traceID, appErr)

		message := appErr.Message
		if appErr.Kind == apperror.KindInternal {
			if production {
				message = "Internal Server Error"
			} else {
				message = appErr.Error()
			}
		}

		payload := gin.H{"message": message}
		if len(appErr.Fields) > 0 {
			payload["errors"] = appErr.Fields
		}
		if traceID != "" {
			payload["traceId"] = traceID
		}
		c.JSON(status, payload)
	}
}
