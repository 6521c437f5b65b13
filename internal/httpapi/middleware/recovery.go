package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/common"
)

// Recovery turns panics into the standard error envelope instead of gin's
// plain 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				id, _ := c.Get(RequestIDKey)
				log.Printf("panic recovered request_id=%v path=%s err=%v", id, c.Request.URL.Path, r)
				common.Fail(c, http.StatusInternalServerError, 50000, "internal error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
