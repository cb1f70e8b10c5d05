package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Laisky/mcp-chat/common/helper"
	"github.com/Laisky/mcp-chat/common/random"
)

// RequestId tags every request with an identifier that is echoed in
// the response headers and appended to error messages.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Request.Header.Get(helper.RequestIdKey)
		if id == "" {
			id = random.GetUUID()
		}
		c.Set(helper.RequestIdKey, id)
		c.Header(helper.RequestIdKey, id)
		c.Next()
	}
}
