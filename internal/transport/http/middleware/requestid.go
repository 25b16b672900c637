package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const KeyRequestID = "X-Request-ID"

// MaxRequestIDLen bounds caller-supplied request ids; longer ones are
// replaced rather than echoed into headers and logs.
const MaxRequestIDLen = 128

// RequestID echoes the caller's X-Request-ID when it is usable, otherwise
// mints a uuid. Either way the id is on the response and in the context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if !usableRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}

// usableRequestID accepts 1..MaxRequestIDLen printable ASCII characters.
func usableRequestID(rid string) bool {
	if rid == "" || len(rid) > MaxRequestIDLen {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] < 0x21 || rid[i] > 0x7e {
			return false
		}
	}
	return true
}
