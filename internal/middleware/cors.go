package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultAllowMethods is the allow-methods value for the read/write
// routes; the delete route advertises DeleteAllowMethods instead.
const (
	DefaultAllowMethods = "OPTIONS,GET,POST"
	DeleteAllowMethods  = "OPTIONS,GET,DELETE"
)

// CORS sets the cross-origin headers on every response and short-circuits
// preflight requests.
func CORS(allowMethods string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
