// Package middleware holds the gin middlewares installed by hq.
package middleware

import (
	"github.com/gin-gonic/gin"
)

// Middlewares maps the names accepted by --server.middlewares to their
// handlers. CORS is configured separately and is not listed here.
var Middlewares = defaultMiddlewares()

func defaultMiddlewares() map[string]gin.HandlerFunc {
	return map[string]gin.HandlerFunc{
		"requestid": RequestID(),
		"logger":    Logger(),
	}
}
