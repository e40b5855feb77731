package middlewares

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	ctx.Next()
}

// AdminMiddleware guards the management routes with a shared secret header.
func AdminMiddleware(ctx *gin.Context) {
	secret := os.Getenv("ADMIN_SECRET")
	if secret == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	provided := ctx.GetHeader("x-admin-secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	ctx.Next()
}
