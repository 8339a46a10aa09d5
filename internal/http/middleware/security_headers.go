package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders adds security headers. Images are served to other origins,
// so the resource policy is cross-origin.
func SecurityHeaders() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("X-Content-Type-Options", "nosniff")
		ctx.Header("X-Frame-Options", "DENY")
		ctx.Header("Cross-Origin-Resource-Policy", "cross-origin")
		ctx.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		ctx.Next()
	}
}
