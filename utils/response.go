package utils

import "github.com/gin-gonic/gin"

// Success writes the payload as-is with HTTP 200. Handlers own their
// response shapes; there is no envelope.
func Success(ctx *gin.Context, payload interface{}) {
	ctx.JSON(200, payload)
}

// Error writes {"error": message} with the given status code.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}
