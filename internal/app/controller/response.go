package controller

import "github.com/gin-gonic/gin"

// respond writes the uniform success envelope
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}
