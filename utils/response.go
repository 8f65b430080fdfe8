package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes the {"error": {"code", "message"}} envelope the front end keys on.
func JSONError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorBody(code, message))
}

func AbortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorBody(code, message))
}

func errorBody(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}
