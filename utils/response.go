package utils

import "github.com/gin-gonic/gin"

// JSONSuccess writes {"success": true, <key>: data}. An empty key merges
// nothing but the success flag.
func JSONSuccess(c *gin.Context, code int, key string, data interface{}) {
	body := gin.H{"success": true}
	if key != "" {
		body[key] = data
	}
	c.JSON(code, body)
}

// JSONError writes {"success": false, "error": {"code": .., "message": ..}}.
func JSONError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errCode,
			"message": message,
		},
	})
}
