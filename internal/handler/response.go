package handler

import (
	"github.com/gin-gonic/gin"
)

// fail writes the {"detail": ...} error shape the frontend expects.
func fail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}
