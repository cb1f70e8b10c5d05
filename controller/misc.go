package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Laisky/mcp-chat/common/config"
)

// Health reports liveness plus the provider and connection state a
// probe needs to judge usefulness, not just aliveness.
func Health(c *gin.Context) {
	option := config.SelectedProvider()
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"provider":    config.AIProvider,
		"configured":  option != nil && option.APIKey != "",
		"port":        config.Port,
		"connections": len(connectionStore.List()),
	})
}
