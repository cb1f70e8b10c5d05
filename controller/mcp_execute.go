package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/mcp-chat/middleware"
	"github.com/Laisky/mcp-chat/relay/mcp"
)

// ExecuteToolRequest is the body of POST /api/mcp/execute.
type ExecuteToolRequest struct {
	ToolName  string         `json:"tool_name" binding:"required"`
	Arguments map[string]any `json:"arguments"`
}

// ExecuteTool dispatches a single tool invocation against the first
// connection that advertises the tool.
func ExecuteTool(c *gin.Context) {
	logger := gmw.GetLogger(c)
	var payload ExecuteToolRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, errors.Wrap(err, "invalid execute payload"))
		return
	}

	dispatched, err := dispatcher.Dispatch(gmw.Ctx(c), payload.ToolName, payload.Arguments)
	if err != nil {
		if errors.Is(err, mcp.ErrToolNotFound) {
			middleware.AbortWithError(c, http.StatusNotFound, err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, err)
		return
	}

	logger.Info("tool executed",
		zap.String("tool", dispatched.ToolName),
		zap.String("connection", dispatched.Connection.Name))

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"result":     dispatched.Result,
		"tool_name":  dispatched.ToolName,
		"connection": dispatched.Connection.Name,
	})
}

// GetTools aggregates the live tool lists of every connection.
func GetTools(c *gin.Context) {
	tools := dispatcher.AggregateTools(gmw.Ctx(c))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    tools,
	})
}
