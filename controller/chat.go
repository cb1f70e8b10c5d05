package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/mcp-chat/middleware"
	relaycontroller "github.com/Laisky/mcp-chat/relay/controller"
)

// Chat handles POST /api/chat: a full decide/resolve turn against the
// configured provider, with tool calls routed through registered
// connections.
func Chat(c *gin.Context) {
	var payload relaycontroller.ChatRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, errors.Wrap(err, "invalid chat payload"))
		return
	}

	response, err := orchestrator.Chat(c, &payload)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, err)
		return
	}

	body := gin.H{
		"success": true,
		"content": response.Content,
	}
	if len(response.ToolCalls) > 0 {
		body["tool_calls"] = response.ToolCalls
	}
	if len(response.ToolResults) > 0 {
		body["tool_results"] = response.ToolResults
	}
	if response.Usage != nil {
		body["usage"] = response.Usage
	}
	if response.FinalResponse {
		body["final_response"] = true
	}
	c.JSON(http.StatusOK, body)
}
