package controller

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/Laisky/mcp-chat/common/network"
	"github.com/Laisky/mcp-chat/middleware"
	"github.com/Laisky/mcp-chat/model"
	relaycontroller "github.com/Laisky/mcp-chat/relay/controller"
	"github.com/Laisky/mcp-chat/relay/mcp"
)

// discoveryConcurrency caps parallel /list_tools probes when listing
// connections.
const discoveryConcurrency = 8

var (
	connectionStore *model.ConnectionStore
	toolClient      *mcp.Client
	dispatcher      *mcp.Dispatcher
	orchestrator    *relaycontroller.Orchestrator
)

// Setup wires the handler package to its backing store and registers
// the tool-endpoint validator with gin's binding engine.
func Setup(store *model.ConnectionStore) {
	connectionStore = store
	toolClient = mcp.NewClient()
	dispatcher = mcp.NewDispatcher(store, toolClient)
	orchestrator = relaycontroller.NewOrchestrator(dispatcher)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("toolurl", func(fl validator.FieldLevel) bool {
			_, err := network.ValidateToolEndpointURL(fl.Field().String())
			return err == nil
		})
	}
}

// ConnectionUpsertRequest is the body of POST /api/mcp/connections.
type ConnectionUpsertRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required,toolurl"`
}

// ConnectionUpdateRequest is the body of PUT /api/mcp/connections/:id.
// Absent fields leave the stored value untouched.
type ConnectionUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	URL         *string `json:"url" binding:"omitempty,toolurl"`
}

// connectionView renders a connection plus its tool catalog. A nil
// syncedAt marks a failed probe; tools always serialize as an array.
func connectionView(conn *model.Connection, tools []mcp.Tool, syncedAt *time.Time) gin.H {
	if tools == nil {
		tools = []mcp.Tool{}
	}
	return gin.H{
		"id":          conn.Id,
		"name":        conn.Name,
		"description": conn.Description,
		"url":         conn.URL,
		"createdAt":   conn.CreatedAt,
		"tools":       tools,
		"tool_count":  len(tools),
		"last_sync":   syncedAt,
	}
}

// liveConnectionView probes the connection and renders it with the
// fresh catalog, or with an empty catalog and a null last_sync when
// the probe failed.
func liveConnectionView(ctx context.Context, conn *model.Connection) gin.H {
	tools, err := toolClient.DiscoverStrict(ctx, conn.URL)
	if err != nil {
		return connectionView(conn, nil, nil)
	}
	now := time.Now()
	return connectionView(conn, tools, &now)
}

// GetConnections lists all registered connections, probing each one in
// parallel for its current tool list.
func GetConnections(c *gin.Context) {
	connections := connectionStore.List()
	views := make([]gin.H, len(connections))

	var mu sync.Mutex
	pool, ctx := errgroup.WithContext(gmw.Ctx(c))
	pool.SetLimit(discoveryConcurrency)
	for i, conn := range connections {
		pool.Go(func() error {
			view := liveConnectionView(ctx, conn)
			mu.Lock()
			views[i] = view
			mu.Unlock()
			return nil
		})
	}
	_ = pool.Wait() // probe failures degrade per-connection, never fail the list

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    views,
	})
}

// CreateConnection registers a new tool connection. The endpoint is
// probed immediately so the caller sees what the server advertises,
// but an empty result does not block creation.
func CreateConnection(c *gin.Context) {
	logger := gmw.GetLogger(c)
	var payload ConnectionUpsertRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, errors.Wrap(err, "invalid connection payload"))
		return
	}

	conn, err := connectionStore.Add(payload.Name, payload.Description, payload.URL)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateURL) {
			middleware.AbortWithError(c, http.StatusConflict, err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, err)
		return
	}

	view := liveConnectionView(gmw.Ctx(c), conn)
	toolCount := view["tool_count"].(int)
	logger.Info("connection registered",
		zap.String("id", conn.Id),
		zap.String("name", conn.Name),
		zap.String("url", conn.URL),
		zap.Int("tool_count", toolCount))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": fmt.Sprintf("connection added, discovered %d tools", toolCount),
		"data":    view,
	})
}

// GetConnection returns one connection with its live tool list.
func GetConnection(c *gin.Context) {
	conn := connectionStore.Get(c.Param("id"))
	if conn == nil {
		middleware.AbortWithError(c, http.StatusNotFound, model.ErrConnectionNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    liveConnectionView(gmw.Ctx(c), conn),
	})
}

// UpdateConnection applies a partial update to a connection.
func UpdateConnection(c *gin.Context) {
	var payload ConnectionUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, errors.Wrap(err, "invalid connection payload"))
		return
	}

	conn, err := connectionStore.Update(c.Param("id"), model.ConnectionUpdate{
		Name:        payload.Name,
		Description: payload.Description,
		URL:         payload.URL,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrConnectionNotFound):
			middleware.AbortWithError(c, http.StatusNotFound, err)
		case errors.Is(err, model.ErrDuplicateURL):
			middleware.AbortWithError(c, http.StatusConflict, err)
		default:
			middleware.AbortWithError(c, http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    liveConnectionView(gmw.Ctx(c), conn),
	})
}

// DeleteConnection removes a connection.
func DeleteConnection(c *gin.Context) {
	removed, err := connectionStore.Remove(c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, err)
		return
	}
	if !removed {
		middleware.AbortWithError(c, http.StatusNotFound, model.ErrConnectionNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "connection removed",
	})
}

// SyncConnection re-probes one connection and returns the fresh tool
// list. Nothing is persisted; tools live only on the remote server.
// Unlike the degrading list path, a sync against a dead endpoint fails
// loudly so the caller learns the connection is broken.
func SyncConnection(c *gin.Context) {
	conn := connectionStore.Get(c.Param("id"))
	if conn == nil {
		middleware.AbortWithError(c, http.StatusNotFound, model.ErrConnectionNotFound)
		return
	}

	tools, err := toolClient.DiscoverStrict(gmw.Ctx(c), conn.URL)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest,
			errors.Wrapf(err, "sync connection %s", conn.Name))
		return
	}
	if tools == nil {
		tools = []mcp.Tool{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"connection": conn.Name,
			"tools":      tools,
			"tool_count": len(tools),
			"synced_at":  time.Now(),
		},
	})
}
