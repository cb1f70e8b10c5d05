package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/mcp-chat/middleware"
)

// GetStorageStats reports what the connection snapshot currently holds.
func GetStorageStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    connectionStore.Stats(),
	})
}

// BackupStorageRequest optionally names the backup destination.
type BackupStorageRequest struct {
	Path string `json:"path"`
}

// BackupStorage copies the connection snapshot to a backup file.
func BackupStorage(c *gin.Context) {
	var payload BackupStorageRequest
	// body is optional; an empty body means a timestamped default path
	_ = c.ShouldBindJSON(&payload)

	path, err := connectionStore.Backup(payload.Path)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, errors.Wrap(err, "backup storage"))
		return
	}

	gmw.GetLogger(c).Info("storage backed up", zap.String("path", path))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    gin.H{"backup_file": path},
	})
}

// ReloadStorage re-reads the snapshot from disk, discarding in-memory
// state.
func ReloadStorage(c *gin.Context) {
	if err := connectionStore.Reload(); err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, errors.Wrap(err, "reload storage"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "storage reloaded",
		"data":    connectionStore.Stats(),
	})
}

// ClearStorage removes every registered connection.
func ClearStorage(c *gin.Context) {
	if err := connectionStore.Clear(); err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, errors.Wrap(err, "clear storage"))
		return
	}

	gmw.GetLogger(c).Warn("connection storage cleared")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "storage cleared",
	})
}
