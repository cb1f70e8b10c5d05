// mcp-chat is a chat server that lets the configured AI provider call
// tools exposed by registered MCP connections.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Laisky/mcp-chat/common/client"
	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/common/logger"
	"github.com/Laisky/mcp-chat/common/telemetry"
	"github.com/Laisky/mcp-chat/controller"
	"github.com/Laisky/mcp-chat/model"
	"github.com/Laisky/mcp-chat/router"
)

const shutdownGrace = 10 * time.Second

func main() {
	logger.Setup()
	lg := logger.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client.Init()

	if config.OpenTelemetryEnabled {
		bundle, err := telemetry.InitOpenTelemetry(ctx)
		if err != nil {
			lg.Error("initialize opentelemetry", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer cancel()
				if err := bundle.Shutdown(shutdownCtx); err != nil {
					lg.Error("shutdown opentelemetry", zap.Error(err))
				}
			}()
		}
	}

	for _, problem := range config.ValidateProviderConfig() {
		lg.Warn("provider configuration", zap.String("problem", problem))
	}

	store, err := model.NewConnectionStore(config.ConnectionStorageFile)
	if err != nil {
		lg.Panic("open connection store",
			zap.String("file", config.ConnectionStorageFile),
			zap.Error(err))
	}
	lg.Info("connection store ready",
		zap.String("file", store.StorageFile()),
		zap.Int("connections", len(store.List())))

	controller.Setup(store)

	if config.DebugEnabled {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	router.SetRouter(engine)

	server := &http.Server{
		Addr:              config.Host + ":" + strconv.Itoa(config.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("provider", config.AIProvider))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Error("server exited", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "forced shutdown: %+v\n", err)
	}
}
