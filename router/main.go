// Package router wires the HTTP surface: middleware chain plus the
// API routes.
package router

import (
	gmw "github.com/Laisky/gin-middlewares/v7"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Laisky/mcp-chat/common/config"
	"github.com/Laisky/mcp-chat/common/logger"
	"github.com/Laisky/mcp-chat/middleware"
)

// SetRouter installs the middleware chain and all routes on the engine.
func SetRouter(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestId())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.Default())
	router.Use(middleware.Metrics())

	if config.OpenTelemetryEnabled {
		router.Use(otelgin.Middleware(config.OpenTelemetryServiceName))
	}

	level := glog.LevelInfo
	if config.DebugEnabled {
		level = glog.LevelDebug
	}
	router.Use(gmw.NewLoggerMiddleware(
		gmw.WithLevel(level.String()),
		gmw.WithLogger(logger.Logger.Named("gin")),
	))

	if config.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	SetApiRouter(router)
}
