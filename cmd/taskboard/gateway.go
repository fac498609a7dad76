package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/httpmw"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/events/bus"
	gateways "github.com/lutfiEmre/todolist/internal/gateway/websocket"
	"github.com/lutfiEmre/todolist/internal/task/dto"
	taskhandlers "github.com/lutfiEmre/todolist/internal/task/handlers"
	taskservice "github.com/lutfiEmre/todolist/internal/task/service"
)

const serverName = "taskboard"

// provideGateway starts the WebSocket hub and forwards board events to its clients.
func provideGateway(ctx context.Context, taskSvc *taskservice.Service, eventBus bus.EventBus, log *logger.Logger) (*gateways.Gateway, *gateways.BoardEventBroadcaster) {
	gateway := gateways.Provide(taskSvc, log)
	go gateway.Hub.Run(ctx)
	broadcaster := gateways.RegisterBoardNotifications(ctx, eventBus, gateway.Hub, log)
	return gateway, broadcaster
}

// buildRouter mounts the middleware chain, the WebSocket endpoint, the board
// API and the health check.
func buildRouter(cfg *config.Config, log *logger.Logger, taskSvc *taskservice.Service, gateway *gateways.Gateway) *gin.Engine {
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(httpmw.RequestID())
	router.Use(httpmw.OtelTracing(serverName))
	router.Use(httpmw.RequestLogger(log, serverName))

	if gateway != nil {
		gateway.SetupRoutes(router)
	}
	taskhandlers.RegisterTaskRoutes(router, taskSvc, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Service: serverName})
	})

	log.Info("API configured",
		zap.String("websocket", "/ws"),
		zap.String("health", "/health"),
		zap.String("http", "/api/tasks"))
	return router
}
