package router

import (
	"modmail/internal/app/block"
	"modmail/internal/app/command"
	"modmail/internal/app/health"
	"modmail/internal/app/relay"
	"modmail/internal/gateways/websocket"
	"modmail/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(logger *zap.Logger) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())
	return &Router{Engine: engine}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterBlockRoutes(handler block.Handler) {
	block.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterRelayRoutes(handler relay.Handler) {
	relay.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterCommandRoutes(registry *command.Registry) {
	command.RegisterRoutes(r.Engine.Group("/api"), registry)
}

func (r *Router) RegisterWebSocketRoutes(hub *websocket.Hub) {
	websocket.RegisterRoutes(r.Engine, hub)
}
