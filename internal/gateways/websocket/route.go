package websocket

import "github.com/gin-gonic/gin"

func RegisterRoutes(engine *gin.Engine, hub *Hub) {
	engine.GET("/ws/staff", ServeWS(hub))
}
