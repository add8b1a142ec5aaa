package block

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.POST("/guilds/:guild_id/channels/:channel_id/block", handler.BlockUser)
}
