package command

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, registry *Registry) {
	commands := rg.Group("/commands")
	{
		commands.GET("", registry.list)
		commands.GET("/:name/autocomplete", registry.autocomplete)
	}
}
