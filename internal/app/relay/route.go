package relay

import (
	"modmail/internal/app/command"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.POST("/guilds/:guild_id/channels/:channel_id/reply", handler.Reply)
	rg.POST("/guilds/:guild_id/channels/:channel_id/reply/anonymous", handler.ReplyAnonymous)
	rg.POST("/users/:user_id/messages", handler.InboundMessage)
}

// Commands exposes the two reply front-ends through the shared command
// contract; they differ only in the anonymity flag.
func Commands(handler Handler) []command.Command {
	return []command.Command{
		command.New(command.Schema{
			Name:        "reply",
			Description: "Relay one of your messages to the user",
			Type:        command.TypeMessage,
		}, handler.Reply),
		command.New(command.Schema{
			Name:        "reply-anon",
			Description: "Relay one of your messages to the user anonymously",
			Type:        command.TypeMessage,
		}, handler.ReplyAnonymous),
	}
}
