package block

import (
	"errors"
	"net/http"

	"modmail/internal/app/command"
	"modmail/internal/app/thread"
	"modmail/internal/i18n"
	"modmail/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	command.Command
	command.Autocompleter
	BlockUser(c *gin.Context)
}

type handler struct {
	service    Service
	translator *i18n.Translator
	logger     *zap.SugaredLogger
}

func NewHandler(service Service, translator *i18n.Translator, logger *zap.Logger) Handler {
	return &handler{
		service:    service,
		translator: translator,
		logger:     logger.Sugar(),
	}
}

func (h *handler) Schema() command.Schema {
	return command.Schema{
		Name:        "block",
		Description: "Block the user tied to this thread",
		Type:        command.TypeChatInput,
		Options: []command.Option{
			{Name: "reason", Description: "Why the user is being blocked", Type: "string"},
			{Name: "duration", Description: "How long the block should last", Type: "string", Autocomplete: true},
		},
	}
}

func (h *handler) Handle(c *gin.Context) {
	h.BlockUser(c)
}

func (h *handler) BlockUser(c *gin.Context) {
	guildID := c.Param("guild_id")
	channelID := c.Param("channel_id")
	locale := c.Query("locale")

	var req struct {
		InvokerID string `json:"invoker_id" binding:"required"`
		Reason    string `json:"reason"`
		Duration  string `json:"duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	blk, err := h.service.BlockUser(c.Request.Context(), BlockRequest{
		GuildID:   guildID,
		ChannelID: channelID,
		InvokerID: req.InvokerID,
		Reason:    req.Reason,
		Duration:  req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, thread.ErrNoOpenThread):
			h.respond(c, http.StatusNotFound, i18n.KeyNoThread, locale)
		case errors.Is(err, ErrReasonRequired):
			h.respond(c, http.StatusBadRequest, i18n.KeyReasonRequired, locale)
		case errors.Is(err, utils.ErrInvalidDuration):
			h.respond(c, http.StatusBadRequest, i18n.KeyInvalidTime, locale)
		case errors.Is(err, ErrUserUnresolvable):
			h.respond(c, http.StatusNotFound, i18n.KeyUserDeleted, locale)
		default:
			h.logger.Errorw("Block command failed",
				"guild_id", guildID,
				"channel_id", channelID,
				"error", err,
			)
			h.respond(c, http.StatusInternalServerError, i18n.KeyUnknown, locale)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":     i18n.KeyBlocked,
		"message": h.translator.Translate(i18n.KeyBlocked, locale, nil),
		"block":   blk,
	})
}

func (h *handler) Autocomplete(c *gin.Context) {
	value := c.Query("value")
	c.JSON(http.StatusOK, gin.H{"choices": utils.DurationChoices(value)})
}

func (h *handler) respond(c *gin.Context, status int, key, locale string) {
	c.JSON(status, gin.H{
		"key":     key,
		"message": h.translator.Translate(key, locale, nil),
	})
}
