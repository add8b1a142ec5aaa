package relay

import (
	"errors"
	"net/http"

	"modmail/internal/app/thread"
	"modmail/internal/i18n"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	Reply(c *gin.Context)
	ReplyAnonymous(c *gin.Context)
	InboundMessage(c *gin.Context)
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

type replyRequest struct {
	InvokerID   string       `json:"invoker_id" binding:"required"`
	InvokerName string       `json:"invoker_name"`
	AuthorID    string       `json:"author_id"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments"`
}

// The two reply entry points share the engine with the anonymity flag
// flipped; the flag is never taken from the request body.
func (h *handler) Reply(c *gin.Context) {
	h.reply(c, false)
}

func (h *handler) ReplyAnonymous(c *gin.Context) {
	h.reply(c, true)
}

func (h *handler) reply(c *gin.Context, anonymous bool) {
	channelID := c.Param("channel_id")
	locale := c.Query("locale")

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	delivery, err := h.service.RelayStaffMessage(c.Request.Context(), StaffMessage{
		ChannelID:   channelID,
		InvokerID:   req.InvokerID,
		InvokerName: req.InvokerName,
		AuthorID:    req.AuthorID,
		Content:     req.Content,
		Attachments: req.Attachments,
		Anonymous:   anonymous,
	})
	if err != nil {
		h.respondError(c, err, locale)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":      i18n.KeyMessageSent,
		"message":  h.translator.Translate(i18n.KeyMessageSent, locale, nil),
		"delivery": delivery,
	})
}

func (h *handler) InboundMessage(c *gin.Context) {
	userID := c.Param("user_id")
	locale := c.Query("locale")

	var req struct {
		UserName    string       `json:"user_name"`
		Content     string       `json:"content"`
		Attachments []Attachment `json:"attachments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	delivery, err := h.service.RelayUserMessage(c.Request.Context(), UserMessage{
		UserID:      userID,
		UserName:    req.UserName,
		Content:     req.Content,
		Attachments: req.Attachments,
	})
	if err != nil {
		h.respondError(c, err, locale)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":      i18n.KeyMessageSent,
		"message":  h.translator.Translate(i18n.KeyMessageSent, locale, nil),
		"delivery": delivery,
	})
}

func (h *handler) respondError(c *gin.Context, err error, locale string) {
	switch {
	case errors.Is(err, thread.ErrNoOpenThread):
		h.respond(c, http.StatusNotFound, i18n.KeyNoThread, locale)
	case errors.Is(err, ErrNotOwnContent):
		h.respond(c, http.StatusForbidden, i18n.KeyNotOwnMessage, locale)
	case errors.Is(err, ErrRecipientUnresolvable):
		h.respond(c, http.StatusNotFound, i18n.KeyNoMember, locale)
	case errors.Is(err, ErrEmptyContent):
		h.respond(c, http.StatusBadRequest, i18n.KeyNoContent, locale)
	case errors.Is(err, ErrDeliveryFailed):
		h.respond(c, http.StatusBadGateway, i18n.KeyDeliveryFailed, locale)
	default:
		h.logger.Errorw("Relay failed", "error", err)
		h.respond(c, http.StatusInternalServerError, i18n.KeyUnknown, locale)
	}
}

func (h *handler) respond(c *gin.Context, status int, key, locale string) {
	c.JSON(status, gin.H{
		"key":     key,
		"message": h.translator.Translate(key, locale, nil),
	})
}
