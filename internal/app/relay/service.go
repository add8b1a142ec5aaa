package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"modmail/internal/app/settings"
	"modmail/internal/app/thread"
	"modmail/internal/providers/platform"
	"modmail/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventMessageRelayed = "message_relayed"

	anonymousName = "Staff"
)

var (
	ErrNotOwnContent         = errors.New("message belongs to another member")
	ErrEmptyContent          = errors.New("message has no content")
	ErrRecipientUnresolvable = errors.New("recipient cannot be resolved")
	ErrDeliveryFailed        = errors.New("delivery failed")
)

// AttachmentMirror copies an attachment into our own storage and returns
// the URL of the stored copy.
type AttachmentMirror interface {
	Mirror(ctx context.Context, sourceURL, filename string) (string, error)
}

type Service interface {
	RelayStaffMessage(ctx context.Context, msg StaffMessage) (*Delivery, error)
	RelayUserMessage(ctx context.Context, msg UserMessage) (*Delivery, error)
}

type service struct {
	threadSvc   thread.Service
	settingsSvc settings.Service
	platform    platform.Client
	mirror      AttachmentMirror
	eventBus    *utils.EventBus
	logger      *zap.SugaredLogger
}

func NewService(
	threadSvc thread.Service,
	settingsSvc settings.Service,
	platformClient platform.Client,
	mirror AttachmentMirror,
	eventBus *utils.EventBus,
	logger *zap.Logger,
) Service {
	return &service{
		threadSvc:   threadSvc,
		settingsSvc: settingsSvc,
		platform:    platformClient,
		mirror:      mirror,
		eventBus:    eventBus,
		logger:      logger.Sugar(),
	}
}

// RelayStaffMessage checks preconditions in a fixed order: open thread,
// content ownership, recipient resolution, content presence. Attachments
// alone never satisfy the content requirement.
func (s *service) RelayStaffMessage(ctx context.Context, msg StaffMessage) (*Delivery, error) {
	th, err := s.threadSvc.FindOpenThread(ctx, msg.ChannelID)
	if err != nil {
		return nil, err
	}
	if th == nil {
		return nil, thread.ErrNoOpenThread
	}

	if msg.AuthorID != "" && msg.AuthorID != msg.InvokerID {
		return nil, ErrNotOwnContent
	}

	member, err := s.platform.ResolveMember(ctx, th.GuildID, th.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member: %w", err)
	}
	if member == nil {
		return nil, ErrRecipientUnresolvable
	}

	if strings.TrimSpace(msg.Content) == "" {
		return nil, ErrEmptyContent
	}

	simple, err := s.settingsSvc.SimpleMode(ctx, th.GuildID)
	if err != nil {
		s.logger.Warnw("Failed to read guild settings, assuming simple mode off",
			"guild_id", th.GuildID, "error", err)
		simple = false
	}

	attachmentURL := s.mirrorFirstAttachment(ctx, msg.Attachments)

	nonce := uuid.NewString()
	sender := msg.InvokerName
	if msg.Anonymous {
		sender = anonymousName
	}
	out := composePayload(sender, msg.Content, attachmentURL, simple, nonce)

	if err := s.platform.SendDirectMessage(ctx, th.UserID, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	// Echo a copy into the staff thread so the channel history shows what
	// the user received. Best-effort.
	if err := s.platform.SendChannelMessage(ctx, th.ChannelID, out); err != nil {
		s.logger.Warnw("Failed to echo relay into thread channel",
			"channel_id", th.ChannelID, "error", err)
	}

	delivery := &Delivery{
		ID:          nonce,
		RecipientID: th.UserID,
		ChannelID:   th.ChannelID,
		Anonymous:   msg.Anonymous,
		SimpleMode:  simple,
		SentAt:      time.Now().UTC(),
	}

	s.publishRelayed(delivery, "staff")

	return delivery, nil
}

// RelayUserMessage is the inbound direction: the user's message is posted
// into the staff thread channel. There is no ownership check because the
// content always originates from the thread's own user.
func (s *service) RelayUserMessage(ctx context.Context, msg UserMessage) (*Delivery, error) {
	th, err := s.threadSvc.FindOpenThreadForUser(ctx, msg.UserID)
	if err != nil {
		return nil, err
	}
	if th == nil {
		return nil, thread.ErrNoOpenThread
	}

	if strings.TrimSpace(msg.Content) == "" {
		return nil, ErrEmptyContent
	}

	simple, err := s.settingsSvc.SimpleMode(ctx, th.GuildID)
	if err != nil {
		s.logger.Warnw("Failed to read guild settings, assuming simple mode off",
			"guild_id", th.GuildID, "error", err)
		simple = false
	}

	attachmentURL := s.mirrorFirstAttachment(ctx, msg.Attachments)

	nonce := uuid.NewString()
	out := composePayload(msg.UserName, msg.Content, attachmentURL, simple, nonce)

	if err := s.platform.SendChannelMessage(ctx, th.ChannelID, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	delivery := &Delivery{
		ID:          nonce,
		RecipientID: th.ChannelID,
		ChannelID:   th.ChannelID,
		SimpleMode:  simple,
		SentAt:      time.Now().UTC(),
	}

	s.publishRelayed(delivery, "user")

	return delivery, nil
}

// mirrorFirstAttachment picks the first attachment, mirrors it into object
// storage, and falls back to the source URL when mirroring fails. Remaining
// attachments are dropped on purpose.
func (s *service) mirrorFirstAttachment(ctx context.Context, attachments []Attachment) string {
	if len(attachments) == 0 {
		return ""
	}
	att := attachments[0]

	if s.mirror == nil {
		return att.URL
	}

	mirrored, err := s.mirror.Mirror(ctx, att.URL, att.FileName)
	if err != nil {
		s.logger.Warnw("Failed to mirror attachment, using source URL",
			"url", att.URL, "error", err)
		return att.URL
	}
	return mirrored
}

func composePayload(sender, content, attachmentURL string, simple bool, nonce string) platform.OutboundMessage {
	if simple {
		text := fmt.Sprintf("**%s**: %s", sender, content)
		if attachmentURL != "" {
			text += "\n" + attachmentURL
		}
		return platform.OutboundMessage{Content: text, Nonce: nonce}
	}

	return platform.OutboundMessage{
		Embed: &platform.Embed{
			Author:      sender,
			Description: content,
			ImageURL:    attachmentURL,
		},
		Nonce: nonce,
	}
}

func (s *service) publishRelayed(delivery *Delivery, direction string) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(EventMessageRelayed, map[string]interface{}{
		"delivery_id":  delivery.ID,
		"recipient_id": delivery.RecipientID,
		"channel_id":   delivery.ChannelID,
		"direction":    direction,
		"anonymous":    delivery.Anonymous,
		"timestamp":    delivery.SentAt.Unix(),
	})
}
