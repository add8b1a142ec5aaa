package block

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"modmail/internal/app/thread"
	"modmail/internal/providers/platform"
	"modmail/internal/providers/redis"
	"modmail/internal/utils"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const (
	EventUserBlocked = "user_blocked"

	blockCacheTTL = time.Minute
)

var (
	ErrReasonRequired   = errors.New("block reason required")
	ErrUserUnresolvable = errors.New("user cannot be resolved")
)

type Service interface {
	// BlockUser blocks the user tied to the open thread of the invoking
	// channel. An empty duration makes the block permanent.
	BlockUser(ctx context.Context, req BlockRequest) (*Block, error)
	// IsBlocked is the read-time enforcement check: an expired block is
	// reported as not blocked without being deleted.
	IsBlocked(ctx context.Context, userID, guildID string) (bool, error)
}

type service struct {
	repo      Repository
	threadSvc thread.Service
	platform  platform.Client
	redisP    *redis.RedisProvider
	eventBus  *utils.EventBus
	logger    *zap.SugaredLogger
}

func NewService(
	repo Repository,
	threadSvc thread.Service,
	platformClient platform.Client,
	redisP *redis.RedisProvider,
	eventBus *utils.EventBus,
	logger *zap.Logger,
) Service {
	return &service{
		repo:      repo,
		threadSvc: threadSvc,
		platform:  platformClient,
		redisP:    redisP,
		eventBus:  eventBus,
		logger:    logger.Sugar(),
	}
}

func (s *service) BlockUser(ctx context.Context, req BlockRequest) (*Block, error) {
	th, err := s.threadSvc.FindOpenThread(ctx, req.ChannelID)
	if err != nil {
		return nil, err
	}
	if th == nil {
		return nil, thread.ErrNoOpenThread
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	duration, err := utils.ParseBlockDuration(req.Duration)
	if err != nil {
		return nil, err
	}

	user, err := s.platform.ResolveUser(ctx, th.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		return nil, ErrUserUnresolvable
	}

	var expiresAt *time.Time
	if duration != nil {
		t := time.Now().Add(*duration)
		expiresAt = &t
	}

	blk, err := s.repo.Upsert(user.ID, req.GuildID, reason, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert block: %w", err)
	}

	// Notification is best-effort and must never roll back the block.
	s.notifyBlocked(ctx, user.ID, reason, expiresAt)

	if s.redisP != nil {
		s.redisP.Del(ctx, blockCacheKey(req.GuildID, user.ID))
	}

	if s.eventBus != nil {
		s.eventBus.Publish(EventUserBlocked, map[string]interface{}{
			"user_id":    user.ID,
			"guild_id":   req.GuildID,
			"invoker_id": req.InvokerID,
			"reason":     reason,
			"expires_at": expiresAt,
			"timestamp":  time.Now().UTC().Unix(),
		})
	}

	return blk, nil
}

func (s *service) notifyBlocked(ctx context.Context, userID, reason string, expiresAt *time.Time) {
	marker := "never"
	if expiresAt != nil {
		marker = humanize.Time(*expiresAt)
	}

	text := fmt.Sprintf("You have been blocked.\nReason: %s\nBlock expires: %s", reason, marker)
	err := s.platform.SendDirectMessage(ctx, userID, platform.OutboundMessage{Content: text})
	if err != nil {
		s.logger.Warnw("Failed to notify blocked user", "user_id", userID, "error", err)
	}
}

func (s *service) IsBlocked(ctx context.Context, userID, guildID string) (bool, error) {
	now := time.Now()
	cacheKey := blockCacheKey(guildID, userID)

	if s.redisP != nil {
		cached, err := s.redisP.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var blk Block
			if json.Unmarshal([]byte(cached), &blk) == nil {
				return blk.Active(now), nil
			}
		}
	}

	blk, err := s.repo.Get(userID, guildID)
	if err != nil {
		return false, fmt.Errorf("failed to get block: %w", err)
	}
	if blk == nil {
		return false, nil
	}

	if s.redisP != nil {
		if data, err := json.Marshal(blk); err == nil {
			s.redisP.SetEX(ctx, cacheKey, data, blockCacheTTL)
		}
	}

	return blk.Active(now), nil
}

func blockCacheKey(guildID, userID string) string {
	return fmt.Sprintf("block:guild:%s:user:%s", guildID, userID)
}
