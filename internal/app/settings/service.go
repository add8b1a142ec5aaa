package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"modmail/internal/providers/redis"

	"go.uber.org/zap"
)

const settingsCacheTTL = 5 * time.Minute

type Service interface {
	// SimpleMode reports the relay formatting toggle for a guild,
	// defaulting to false when no settings row exists.
	SimpleMode(ctx context.Context, guildID string) (bool, error)
}

type service struct {
	repo   Repository
	redisP *redis.RedisProvider
	logger *zap.SugaredLogger
}

func NewService(repo Repository, redisP *redis.RedisProvider, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		redisP: redisP,
		logger: logger.Sugar(),
	}
}

func (s *service) SimpleMode(ctx context.Context, guildID string) (bool, error) {
	cacheKey := fmt.Sprintf("settings:guild:%s", guildID)

	if s.redisP != nil {
		cached, err := s.redisP.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var settings GuildSettings
			if json.Unmarshal([]byte(cached), &settings) == nil {
				return settings.SimpleMode, nil
			}
		}
	}

	settings, err := s.repo.GetByGuildID(guildID)
	if err != nil {
		return false, fmt.Errorf("failed to get guild settings: %w", err)
	}
	if settings == nil {
		return false, nil
	}

	if s.redisP != nil {
		if data, err := json.Marshal(settings); err == nil {
			s.redisP.SetEX(ctx, cacheKey, data, settingsCacheTTL)
		}
	}

	return settings.SimpleMode, nil
}
