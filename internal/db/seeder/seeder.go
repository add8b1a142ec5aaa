package seeder

import (
	"modmail/internal/app/settings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

// Seed ensures the primary guild has a settings row so simple mode can be
// toggled without a manual insert. Skipped when no guild is configured.
func (s *Seeder) Seed(guildID string) error {
	if guildID == "" {
		s.logger.Info("No primary guild configured, skipping seeders")
		return nil
	}

	s.logger.Info("Running database seeders...")

	var count int64
	s.db.Model(&settings.GuildSettings{}).Where("guild_id = ?", guildID).Count(&count)
	if count > 0 {
		s.logger.Info("Guild settings already exist, skipping seed")
		return nil
	}

	if err := s.db.Create(&settings.GuildSettings{GuildID: guildID}).Error; err != nil {
		return err
	}

	s.logger.Info("Seeded guild settings", zap.String("guild_id", guildID))
	return nil
}
