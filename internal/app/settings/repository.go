package settings

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	GetByGuildID(guildID string) (*GuildSettings, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByGuildID(guildID string) (*GuildSettings, error) {
	var settings GuildSettings
	err := r.db.Where("guild_id = ?", guildID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
