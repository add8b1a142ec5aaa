package block

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// Upsert creates the block or, when (userID, guildID) already exists,
	// overwrites expires_at. The conflict is resolved by the database so
	// concurrent attempts end as last-write-wins without application locks.
	Upsert(userID, guildID, reason string, expiresAt *time.Time) (*Block, error)
	Get(userID, guildID string) (*Block, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(userID, guildID, reason string, expiresAt *time.Time) (*Block, error) {
	err := r.db.Exec(`
		INSERT INTO blocks (user_id, guild_id, reason, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id, guild_id) DO UPDATE SET
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
	`, userID, guildID, reason, expiresAt).Error
	if err != nil {
		return nil, err
	}
	return r.Get(userID, guildID)
}

func (r *repository) Get(userID, guildID string) (*Block, error) {
	var blk Block
	err := r.db.Where("user_id = ? AND guild_id = ?", userID, guildID).First(&blk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blk, nil
}
