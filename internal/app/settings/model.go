package settings

import "time"

// GuildSettings is per-guild configuration. This service only reads it;
// simple_mode toggles relay formatting and defaults to false when the row
// is absent.
type GuildSettings struct {
	ID         uint64    `json:"id" gorm:"primaryKey"`
	GuildID    string    `json:"guild_id" gorm:"type:varchar(32);uniqueIndex;not null"`
	SimpleMode bool      `json:"simple_mode" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (GuildSettings) TableName() string {
	return "guild_settings"
}
