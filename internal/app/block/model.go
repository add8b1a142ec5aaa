package block

import "time"

// Block suspends a user's ability to use threads in a guild. The
// (user_id, guild_id) pair is unique; repeat blocks overwrite expires_at
// instead of stacking. A nil ExpiresAt means the block is permanent until
// manually cleared, and expiry is evaluated at read time.
type Block struct {
	ID        uint64     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"type:varchar(32);not null;uniqueIndex:idx_blocks_user_guild"`
	GuildID   string     `json:"guild_id" gorm:"type:varchar(32);not null;uniqueIndex:idx_blocks_user_guild"`
	Reason    string     `json:"reason" gorm:"not null"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Block) TableName() string {
	return "blocks"
}

// Active reports whether the block is still in force at now.
func (b *Block) Active(now time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(now)
}

type BlockRequest struct {
	GuildID   string
	ChannelID string
	InvokerID string
	Reason    string
	Duration  string
}
