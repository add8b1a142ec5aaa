package thread

import "time"

// Thread binds a staff-side channel to one end user's conversation. A
// thread is open while ClosedByID is null; queries must always filter on
// that so at most one open thread exists per channel.
type Thread struct {
	ID         uint64    `json:"id" gorm:"primaryKey"`
	ChannelID  string    `json:"channel_id" gorm:"type:varchar(32);index;not null"`
	ThreadID   string    `json:"thread_id" gorm:"type:varchar(32);not null"`
	GuildID    string    `json:"guild_id" gorm:"type:varchar(32);not null"`
	UserID     string    `json:"user_id" gorm:"type:varchar(32);index;not null"`
	ClosedByID *string   `json:"closed_by_id,omitempty" gorm:"type:varchar(32)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Thread) TableName() string {
	return "threads"
}
