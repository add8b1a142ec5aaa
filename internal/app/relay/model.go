package relay

import "time"

// Attachment references a file on the source platform. Only the first
// attachment of a message is relayed.
type Attachment struct {
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// StaffMessage is a staff reply to be delivered to the user bound to the
// invoking channel's open thread. AuthorID is the author of the source
// message when an existing message is being relayed; it must match
// InvokerID. Anonymous hides the sender identity from the recipient.
type StaffMessage struct {
	ChannelID   string
	InvokerID   string
	InvokerName string
	AuthorID    string
	Content     string
	Attachments []Attachment
	Anonymous   bool
}

// UserMessage is an inbound message from the end user, posted into the
// staff-side thread channel.
type UserMessage struct {
	UserID      string
	UserName    string
	Content     string
	Attachments []Attachment
}

// Delivery describes one dispatched relay.
type Delivery struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	ChannelID   string    `json:"channel_id"`
	Anonymous   bool      `json:"anonymous"`
	SimpleMode  bool      `json:"simple_mode"`
	SentAt      time.Time `json:"sent_at"`
}
