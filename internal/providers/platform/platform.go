package platform

import "context"

// User is a chat-platform account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Member is a user's membership in a guild.
type Member struct {
	User    User   `json:"user"`
	GuildID string `json:"guild_id"`
	Nick    string `json:"nick,omitempty"`
}

// Embed is the rich formatting block of an outbound message.
type Embed struct {
	Author      string `json:"author,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// OutboundMessage is the payload handed to the platform for delivery.
type OutboundMessage struct {
	Content string `json:"content,omitempty"`
	Embed   *Embed `json:"embed,omitempty"`
	Nonce   string `json:"nonce,omitempty"`
}

// Client is the narrow surface of the chat platform this service consumes.
// Resolve calls return (nil, nil) when the entity does not exist; errors are
// reserved for transport failures.
type Client interface {
	ResolveUser(ctx context.Context, userID string) (*User, error)
	ResolveMember(ctx context.Context, guildID, userID string) (*Member, error)
	SendDirectMessage(ctx context.Context, userID string, msg OutboundMessage) error
	SendChannelMessage(ctx context.Context, channelID string, msg OutboundMessage) error
}
