package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatKind classifies a conversation.
type ChatKind string

const (
	ChatPersonal ChatKind = "personal"
	ChatGroup    ChatKind = "group"
	ChatChannel  ChatKind = "channel"
)

// MessageType tags message content.
type MessageType string

const (
	MessageText     MessageType = "text"
	MessageImage    MessageType = "image"
	MessageVoice    MessageType = "voice"
	MessageDocument MessageType = "document"
)

// MessageStatus is the delivery state of a message. A well-behaved client
// only moves it forward (sending -> sent -> delivered -> read); the store
// does not enforce the order.
type MessageStatus string

const (
	StatusSending   MessageStatus = "sending"
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

// User is an identity record. One instance represents the signed-in user;
// other entities reference users by id only.
type User struct {
	ID       string `json:"id"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	About    string `json:"about,omitempty"`
	LastSeen int64  `json:"lastSeen"`
	IsOnline bool   `json:"isOnline"`
}

// Reaction is a single user's reaction to a message. A user has at most
// one reaction per message; reacting again replaces the emoji.
type Reaction struct {
	Emoji  string `json:"emoji"`
	UserID string `json:"userId"`
}

// Message belongs to exactly one chat. Timestamps are unix milliseconds.
type Message struct {
	ID        string        `json:"id"`
	ChatID    string        `json:"chatId"`
	SenderID  string        `json:"senderId"`
	Content   string        `json:"content"`
	Timestamp int64         `json:"timestamp"`
	Type      MessageType   `json:"type"`
	ReplyTo   string        `json:"replyTo,omitempty"`
	Reactions []Reaction    `json:"reactions,omitempty"`
	Status    MessageStatus `json:"status"`
	MediaURL  string        `json:"mediaUrl,omitempty"`
}

// Chat is a conversation. LastMessage is a denormalized pointer kept in
// sync by the projector; the message store holds the authoritative list.
type Chat struct {
	ID           string   `json:"id"`
	Kind         ChatKind `json:"type"`
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar,omitempty"`
	Participants []string `json:"participants"`
	LastMessage  *Message `json:"lastMessage,omitempty"`
	UnreadCount  int      `json:"unreadCount"`
	IsPinned     bool     `json:"isPinned"`
	IsFavourite  bool     `json:"isFavourite"`
	IsArchived   bool     `json:"isArchived"`
	Description  string   `json:"description,omitempty"`
	CreatedBy    string   `json:"createdBy,omitempty"`
	MemberCount  int      `json:"memberCount,omitempty"`
}

// IsGroupLike reports whether the chat is a multi-party conversation.
func (c *Chat) IsGroupLike() bool {
	return c.Kind == ChatGroup || c.Kind == ChatChannel
}

// Story is an ephemeral post visible for 24 hours after creation.
type Story struct {
	ID              string   `json:"id"`
	UserID          string   `json:"userId"`
	Content         string   `json:"content"`
	Type            string   `json:"type"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	MediaURL        string   `json:"mediaUrl,omitempty"`
	Timestamp       int64    `json:"timestamp"`
	Views           []string `json:"views"`
}

// Theme is the UI color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// PhotoVisibility controls who can see the profile photo.
type PhotoVisibility string

const (
	PhotoEveryone PhotoVisibility = "everyone"
	PhotoContacts PhotoVisibility = "contacts"
	PhotoNobody   PhotoVisibility = "nobody"
)

// Settings is the flat preference record for the current user.
type Settings struct {
	Theme               Theme           `json:"theme"`
	Notifications       bool            `json:"notifications"`
	SoundEnabled        bool            `json:"soundEnabled"`
	EnterToSend         bool            `json:"enterToSend"`
	ReadReceipts        bool            `json:"readReceipts"`
	LastSeenVisible     bool            `json:"lastSeenVisible"`
	ProfilePhotoVisible PhotoVisibility `json:"profilePhotoVisible"`
	Language            string          `json:"language"`
}

// DefaultSettings returns the first-run preference set.
func DefaultSettings() Settings {
	return Settings{
		Theme:               ThemeDark,
		Notifications:       true,
		SoundEnabled:        true,
		EnterToSend:         true,
		ReadReceipts:        true,
		LastSeenVisible:     true,
		ProfilePhotoVisible: PhotoEveryone,
		Language:            "en",
	}
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.New().String()
}

// NowMillis returns the current time in unix milliseconds, the timestamp
// unit used across all snapshots.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
