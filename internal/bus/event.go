package bus

import "time"

// Event kinds published by the state containers. Subscribers filter by
// prefix, e.g. "chat." receives every chat directory change.
const (
	KindAuthLogin       = "auth.login"
	KindAuthLogout      = "auth.logout"
	KindAuthProfile     = "auth.profile_updated"
	KindSettingsUpdated = "settings.updated"
	KindChatAdded       = "chat.added"
	KindChatUpdated     = "chat.updated"
	KindChatRead        = "chat.read"
	KindMessageAdded    = "message.added"
	KindMessageUpdated  = "message.updated"
	KindMessageDeleted  = "message.deleted"
	KindReactionUpdated = "message.reaction_updated"
	KindStoryAdded      = "story.added"
	KindStoryViewed     = "story.viewed"
	KindStoriesExpired  = "story.expired"
)

// Event is a state change notification.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
