// Package storage persists state container snapshots as raw JSON values
// under well-known keys. Backends make no attempt to interpret snapshots;
// shape validation happens where the snapshot is decoded.
package storage

// Snapshot keys for the five state containers plus the one-shot seed marker.
const (
	KeyAuth     = "auth"
	KeyChats    = "chats"
	KeyMessages = "messages"
	KeyStories  = "stories"
	KeySettings = "settings"
	KeySeed     = "seed"
)

// Adapter is a key-value snapshot store. Load returns (nil, nil) when no
// snapshot exists for the key; callers substitute their documented default
// for both the absent and the undecodable case.
type Adapter interface {
	Load(key string) ([]byte, error)
	Save(key string, snapshot []byte) error
	Delete(key string) error
	Close() error
}
