package state

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/bus"
	"github.com/pombo-im/pombo/internal/model"
	"github.com/pombo-im/pombo/internal/storage"
)

// ChatFilter is a directory list category.
type ChatFilter string

const (
	FilterAll        ChatFilter = "all"
	FilterUnread     ChatFilter = "unread"
	FilterFavourites ChatFilter = "favourites"
	FilterGroups     ChatFilter = "groups"
)

// Chats is the conversation directory. The active selection is transient
// UI focus and is never persisted; every fresh session starts with none.
type Chats struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	bus     *bus.Bus
	logger  *zap.Logger

	chats  []model.Chat
	active string
}

// NewChats rehydrates the directory, defaulting to empty.
func NewChats(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *Chats {
	c := &Chats{adapter: adapter, bus: b, logger: logger}
	var snap []model.Chat
	if rehydrate(adapter, logger, storage.KeyChats, &snap) {
		c.chats = snap
	}
	return c
}

// All returns a copy of the directory in its stored order.
func (c *Chats) All() []model.Chat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Chat, len(c.chats))
	copy(out, c.chats)
	return out
}

// Get returns the chat with the given id.
func (c *Chats) Get(id string) (model.Chat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.chats {
		if c.chats[i].ID == id {
			return c.chats[i], true
		}
	}
	return model.Chat{}, false
}

// SetAll replaces the whole directory.
func (c *Chats) SetAll(chats []model.Chat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chats = append([]model.Chat(nil), chats...)
	c.persistLocked()
	publish(c.bus, bus.KindChatUpdated, "")
}

// Add inserts a chat at the front (most-recent-first convention).
func (c *Chats) Add(chat model.Chat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chats = append([]model.Chat{chat}, c.chats...)
	c.persistLocked()
	publish(c.bus, bus.KindChatAdded, chat.ID)
}

// Update replaces the chat matching chat.ID. Silent no-op when absent.
func (c *Chats) Update(chat model.Chat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.chats {
		if c.chats[i].ID == chat.ID {
			c.chats[i] = chat
			c.persistLocked()
			publish(c.bus, bus.KindChatUpdated, chat.ID)
			return
		}
	}
}

// Active returns the currently selected chat id, empty when none.
func (c *Chats) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// SetActive changes the transient selection without touching any chat.
// Pass the empty string to clear it.
func (c *Chats) SetActive(id string) {
	c.mu.Lock()
	c.active = id
	c.mu.Unlock()
}

// Open selects the chat and zeroes its unread counter, upholding the
// rule that a chat becoming the active selection is read.
func (c *Chats) Open(id string) {
	c.SetActive(id)
	c.MarkAsRead(id)
}

// MarkAsRead zeroes the chat's unread counter. Silent no-op when absent.
func (c *Chats) MarkAsRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.chats {
		if c.chats[i].ID == id {
			c.chats[i].UnreadCount = 0
			c.persistLocked()
			publish(c.bus, bus.KindChatRead, id)
			return
		}
	}
}

// TogglePin flips the pinned flag. Silent no-op when absent.
func (c *Chats) TogglePin(id string) {
	c.toggle(id, func(chat *model.Chat) { chat.IsPinned = !chat.IsPinned })
}

// ToggleFavourite flips the favourite flag. Silent no-op when absent.
func (c *Chats) ToggleFavourite(id string) {
	c.toggle(id, func(chat *model.Chat) { chat.IsFavourite = !chat.IsFavourite })
}

// ToggleArchive flips the archived flag. Archiving is the directory's
// soft delete: chats are never removed outright.
func (c *Chats) ToggleArchive(id string) {
	c.toggle(id, func(chat *model.Chat) { chat.IsArchived = !chat.IsArchived })
}

func (c *Chats) toggle(id string, mutate func(*model.Chat)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.chats {
		if c.chats[i].ID == id {
			mutate(&c.chats[i])
			c.persistLocked()
			publish(c.bus, bus.KindChatUpdated, id)
			return
		}
	}
}

// SetLastMessage updates the denormalized last-message pointer. Pass nil
// to clear it. Silent no-op when the chat is absent.
func (c *Chats) SetLastMessage(chatID string, msg *model.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.chats {
		if c.chats[i].ID == chatID {
			c.chats[i].LastMessage = msg
			c.persistLocked()
			publish(c.bus, bus.KindChatUpdated, chatID)
			return
		}
	}
}

// Filter returns the non-archived chats whose name contains query
// (case-insensitive) and that satisfy the category predicate. Archived
// chats never match, whatever the category.
func (c *Chats) Filter(query string, filter ChatFilter) []model.Chat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query = strings.ToLower(query)
	var out []model.Chat
	for i := range c.chats {
		chat := c.chats[i]
		if chat.IsArchived {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(chat.Name), query) {
			continue
		}
		switch filter {
		case FilterUnread:
			if chat.UnreadCount == 0 {
				continue
			}
		case FilterFavourites:
			if !chat.IsFavourite {
				continue
			}
		case FilterGroups:
			if !chat.IsGroupLike() {
				continue
			}
		}
		out = append(out, chat)
	}
	return out
}

func (c *Chats) persistLocked() {
	persist(c.adapter, c.logger, storage.KeyChats, c.chats)
}
