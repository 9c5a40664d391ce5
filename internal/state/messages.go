package state

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/bus"
	"github.com/pombo-im/pombo/internal/model"
	"github.com/pombo-im/pombo/internal/storage"
)

// MessageRef identifies a message within a chat; it is the payload of
// message bus events so the projector can find what changed.
type MessageRef struct {
	ChatID    string
	MessageID string
}

// Messages keeps per-chat message lists in insertion order. This is a
// client cache, not a source of truth: every lookup miss is a silent
// no-op rather than an error.
type Messages struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	bus     *bus.Bus
	logger  *zap.Logger

	byChat map[string][]model.Message
}

// NewMessages rehydrates the message store, defaulting to empty.
func NewMessages(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *Messages {
	m := &Messages{adapter: adapter, bus: b, logger: logger, byChat: make(map[string][]model.Message)}
	var snap map[string][]model.Message
	if rehydrate(adapter, logger, storage.KeyMessages, &snap) && snap != nil {
		m.byChat = snap
	}
	return m
}

// ForChat returns a copy of a chat's message list in insertion order.
func (m *Messages) ForChat(chatID string) []model.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list, ok := m.byChat[chatID]
	if !ok {
		return nil
	}
	out := make([]model.Message, len(list))
	copy(out, list)
	return out
}

// Last returns the most recent message of a chat.
func (m *Messages) Last(chatID string) (model.Message, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.byChat[chatID]
	if len(list) == 0 {
		return model.Message{}, false
	}
	return list[len(list)-1], true
}

// SetForChat replaces a chat's message list.
func (m *Messages) SetForChat(chatID string, msgs []model.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byChat[chatID] = append([]model.Message(nil), msgs...)
	m.persistLocked()
	if len(msgs) > 0 {
		publish(m.bus, bus.KindMessageAdded, MessageRef{ChatID: chatID, MessageID: msgs[len(msgs)-1].ID})
	}
}

// Add appends the message to its chat's list, creating the list if absent.
func (m *Messages) Add(msg model.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byChat[msg.ChatID] = append(m.byChat[msg.ChatID], msg)
	m.persistLocked()
	publish(m.bus, bus.KindMessageAdded, MessageRef{ChatID: msg.ChatID, MessageID: msg.ID})
}

// Update replaces the message matching msg.ID in its chat's list.
func (m *Messages) Update(msg model.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := m.byChat[msg.ChatID]
	if !ok {
		return
	}
	for i := range list {
		if list[i].ID == msg.ID {
			list[i] = msg
			m.persistLocked()
			publish(m.bus, bus.KindMessageUpdated, MessageRef{ChatID: msg.ChatID, MessageID: msg.ID})
			return
		}
	}
}

// Delete removes the message from its chat's list.
func (m *Messages) Delete(chatID, messageID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := m.byChat[chatID]
	if !ok {
		return
	}
	for i := range list {
		if list[i].ID == messageID {
			m.byChat[chatID] = append(list[:i:i], list[i+1:]...)
			m.persistLocked()
			publish(m.bus, bus.KindMessageDeleted, MessageRef{ChatID: chatID, MessageID: messageID})
			return
		}
	}
}

// AddReaction upserts a reaction keyed by the reacting user: a second
// reaction from the same user replaces the emoji instead of appending.
func (m *Messages) AddReaction(chatID, messageID, emoji, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := m.byChat[chatID]
	if !ok {
		return
	}
	for i := range list {
		if list[i].ID != messageID {
			continue
		}
		msg := &list[i]
		replaced := false
		for j := range msg.Reactions {
			if msg.Reactions[j].UserID == userID {
				msg.Reactions[j].Emoji = emoji
				replaced = true
				break
			}
		}
		if !replaced {
			msg.Reactions = append(msg.Reactions, model.Reaction{Emoji: emoji, UserID: userID})
		}
		m.persistLocked()
		publish(m.bus, bus.KindReactionUpdated, MessageRef{ChatID: chatID, MessageID: messageID})
		return
	}
}

func (m *Messages) persistLocked() {
	persist(m.adapter, m.logger, storage.KeyMessages, m.byChat)
}
