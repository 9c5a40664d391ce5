package state

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/bus"
	"github.com/pombo-im/pombo/internal/model"
	"github.com/pombo-im/pombo/internal/storage"
)

// VisibilityWindow is how long a story stays visible after posting.
const VisibilityWindow = 24 * time.Hour

// Stories keeps per-user story lists. The 24h window is applied both at
// rehydration and by the periodic sweep, so a stale story never surfaces
// even when the sweeper has not run yet.
type Stories struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	bus     *bus.Bus
	logger  *zap.Logger
	now     func() time.Time

	byUser map[string][]model.Story
}

// NewStories rehydrates the story store, filtering out expired entries.
func NewStories(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *Stories {
	s := &Stories{
		adapter: adapter,
		bus:     b,
		logger:  logger,
		now:     time.Now,
		byUser:  make(map[string][]model.Story),
	}
	var snap map[string][]model.Story
	if rehydrate(adapter, logger, storage.KeyStories, &snap) && snap != nil {
		cutoff := s.now().UnixMilli() - VisibilityWindow.Milliseconds()
		for userID, list := range snap {
			live := retainAfter(list, cutoff)
			if len(live) > 0 {
				s.byUser[userID] = live
			}
		}
	}
	return s
}

// All returns a copy of the per-user story collection.
func (s *Stories) All() map[string][]model.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]model.Story, len(s.byUser))
	for userID, list := range s.byUser {
		out[userID] = append([]model.Story(nil), list...)
	}
	return out
}

// ForUser returns a copy of one user's stories in posting order.
func (s *Stories) ForUser(userID string) []model.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.byUser[userID]
	if !ok {
		return nil
	}
	return append([]model.Story(nil), list...)
}

// SetAll replaces the whole collection.
func (s *Stories) SetAll(byUser map[string][]model.Story) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser = make(map[string][]model.Story, len(byUser))
	for userID, list := range byUser {
		s.byUser[userID] = append([]model.Story(nil), list...)
	}
	s.persistLocked()
	publish(s.bus, bus.KindStoryAdded, "")
}

// Add appends the story to the posting user's list, creating it if absent.
func (s *Stories) Add(story model.Story) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[story.UserID] = append(s.byUser[story.UserID], story)
	s.persistLocked()
	publish(s.bus, bus.KindStoryAdded, story.ID)
}

// View records viewerID on the story, at most once per viewer. Silent
// no-op when the story is absent or the viewer is already recorded.
func (s *Stories) View(userID, storyID, viewerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.byUser[userID]
	if !ok {
		return
	}
	for i := range list {
		if list[i].ID != storyID {
			continue
		}
		for _, v := range list[i].Views {
			if v == viewerID {
				return
			}
		}
		list[i].Views = append(list[i].Views, viewerID)
		s.persistLocked()
		publish(s.bus, bus.KindStoryViewed, storyID)
		return
	}
}

// CleanupExpired drops every story older than the visibility window and
// removes users whose lists become empty. The result is persisted even
// when nothing changed, keeping the side effect explicit; the sweep is
// idempotent and safe to run redundantly.
func (s *Stories) CleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().UnixMilli() - VisibilityWindow.Milliseconds()
	removed := 0
	for userID, list := range s.byUser {
		live := retainAfter(list, cutoff)
		removed += len(list) - len(live)
		if len(live) == 0 {
			delete(s.byUser, userID)
		} else {
			s.byUser[userID] = live
		}
	}
	s.persistLocked()
	if removed > 0 {
		s.logger.Info("expired stories removed", zap.Int("count", removed))
		publish(s.bus, bus.KindStoriesExpired, removed)
	}
}

// retainAfter keeps stories whose timestamp is strictly newer than cutoff.
func retainAfter(list []model.Story, cutoff int64) []model.Story {
	var live []model.Story
	for _, story := range list {
		if story.Timestamp > cutoff {
			live = append(live, story)
		}
	}
	return live
}

func (s *Stories) persistLocked() {
	persist(s.adapter, s.logger, storage.KeyStories, s.byUser)
}
