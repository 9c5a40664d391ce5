package state

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/bus"
	"github.com/pombo-im/pombo/internal/model"
	"github.com/pombo-im/pombo/internal/storage"
)

// Settings holds the current user's preferences.
type Settings struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	bus     *bus.Bus
	logger  *zap.Logger

	current model.Settings
}

// NewSettings rehydrates preferences, defaulting to model.DefaultSettings.
func NewSettings(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *Settings {
	s := &Settings{adapter: adapter, bus: b, logger: logger, current: model.DefaultSettings()}
	snap := model.DefaultSettings()
	if rehydrate(adapter, logger, storage.KeySettings, &snap) {
		s.current = snap
	}
	return s
}

// Snapshot returns the current preference set.
func (s *Settings) Snapshot() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SettingsPatch is a partial preference update; nil fields keep their
// current value (last write wins per field).
type SettingsPatch struct {
	Theme               *model.Theme
	Notifications       *bool
	SoundEnabled        *bool
	EnterToSend         *bool
	ReadReceipts        *bool
	LastSeenVisible     *bool
	ProfilePhotoVisible *model.PhotoVisibility
	Language            *string
}

// Update merges the patch over current settings and persists.
func (s *Settings) Update(patch SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Theme != nil {
		s.current.Theme = *patch.Theme
	}
	if patch.Notifications != nil {
		s.current.Notifications = *patch.Notifications
	}
	if patch.SoundEnabled != nil {
		s.current.SoundEnabled = *patch.SoundEnabled
	}
	if patch.EnterToSend != nil {
		s.current.EnterToSend = *patch.EnterToSend
	}
	if patch.ReadReceipts != nil {
		s.current.ReadReceipts = *patch.ReadReceipts
	}
	if patch.LastSeenVisible != nil {
		s.current.LastSeenVisible = *patch.LastSeenVisible
	}
	if patch.ProfilePhotoVisible != nil {
		s.current.ProfilePhotoVisible = *patch.ProfilePhotoVisible
	}
	if patch.Language != nil {
		s.current.Language = *patch.Language
	}
	persist(s.adapter, s.logger, storage.KeySettings, s.current)
	publish(s.bus, bus.KindSettingsUpdated, s.current)
}

// ToggleTheme flips between dark and light.
func (s *Settings) ToggleTheme() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Theme == model.ThemeDark {
		s.current.Theme = model.ThemeLight
	} else {
		s.current.Theme = model.ThemeDark
	}
	persist(s.adapter, s.logger, storage.KeySettings, s.current)
	publish(s.bus, bus.KindSettingsUpdated, s.current)
}
