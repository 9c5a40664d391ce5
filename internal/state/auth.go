package state

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/bus"
	"github.com/pombo-im/pombo/internal/model"
	"github.com/pombo-im/pombo/internal/storage"
)

// authSnapshot is the persisted shape. IsAuthenticated is a pointer so a
// stored blob that lacks a recognizable boolean fails the shape check and
// falls back to the signed-out default.
type authSnapshot struct {
	CurrentUser     *model.User `json:"currentUser"`
	IsAuthenticated *bool       `json:"isAuthenticated"`
}

// Auth tracks the signed-in user.
type Auth struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	bus     *bus.Bus
	logger  *zap.Logger

	user          *model.User
	authenticated bool
}

// NewAuth rehydrates auth state from the adapter, defaulting to signed out.
func NewAuth(adapter storage.Adapter, b *bus.Bus, logger *zap.Logger) *Auth {
	a := &Auth{adapter: adapter, bus: b, logger: logger}
	var snap authSnapshot
	if rehydrate(adapter, logger, storage.KeyAuth, &snap) && snap.IsAuthenticated != nil {
		a.user = snap.CurrentUser
		a.authenticated = *snap.IsAuthenticated
	}
	return a
}

// Current returns a copy of the signed-in user, if any.
func (a *Auth) Current() (model.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return model.User{}, false
	}
	return *a.user, a.authenticated
}

// Authenticated reports whether a user is signed in.
func (a *Auth) Authenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// Login replaces the current user and marks the session authenticated.
func (a *Auth) Login(user model.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = &user
	a.authenticated = true
	a.persistLocked()
	publish(a.bus, bus.KindAuthLogin, user.ID)
}

// Logout clears the user and removes the persisted snapshot entirely.
func (a *Auth) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = nil
	a.authenticated = false
	if err := a.adapter.Delete(storage.KeyAuth); err != nil {
		a.logger.Error("delete auth snapshot", zap.Error(err))
	}
	publish(a.bus, bus.KindAuthLogout, nil)
}

// UserPatch is a partial profile update; nil fields are left unchanged.
type UserPatch struct {
	Name     *string
	Phone    *string
	Email    *string
	Username *string
	Avatar   *string
	About    *string
}

// UpdateProfile shallow-merges the patch into the current user. No-op
// when signed out.
func (a *Auth) UpdateProfile(patch UserPatch) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&a.user.Name, patch.Name)
	apply(&a.user.Phone, patch.Phone)
	apply(&a.user.Email, patch.Email)
	apply(&a.user.Username, patch.Username)
	apply(&a.user.Avatar, patch.Avatar)
	apply(&a.user.About, patch.About)
	a.persistLocked()
	publish(a.bus, bus.KindAuthProfile, a.user.ID)
}

func (a *Auth) persistLocked() {
	persist(a.adapter, a.logger, storage.KeyAuth, authSnapshot{
		CurrentUser:     a.user,
		IsAuthenticated: &a.authenticated,
	})
}
