// Package state holds the five client state containers: auth, settings,
// chat directory, message store and story store. Each container owns its
// in-memory collection, mirrors every mutation through the storage
// adapter, and publishes a change event on the bus. Rehydration is
// tolerant: a missing or undecodable snapshot becomes the documented
// default, never an error.
package state

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/bus"
	"github.com/pombo-im/pombo/internal/storage"
)

// persist mirrors v to the adapter under key. Persistence is
// fire-and-forget from the caller's point of view: failures are logged
// and the in-memory state stays authoritative for the session.
func persist(adapter storage.Adapter, logger *zap.Logger, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Error("marshal snapshot", zap.String("key", key), zap.Error(err))
		return
	}
	if err := adapter.Save(key, raw); err != nil {
		logger.Error("save snapshot", zap.String("key", key), zap.Error(err))
	}
}

// rehydrate loads key into out. Returns false when the snapshot is absent
// or does not decode; the caller keeps its default in that case.
func rehydrate(adapter storage.Adapter, logger *zap.Logger, key string, out any) bool {
	raw, err := adapter.Load(key)
	if err != nil {
		logger.Warn("load snapshot", zap.String("key", key), zap.Error(err))
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("discarding malformed snapshot", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// publish sends a change event when a bus is attached.
func publish(b *bus.Bus, kind string, payload any) {
	if b == nil {
		return
	}
	b.Publish(bus.Event{Kind: kind, Timestamp: time.Now(), Payload: payload})
}
