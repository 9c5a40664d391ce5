package storage

import (
	"fmt"

	"github.com/cockroachdb/pebble"
)

// snapshot keys share the pebble keyspace with nothing else, but a prefix
// keeps room for future namespaces without a format change.
const pebblePrefix = "snapshot:"

// Pebble is an Adapter backed by a pebble LSM directory. Writes are
// synced so a snapshot survives an abrupt termination once Save returns.
type Pebble struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) the pebble database at dir.
func OpenPebble(dir string) (*Pebble, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble: %w", err)
	}
	return &Pebble{db: db}, nil
}

func (p *Pebble) Load(key string) ([]byte, error) {
	raw, closer, err := p.db.Get([]byte(pebblePrefix + key))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return cp, nil
}

func (p *Pebble) Save(key string, snapshot []byte) error {
	if err := p.db.Set([]byte(pebblePrefix+key), snapshot, pebble.Sync); err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

func (p *Pebble) Delete(key string) error {
	if err := p.db.Delete([]byte(pebblePrefix+key), pebble.Sync); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}

func (p *Pebble) Close() error {
	return p.db.Close()
}
