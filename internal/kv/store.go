// Package kv is the persisted key-value mirror: a durable local copy of UI
// state (cart, theme) that survives restarts. Writes are best-effort, reads
// fall back to the caller's default, and every write fans out to subscribers
// so other holders of the same slot replace their in-memory copy wholesale.
package kv

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "storefront/internal/log"
)

type Store struct {
	db *sqlx.DB

	mu   sync.Mutex
	subs map[string][]*Subscription
}

// Subscription delivers the raw JSON value of a slot after each save by
// someone else. Delivery is best-effort: a subscriber that stops draining C
// misses updates instead of blocking writers.
type Subscription struct {
	C     chan []byte
	name  string
	store *Store
}

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps sqlite happy under writes and makes :memory:
	// databases behave in tests.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS kv(
  name TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT
)`); err != nil {
		return nil, err
	}
	return &Store{db: db, subs: map[string][]*Subscription{}}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Load unmarshals the slot into v. A missing slot, a read failure or an
// undecodable value leaves v untouched and returns false, so callers keep
// whatever default they supplied.
func (s *Store) Load(name string, v any) bool {
	var raw string
	if err := s.db.Get(&raw, `SELECT value FROM kv WHERE name = ?`, name); err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		applog.Warn(nil, "kv.load.corrupt", map[string]any{"slot": name, "err": err.Error()})
		return false
	}
	return true
}

// Save marshals v into the slot and notifies subscribers. Failures are
// logged, never returned: a broken mirror behaves like an empty one.
func (s *Store) Save(name string, v any) {
	s.save(name, v, nil)
}

// SaveFrom is Save for a writer that also subscribes to the slot: its own
// subscription is skipped so it never reacts to its own write.
func (s *Store) SaveFrom(origin *Subscription, name string, v any) {
	s.save(name, v, origin)
}

func (s *Store) save(name string, v any, origin *Subscription) {
	raw, err := json.Marshal(v)
	if err != nil {
		applog.Error(nil, "kv.save.fail", err, map[string]any{"slot": name})
		return
	}
	_, err = s.db.Exec(`
		INSERT INTO kv(name, value, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, name, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		applog.Error(nil, "kv.save.fail", err, map[string]any{"slot": name})
		return
	}
	s.notify(name, raw, origin)
}

// Delete clears the slot. Best-effort like Save.
func (s *Store) Delete(name string) {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE name = ?`, name); err != nil {
		applog.Error(nil, "kv.delete.fail", err, map[string]any{"slot": name})
	}
}

// Subscribe registers for change notifications on one slot.
func (s *Store) Subscribe(name string) *Subscription {
	sub := &Subscription{C: make(chan []byte, 8), name: name, store: s}
	s.mu.Lock()
	s.subs[name] = append(s.subs[name], sub)
	s.mu.Unlock()
	return sub
}

func (sub *Subscription) Close() {
	s := sub.store
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.subs[sub.name]
	for i, x := range list {
		if x == sub {
			s.subs[sub.name] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

func (s *Store) notify(name string, raw []byte, origin *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs[name] {
		if sub == origin {
			continue
		}
		select {
		case sub.C <- raw:
		default:
		}
	}
}
