// Package prefs keeps the visitor-facing theme preference mirrored into its
// kv slot. Same lifecycle contract as the cart: use after Close panics.
package prefs

import (
	"encoding/json"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/kv"
	applog "storefront/internal/log"
)

// Slot is the fixed mirror slot for the theme preference.
const Slot = "theme"

type Store struct {
	mirror *kv.Store
	sub    *kv.Subscription

	mu     sync.Mutex
	mode   domain.ThemeMode
	closed bool
	done   chan struct{}
}

// New loads the saved theme, defaulting to light when the slot is missing or
// unreadable, and watches the slot for external writes.
func New(mirror *kv.Store) *Store {
	s := &Store{mirror: mirror, mode: domain.ThemeLight, done: make(chan struct{})}
	var saved domain.ThemeMode
	if mirror.Load(Slot, &saved) && (saved == domain.ThemeLight || saved == domain.ThemeDark) {
		s.mode = saved
	}
	s.sub = mirror.Subscribe(Slot)
	go s.watch()
	return s
}

func (s *Store) watch() {
	for {
		select {
		case <-s.done:
			return
		case raw := <-s.sub.C:
			var next domain.ThemeMode
			if err := json.Unmarshal(raw, &next); err != nil || (next != domain.ThemeLight && next != domain.ThemeDark) {
				applog.Warn(nil, "prefs.sync.corrupt", map[string]any{"slot": Slot})
				continue
			}
			s.mu.Lock()
			if !s.closed {
				s.mode = next
			}
			s.mu.Unlock()
		}
	}
}

func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	close(s.done)
	s.sub.Close()
}

func (s *Store) ensureOpen() {
	if s.closed {
		panic("prefs: store used after Close")
	}
}

func (s *Store) Theme() domain.ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	return s.mode
}

// SetTheme stores a valid mode and mirrors it; anything but light|dark is
// ignored.
func (s *Store) SetTheme(m domain.ThemeMode) {
	if m != domain.ThemeLight && m != domain.ThemeDark {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	s.mode = m
	s.mirror.SaveFrom(s.sub, Slot, m)
}

// Toggle flips between light and dark.
func (s *Store) Toggle() domain.ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	if s.mode == domain.ThemeDark {
		s.mode = domain.ThemeLight
	} else {
		s.mode = domain.ThemeDark
	}
	s.mirror.SaveFrom(s.sub, Slot, s.mode)
	return s.mode
}
