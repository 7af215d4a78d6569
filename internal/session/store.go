// Package session tracks per-caller favorites and dislikes. The catalog stays
// shared and read-only; this is the only mutable state in the service.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session: not found")

type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	favorites map[string]bool
	dislikes  map[string]bool
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		favorites: make(map[string]bool),
		dislikes:  make(map[string]bool),
	}
	s.sessions[sess.ID] = sess
	return Session{ID: sess.ID, CreatedAt: sess.CreatedAt}
}

// SetFavorite marks or unmarks an item. Favoriting clears a standing dislike.
func (s *Store) SetFavorite(sessionID, itemID string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	if on {
		sess.favorites[itemID] = true
		delete(sess.dislikes, itemID)
	} else {
		delete(sess.favorites, itemID)
	}
	return nil
}

// SetDislike marks or unmarks an item. Disliking evicts the item from
// favorites so the two sets never overlap.
func (s *Store) SetDislike(sessionID, itemID string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	if on {
		sess.dislikes[itemID] = true
		delete(sess.favorites, itemID)
	} else {
		delete(sess.dislikes, itemID)
	}
	return nil
}

// Snapshot returns copies of the favorite/dislike sets, safe to read while
// other requests mutate the session.
func (s *Store) Snapshot(sessionID string) (favorites, dislikes map[string]bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	return copySet(sess.favorites), copySet(sess.dislikes), nil
}

func copySet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
