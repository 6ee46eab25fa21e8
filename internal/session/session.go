// Package session keeps per-browser state behind a cookie: the logged-in user
// and the anonymous orders placed from that browser.
package session

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type Data struct {
	UserID   *int64  `json:"user_id,omitempty"`
	OrderIDs []int64 `json:"order_ids,omitempty"`
}

func (d Data) empty() bool {
	return d.UserID == nil && len(d.OrderIDs) == 0
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id   uuid.UUID // uuid.Nil until first saved
	data Data

	modified bool
	// stale ids to remove from the store on commit
	stale []uuid.UUID
}

func newSession(id uuid.UUID, data Data) *Session {
	return &Session{id: id, data: data}
}

// New returns an unsaved empty session.
func New() *Session {
	return newSession(uuid.Nil, Data{})
}

func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) UserID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.UserID == nil {
		return 0, false
	}
	return *s.data.UserID, true
}

// OrderIDs returns a copy of the anonymous order ids in creation order.
func (s *Session) OrderIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.OrderIDs)
}

// AddOrderID binds an anonymous order to the session.
func (s *Session) AddOrderID(orderID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.data.OrderIDs, orderID) {
		return
	}
	s.data.OrderIDs = append(s.data.OrderIDs, orderID)
	s.modified = true
}

// Login binds userID and moves the session to a fresh id. Data of a different
// previously logged-in user is dropped.
func (s *Session) Login(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.UserID != nil && *s.data.UserID != userID {
		s.data = Data{}
	}
	s.data.UserID = &userID

	s.rotate()
}

// Flush drops all data and the stored record.
func (s *Session) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = Data{}
	s.rotate()
}

func (s *Session) Modified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified
}

func (s *Session) rotate() {
	if s.id != uuid.Nil {
		s.stale = append(s.stale, s.id)
	}
	s.id = uuid.Nil
	s.modified = true
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the request session, or a detached empty one outside the middleware.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok {
		return s
	}
	return New()
}

func encode(d Data) ([]byte, error) {
	return json.Marshal(d)
}

func decode(b []byte) (Data, error) {
	var d Data
	err := json.Unmarshal(b, &d)
	return d, err
}
