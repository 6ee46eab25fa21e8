package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type Manager struct {
	store Store
	opts  Options
	now   func() time.Time
}

func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "sessionid"
	}
	if opts.TTL <= 0 {
		opts.TTL = 14 * 24 * time.Hour
	}

	return &Manager{
		store: store,
		opts:  opts,
		now:   time.Now,
	}
}

// Middleware loads the session into the request context and commits it
// right before the response header is written.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess := m.load(ctx, r)

		cw := &committingWriter{ResponseWriter: w}
		cw.commit = func() { m.commit(ctx, w, sess) }

		next.ServeHTTP(cw, r.WithContext(WithSession(ctx, sess)))

		cw.commitOnce()
	})
}

func (m *Manager) load(ctx context.Context, r *http.Request) *Session {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil {
		return New()
	}

	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return New()
	}

	raw, err := m.store.LoadSession(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Error("failed to load session", "method", "Manager.load", "error", err)
		}
		return New()
	}

	data, err := decode(raw)
	if err != nil {
		slog.Warn("dropping undecodable session", "method", "Manager.load", "error", err)
		return New()
	}

	return newSession(id, data)
}

func (m *Manager) commit(ctx context.Context, w http.ResponseWriter, s *Session) {
	if err := m.save(ctx, w, s); err != nil {
		slog.Error("failed to save session", "method", "Manager.commit", "error", err)
	}
}

func (m *Manager) save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.stale {
		if err := m.store.DeleteSession(ctx, id); err != nil {
			return fmt.Errorf("store.DeleteSession: %w", err)
		}
	}
	s.stale = nil

	if !s.modified {
		return nil
	}

	if s.data.empty() {
		if s.id != uuid.Nil {
			if err := m.store.DeleteSession(ctx, s.id); err != nil {
				return fmt.Errorf("store.DeleteSession: %w", err)
			}
			s.id = uuid.Nil
		}
		http.SetCookie(w, m.cookie("", -1))
		s.modified = false
		return nil
	}

	if s.id == uuid.Nil {
		s.id = uuid.New()
	}

	raw, err := encode(s.data)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := m.store.SaveSession(ctx, s.id, raw, m.now().Add(m.opts.TTL)); err != nil {
		return fmt.Errorf("store.SaveSession: %w", err)
	}

	http.SetCookie(w, m.cookie(s.id.String(), int(m.opts.TTL.Seconds())))
	s.modified = false

	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// committingWriter runs commit once before anything reaches the client.
type committingWriter struct {
	http.ResponseWriter

	once   sync.Once
	commit func()
}

func (c *committingWriter) commitOnce() {
	c.once.Do(c.commit)
}

func (c *committingWriter) WriteHeader(code int) {
	c.commitOnce()
	c.ResponseWriter.WriteHeader(code)
}

func (c *committingWriter) Write(b []byte) (int, error) {
	c.commitOnce()
	return c.ResponseWriter.Write(b)
}

func (c *committingWriter) Unwrap() http.ResponseWriter {
	return c.ResponseWriter
}
