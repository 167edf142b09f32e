package generation

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"adstudio/internal/domain"
)

// Session serialises the effect of overlapping generation calls on one
// authoring view. Every call takes a sequence number; only the most recent
// call may deliver its result.
type Session struct {
	mu      sync.Mutex
	seq     uint64
	loading bool
}

// Loading reports whether the most recent call is still running.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.loading = true
	return s.seq
}

// finish clears the loading flag if seq is still the latest call and
// reports whether it is.
func (s *Session) finish(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	s.loading = false
	return true
}

// Run executes fn as the newest call of the session. If another call started
// while fn was running, fn's result is dropped and ErrStaleGeneration is
// returned. The loading flag is cleared on every path.
func Run[T any](ctx context.Context, s *Session, fn func(context.Context) (T, error)) (T, error) {
	seq := s.begin()
	var (
		result T
		err    error
		latest bool
	)
	func() {
		defer func() { latest = s.finish(seq) }()
		result, err = fn(ctx)
	}()
	if !latest {
		var zero T
		return zero, domain.ErrStaleGeneration
	}
	return result, err
}

// Sessions hands out one Session per authoring view id. Idle sessions expire.
type Sessions struct {
	mu    sync.Mutex
	items *cache.Cache
}

func NewSessions(idle time.Duration) *Sessions {
	return &Sessions{items: cache.New(idle, 2*idle)}
}

// Get returns the session for id, creating it on first use.
func (s *Sessions) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.items.Get(id); ok {
		sess := v.(*Session)
		s.items.SetDefault(id, sess)
		return sess
	}
	sess := &Session{}
	s.items.SetDefault(id, sess)
	return sess
}
