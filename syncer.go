package accounting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/bumlambs-max/Accounting-2.0/clock"
)

// Store is the remote persistence boundary: a key-value bin holding one
// serialized book per owner. Pull reports ErrNotFound for a key that was
// never pushed.
type Store interface {
	Push(ctx context.Context, key string, data []byte) error
	Pull(ctx context.Context, key string) ([]byte, error)
}

// DefaultDebounce is how long a session waits after the last edit before
// pushing. Long enough to coalesce a burst of edits, short enough that
// closing the laptop rarely loses anything.
const DefaultDebounce = 2 * time.Second

// opTimeout bounds a background push that has no caller context.
const opTimeout = 10 * time.Second

// SyncStats counts the sync traffic a session has generated.
type SyncStats struct {
	Pushes   uint64
	Pulls    uint64
	Failures uint64
}

// Session owns a live book and keeps it in sync with a Store. Edits go
// through Apply, which folds the event in, mirrors the book to a local file,
// and re-arms a trailing-edge debounced push of the full current state. Only
// the latest state travels: a burst of edits collapses into one push.
//
// Sync is last-writer-wins. There is no conflict detection; the book's
// Revision only lets a regression be noticed and logged, never rejected.
// Transport failures are logged and not retried, the next edit re-arms.
type Session struct {
	store Store
	key   string // owner email, the remote bin key

	clk      clock.Clock
	log      *zap.Logger
	debounce time.Duration
	mirror   string // local book file, "" to skip mirroring

	mu       sync.RWMutex
	book     *Book
	timer    *clock.Timer
	gen      uint64 // bumped on every re-arm and cancel; stale timers see it and give up
	dirty    bool
	closed   bool
	lastSync time.Time

	inflight atomic.Int64
	pushes   atomic.Uint64
	pulls    atomic.Uint64
	failures atomic.Uint64
}

// Option configures a Session.
type Option func(*Session)

// WithClock injects the clock driving the debounce. Tests pass clock.Fake.
func WithClock(c clock.Clock) Option { return func(s *Session) { s.clk = c } }

// WithLogger sets the session logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option { return func(s *Session) { s.log = l } }

// WithDebounce overrides the push debounce delay.
func WithDebounce(d time.Duration) Option { return func(s *Session) { s.debounce = d } }

// WithMirror makes the session write the book to path after every change, so
// a crash or an offline stretch never loses local edits.
func WithMirror(path string) Option { return func(s *Session) { s.mirror = path } }

// NewSession creates a session over the given book. The book's owner is the
// remote key.
func NewSession(book *Book, store Store, opts ...Option) *Session {
	s := &Session{
		store:    store,
		key:      book.Owner,
		clk:      clock.Real(),
		log:      zap.NewNop(),
		debounce: DefaultDebounce,
		book:     book,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("sync")
	return s
}

// Open pulls the owner's remote book once and replaces the local one
// wholesale when it exists. A key never pushed is not an error: the session
// simply starts from the book it was given.
func (s *Session) Open(ctx context.Context) error {
	data, err := s.pull(ctx)
	if errors.Is(err, ErrNotFound) {
		s.log.Info("no remote book yet", zap.String("owner", s.key))
		return nil
	}
	if err != nil {
		return err
	}
	remote, err := DecodeBook(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("remote book for %q: %w", s.key, err)
	}
	s.replace(remote)
	return nil
}

// Apply folds one event into the book, mirrors it, and re-arms the debounced
// push. The push that eventually fires carries whatever the book looks like
// then, not what it looked like now.
func (s *Session) Apply(evt Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("session is closed")
	}
	if err := s.book.Apply(evt); err != nil {
		return err
	}
	s.dirty = true
	s.mirrorLocked()
	s.armLocked()
	return nil
}

// Inspect runs f with the live book under the session lock, for reads like
// rendering a dashboard. f must not retain the book or write to it.
func (s *Session) Inspect(f func(*Book)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f(s.book)
}

// Export writes the current book as an export document.
func (s *Session) Export(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return EncodeBook(w, s.book)
}

// Refresh pulls the remote book and replaces the local one, discarding any
// local edits that have not been pushed. The pending debounced push, if any,
// is cancelled first so a stale local state cannot overwrite what was just
// pulled.
func (s *Session) Refresh(ctx context.Context) error {
	s.cancelPending()
	data, err := s.pull(ctx)
	if err != nil {
		return err
	}
	remote, err := DecodeBook(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("remote book for %q: %w", s.key, err)
	}
	s.replace(remote)
	return nil
}

// Flush pushes the current book immediately, bypassing the debounce. The
// CLI uses it for a deterministic "sync now".
func (s *Session) Flush(ctx context.Context) error {
	s.cancelPending()
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return errors.New("session is closed")
	}
	var buf bytes.Buffer
	err := EncodeBook(&buf, s.book)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return s.push(ctx, buf.Bytes())
}

// Close cancels any pending push and retires the session. Nothing is flushed
// on the way out; callers wanting a final push call Flush first.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Syncing reports whether a push or pull is in flight right now. The UI's
// sync indicator maps straight onto it.
func (s *Session) Syncing() bool { return s.inflight.Load() > 0 }

// Dirty reports whether the book holds edits not yet pushed.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// LastSync returns the time of the last successful push or pull, zero before
// the first one.
func (s *Session) LastSync() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}

// Stats returns cumulative sync counters.
func (s *Session) Stats() SyncStats {
	return SyncStats{
		Pushes:   s.pushes.Load(),
		Pulls:    s.pulls.Load(),
		Failures: s.failures.Load(),
	}
}

// armLocked re-arms the trailing-edge debounce. The previous timer is
// cancelled outright, so the delay restarts from the latest edit. The
// generation counter guards against a timer that already fired but has not
// run yet: by the time it runs, it notices the world moved on.
func (s *Session) armLocked() {
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.clk.AfterFunc(s.debounce, func() { s.firePush(gen) })
}

// cancelPending invalidates any armed push.
func (s *Session) cancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// firePush runs on the debounce timer. It encodes the book as it stands at
// fire time and pushes it in the background with its own deadline.
func (s *Session) firePush(gen uint64) {
	s.mu.RLock()
	if gen != s.gen || s.closed {
		s.mu.RUnlock()
		return
	}
	var buf bytes.Buffer
	err := EncodeBook(&buf, s.book)
	s.mu.RUnlock()
	if err != nil {
		s.log.Error("could not encode book for push", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	s.push(ctx, buf.Bytes()) // error already logged, next edit re-arms
}

func (s *Session) push(ctx context.Context, data []byte) error {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	if err := s.store.Push(ctx, s.key, data); err != nil {
		s.failures.Add(1)
		s.log.Warn("push failed", zap.String("owner", s.key), zap.Error(err))
		return err
	}
	s.pushes.Add(1)
	s.mu.Lock()
	s.dirty = false
	s.lastSync = s.clk.Now()
	s.mu.Unlock()
	s.log.Debug("pushed book", zap.String("owner", s.key), zap.Int("bytes", len(data)))
	return nil
}

func (s *Session) pull(ctx context.Context) ([]byte, error) {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	data, err := s.store.Pull(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.failures.Add(1)
			s.log.Warn("pull failed", zap.String("owner", s.key), zap.Error(err))
		}
		return nil, err
	}
	s.pulls.Add(1)
	s.mu.Lock()
	s.lastSync = s.clk.Now()
	s.mu.Unlock()
	s.log.Debug("pulled book", zap.String("owner", s.key), zap.Int("bytes", len(data)))
	return data, nil
}

// replace swaps in a freshly pulled book. Last-writer-wins: an older
// revision still replaces the local book, it is merely worth a warning in
// the log.
func (s *Session) replace(remote *Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if remote.Revision < s.book.Revision {
		s.log.Warn("remote book is older than local state",
			zap.String("owner", s.key),
			zap.Uint64("remote", remote.Revision),
			zap.Uint64("local", s.book.Revision))
	}
	if remote.Owner == "" {
		remote.Owner = s.key
	}
	s.book = remote
	s.dirty = false
	s.mirrorLocked()
}

// mirrorLocked writes the book to the local mirror file. Mirror trouble is
// logged, never fatal: the book in memory stays authoritative.
func (s *Session) mirrorLocked() {
	if s.mirror == "" {
		return
	}
	if err := SaveBook(s.mirror, s.book); err != nil {
		s.log.Warn("could not mirror book", zap.String("path", s.mirror), zap.Error(err))
	}
}
