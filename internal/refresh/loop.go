package refresh

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
)

// FetchFunc retrieves a complete snapshot of T.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is the last successfully fetched value and when it was fetched.
type Snapshot[T any] struct {
	Data      T
	FetchedAt time.Time
}

// Loop fetches T once when started and then on every Interval tick.
// Each successful fetch replaces the snapshot wholesale; a failed fetch
// leaves the previous snapshot in place.
type Loop[T any] struct {
	Name     string
	Interval time.Duration
	Fetch    FetchFunc[T]

	// OnUpdate runs after a new snapshot is stored. It is called from the
	// loop goroutine or from the caller of Refresh.
	OnUpdate func(T)
	// OnError runs after a failed fetch that was not caused by cancellation.
	OnError func(error)

	// snapshot uses atomic.Pointer for lock-free reads from the UI and the HTTP server.
	snapshot atomic.Pointer[Snapshot[T]]

	// fetchMu serializes fetches so a manual refresh and a tick never interleave.
	fetchMu sync.Mutex
}

// NewLoop builds a loop. An interval <= 0 disables periodic fetching;
// Start then performs only the initial fetch.
func NewLoop[T any](name string, interval time.Duration, fetch FetchFunc[T]) *Loop[T] {
	return &Loop[T]{
		Name:     name,
		Interval: interval,
		Fetch:    fetch,
	}
}

// Snapshot returns the current snapshot, or nil before the first successful fetch.
func (l *Loop[T]) Snapshot() *Snapshot[T] {
	return l.snapshot.Load()
}

// Refresh fetches immediately, outside the timer schedule.
func (l *Loop[T]) Refresh(ctx context.Context) error {
	l.fetchMu.Lock()
	defer l.fetchMu.Unlock()

	log := slog.With(config.LogKeyComponent, config.CompRefresh, config.LogKeyLoop, l.Name)
	start := time.Now()

	data, err := l.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			log.Debug(config.MsgLoopStop, config.LogKeyError, err)
			return err
		}
		log.Error(config.ErrRefreshFailed, config.LogKeyError, err)
		if l.OnError != nil {
			l.OnError(err)
		}
		return err
	}

	l.snapshot.Store(&Snapshot[T]{Data: data, FetchedAt: time.Now()})
	log.Debug(config.MsgSnapshot, config.LogKeyDuration, time.Since(start).Milliseconds())

	if l.OnUpdate != nil {
		l.OnUpdate(data)
	}
	return nil
}

// Subscription is the handle returned by Start.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the timer and any in-flight fetch, then waits for the loop to exit.
// It is safe to call more than once.
func (s *Subscription) Stop() {
	s.cancel()
	<-s.done
}

// Done is closed once the loop goroutine has exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Start runs the loop in its own goroutine until ctx is cancelled or the
// subscription is stopped.
func (l *Loop[T]) Start(ctx context.Context) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}
	go l.run(ctx, sub.done)
	return sub
}

func (l *Loop[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	log := slog.With(config.LogKeyComponent, config.CompRefresh, config.LogKeyLoop, l.Name)

	_ = l.Refresh(ctx)

	if l.Interval <= 0 {
		log.Info(config.MsgRefreshOff)
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	log.Info(config.MsgLoopStart, config.LogKeyInterval, l.Interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgLoopStop)
			return
		case <-ticker.C:
			_ = l.Refresh(ctx)
		}
	}
}
