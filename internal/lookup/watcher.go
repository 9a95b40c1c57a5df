package lookup

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/cenkalti/backoff.v1"
)

const (
	DEFAULT_RELOAD_DEBOUNCE_DURATION = 100 * time.Millisecond

	RELOAD_RETRY_INITIAL_INTERVAL = 50 * time.Millisecond
	RELOAD_RETRY_MAX_ELAPSED_TIME = 2 * time.Second
)

var (
	ErrWatcherClosed = errors.New("whitelist watcher is closed")
)

type WatcherConfig struct {
	Path             string
	Loader           *Loader        //optional
	Logger           zerolog.Logger //ok if not set
	DebounceDuration time.Duration  //optional
}

// A Watcher keeps an up-to-date snapshot of a whitelist file. Every successful reload publishes a new
// immutable snapshot, compilations that already hold the previous snapshot are not affected.
type Watcher struct {
	path     string
	loader   *Loader
	logger   zerolog.Logger
	debounce func(f func())

	current   atomic.Pointer[Snapshot]
	fsWatcher *fsnotify.Watcher

	lock        sync.Mutex
	subscribers map[int]chan *Snapshot
	nextSubId   int
	closed      bool
}

// NewWatcher loads the whitelist at config.Path and starts watching its directory, the initial load must succeed.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	loader := config.Loader
	if loader == nil {
		loader = NewLoader(0)
	}

	debounceDuration := config.DebounceDuration
	if debounceDuration <= 0 {
		debounceDuration = DEFAULT_RELOAD_DEBOUNCE_DURATION
	}

	snapshot, err := loader.LoadFile(config.Path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	//the directory is watched because editors often replace files instead of writing them.
	if err := fsWatcher.Add(filepath.Dir(config.Path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch whitelist directory: %w", err)
	}

	w := &Watcher{
		path:        filepath.Clean(config.Path),
		loader:      loader,
		logger:      config.Logger,
		debounce:    debounce.New(debounceDuration),
		fsWatcher:   fsWatcher,
		subscribers: map[int]chan *Snapshot{},
	}
	w.current.Store(snapshot)
	return w, nil
}

// Current returns the last successfully loaded snapshot.
func (w *Watcher) Current() *Snapshot {
	return w.current.Load()
}

// Subscribe returns a channel that receives every newly published snapshot. Only the latest snapshot is kept
// if the subscriber is slow. The returned function cancels the subscription.
func (w *Watcher) Subscribe() (<-chan *Snapshot, func()) {
	w.lock.Lock()
	defer w.lock.Unlock()

	ch := make(chan *Snapshot, 1)
	if w.closed {
		close(ch)
		return ch, func() {}
	}

	id := w.nextSubId
	w.nextSubId++
	w.subscribers[id] = ch

	return ch, func() {
		w.lock.Lock()
		defer w.lock.Unlock()
		if sub, ok := w.subscribers[id]; ok {
			delete(w.subscribers, id)
			close(sub)
		}
	}
}

// Reload synchronously reloads the whitelist. On error the current snapshot is kept.
func (w *Watcher) Reload() (*Snapshot, error) {
	w.lock.Lock()
	closed := w.closed
	w.lock.Unlock()
	if closed {
		return nil, ErrWatcherClosed
	}

	snapshot, err := w.loader.LoadFile(w.path)
	if err != nil {
		w.logger.Err(err).Str("whitelist", w.path).Msg("failed to reload whitelist, keeping previous snapshot")
		return nil, err
	}

	previous := w.current.Swap(snapshot)
	if previous == snapshot {
		w.logger.Debug().Str("whitelist", w.path).Msg("whitelist unchanged")
		return snapshot, nil
	}

	w.logger.Info().Str("whitelist", w.path).Str("version", snapshot.Version().String()).Msg("whitelist reloaded")
	w.publish(snapshot)
	return snapshot, nil
}

func (w *Watcher) publish(snapshot *Snapshot) {
	w.lock.Lock()
	defer w.lock.Unlock()

	for _, ch := range w.subscribers {
		//drop the stale snapshot if the subscriber has not received it yet.
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}

// Run listens for filesystem events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.debounce(w.reloadWithRetry)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Err(err).Str("whitelist", w.path).Msg("whitelist watcher error")
		}
	}
}

// reloadWithRetry reloads the whitelist with an exponential backoff, a file event can be received while the
// file is only partially written.
func (w *Watcher) reloadWithRetry() {
	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = RELOAD_RETRY_INITIAL_INTERVAL
	strategy.MaxElapsedTime = RELOAD_RETRY_MAX_ELAPSED_TIME
	strategy.Reset()

	_ = backoff.RetryNotify(func() error {
		_, err := w.Reload()
		if errors.Is(err, ErrWatcherClosed) {
			return nil
		}
		return err
	}, strategy, func(err error, next time.Duration) {
		w.logger.Debug().Str("whitelist", w.path).Dur("retry-in", next).Msg("whitelist reload will be retried")
	})
}

func (w *Watcher) Close() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	for id, ch := range w.subscribers {
		delete(w.subscribers, id)
		close(ch)
	}
	return w.fsWatcher.Close()
}
