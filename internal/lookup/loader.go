package lookup

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/tidwall/tinylru"
)

const (
	DEFAULT_SNAPSHOT_CACHE_SIZE = 16
)

// A Loader builds snapshots from whitelist files, snapshots are cached by content hash so reloading an
// unchanged whitelist returns the same snapshot. The cache is swapped as a whole on invalidation, tinylru.LRU
// being already safe for concurrent use.
type Loader struct {
	cache     atomic.Pointer[tinylru.LRU] //[32]byte -> *Snapshot
	cacheSize int
}

func NewLoader(cacheSize int) *Loader {
	if cacheSize <= 0 {
		cacheSize = DEFAULT_SNAPSHOT_CACHE_SIZE
	}
	l := &Loader{cacheSize: cacheSize}
	l.cache.Store(newSnapshotCache(cacheSize))
	return l
}

// LoadFile reads, parses and indexes the whitelist at path, the format is determined by the file extension.
func (l *Loader) LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read whitelist: %w", err)
	}

	snapshot, err := l.Load(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snapshot, nil
}

func (l *Loader) Load(data []byte, format Format) (*Snapshot, error) {
	hash := sha256.Sum256(append([]byte(format.String()), data...))

	cache := l.cache.Load()
	if cached, ok := cache.Get(hash); ok {
		return cached.(*Snapshot), nil
	}

	desc, err := ParseDescription(data, format)
	if err != nil {
		return nil, err
	}

	snapshot, err := Build(desc)
	if err != nil {
		return nil, err
	}

	cache.Set(hash, snapshot)

	return snapshot, nil
}

// Invalidate removes all cached snapshots.
func (l *Loader) Invalidate() {
	l.cache.Store(newSnapshotCache(l.cacheSize))
}

func newSnapshotCache(size int) *tinylru.LRU {
	cache := &tinylru.LRU{}
	cache.Resize(size)
	return cache
}
