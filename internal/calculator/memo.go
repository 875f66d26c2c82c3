package calculator

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/strategy"
)

// DefaultMemoSize bounds the number of memoized merge-point results.
const DefaultMemoSize = 1024

// memoKey identifies one merge-point calculation. The branch is part of
// the key because release branches sharing a configuration key version
// differently by name.
type memoKey struct {
	sha    string
	key    string
	branch string
	depth  int
}

// Memo caches merge-point results across the recursive calls of one
// calculation and across concurrent calculations over the same snapshot.
// It is safe for concurrent use. Entries are never invalidated, so a Memo
// must not outlive the snapshot it was filled from.
type Memo struct {
	cache  *lru.Cache[memoKey, strategy.Inherited]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemo creates a Memo holding up to size entries.
func NewMemo(size int) (*Memo, error) {
	if size <= 0 {
		size = DefaultMemoSize
	}
	cache, err := lru.New[memoKey, strategy.Inherited](size)
	if err != nil {
		return nil, err
	}
	return &Memo{cache: cache}, nil
}

func (m *Memo) get(k memoKey) (strategy.Inherited, bool) {
	v, ok := m.cache.Get(k)
	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return v, ok
}

func (m *Memo) add(k memoKey, v strategy.Inherited) {
	m.cache.Add(k, v)
}

// Len returns the number of cached entries.
func (m *Memo) Len() int { return m.cache.Len() }

// Stats returns the number of cache hits and misses so far.
func (m *Memo) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}
