package server

import (
	"math"
	"sync"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// sessionCache maps session IDs to their query memory. When full, the least
// recently used session is evicted.
type sessionCache struct {
	memories    map[string]*trie.Memory
	accessTime  map[string]int64
	accessCount int64
	hits        int
	maxSessions int
	mu          sync.Mutex
}

func newSessionCache(maxSessions int) *sessionCache {
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &sessionCache{
		memories:    make(map[string]*trie.Memory, maxSessions),
		accessTime:  make(map[string]int64, maxSessions),
		maxSessions: maxSessions,
	}
}

// Get returns the memory of session id and marks it used.
func (sc *sessionCache) Get(id string) (*trie.Memory, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	m, ok := sc.memories[id]
	if ok {
		sc.hits++
		sc.markAccessed(id)
	}
	return m, ok
}

// Put stores m under id, evicting the oldest session if the table is full.
func (sc *sessionCache) Put(id string, m *trie.Memory) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if _, exists := sc.memories[id]; !exists && len(sc.memories) >= sc.maxSessions {
		sc.evictLRU()
	}
	sc.memories[id] = m
	sc.markAccessed(id)
}

// Remove drops session id and reports whether it existed.
func (sc *sessionCache) Remove(id string) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if _, ok := sc.memories[id]; !ok {
		return false
	}
	delete(sc.memories, id)
	delete(sc.accessTime, id)
	return true
}

func (sc *sessionCache) Len() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.memories)
}

func (sc *sessionCache) Stats() map[string]int {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return map[string]int{
		"sessions":    len(sc.memories),
		"maxSessions": sc.maxSessions,
		"sessionHits": sc.hits,
	}
}

func (sc *sessionCache) markAccessed(id string) {
	sc.accessCount++
	sc.accessTime[id] = sc.accessCount
}

func (sc *sessionCache) evictLRU() {
	var oldestID string
	var oldestTime int64 = math.MaxInt64

	for id, accessTime := range sc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestID = id
		}
	}

	if oldestID != "" {
		delete(sc.memories, oldestID)
		delete(sc.accessTime, oldestID)
		log.Debugf("Evicted session '%s'", oldestID)
	}
}
