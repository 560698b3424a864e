package suggest

import (
	"context"
	"strings"
	"sync"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/persist"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// Options controls how an Engine matches and normalizes.
type Options struct {
	Match     trie.MatchMode
	Lowercase bool // fold words and queries to lower case
}

// DefaultOptions matches exactly and folds case.
func DefaultOptions() Options {
	return Options{Match: trie.MatchExact, Lowercase: true}
}

// Engine guards one trie with a read/write lock: AddWord is exclusive,
// queries share the lock. Memories passed in belong to the caller and must
// not be used by two goroutines at once.
type Engine struct {
	mu    sync.RWMutex
	trie  *trie.Trie
	vocab *dictionary.Vocabulary
	opts  Options
}

var _ ICompleter = (*Engine)(nil)

// NewEngine returns an engine over an empty trie.
func NewEngine(opts Options) *Engine {
	return &Engine{
		trie:  trie.New(trie.WithMatchMode(opts.Match)),
		vocab: dictionary.NewVocabulary(),
		opts:  opts,
	}
}

// FromWords builds an engine by inserting words in order.
func FromWords(words []string, opts Options) *Engine {
	e := NewEngine(opts)
	e.AddWords(words)
	return e
}

// FromTrie wraps an existing trie, typically one restored by package persist.
// Words are taken as stored; Lowercase only applies to later inserts and queries.
func FromTrie(t *trie.Trie, opts Options) *Engine {
	return &Engine{
		trie:  t,
		vocab: dictionary.VocabularyFrom(t.Words()),
		opts:  opts,
	}
}

// CreateTrie builds an engine from the word source at path. column selects
// the CSV column and is ignored for word lists.
func CreateTrie(path, column string, opts Options) (*Engine, error) {
	words, err := dictionary.Load(path, column)
	if err != nil {
		return nil, err
	}
	e := FromWords(words, opts)
	log.Debugf("Built trie from %s: %d words, %d nodes", path, e.vocab.Len(), e.trie.Size())
	return e, nil
}

// LoadSnapshot restores an engine from a snapshot file.
func LoadSnapshot(path string, opts Options) (*Engine, error) {
	t, err := persist.LoadSnapshot(path, trie.WithMatchMode(opts.Match))
	if err != nil {
		return nil, err
	}
	return FromTrie(t, opts), nil
}

// LoadRows restores an engine from a row store.
func LoadRows(ctx context.Context, store *persist.RowStore, opts Options) (*Engine, error) {
	t, err := store.Load(ctx, trie.WithMatchMode(opts.Match))
	if err != nil {
		return nil, err
	}
	return FromTrie(t, opts), nil
}

// SaveSnapshot writes the trie to path.
func (e *Engine) SaveSnapshot(path string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return persist.SaveSnapshot(path, e.trie)
}

// SaveRows writes the trie to store.
func (e *Engine) SaveRows(ctx context.Context, store *persist.RowStore) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return store.Save(ctx, e.trie)
}

func (e *Engine) normalize(s string) string {
	if e.opts.Lowercase {
		return strings.ToLower(s)
	}
	return s
}

// AddWord inserts word.
func (e *Engine) AddWord(word string) {
	word = e.normalize(word)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.trie.AddWord(word)
	e.vocab.Add(word)
}

// AddWords inserts words in order under a single lock.
func (e *Engine) AddWords(words []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, w := range words {
		w = e.normalize(w)
		e.trie.AddWord(w)
		e.vocab.Add(w)
	}
}

// Complete returns up to amount completions of prefix.
func (e *Engine) Complete(prefix string, amount int) []string {
	prefix = e.normalize(prefix)
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trie.SuggestedWords(prefix, amount)
}

// SuggestedWords completes m's query and advances its cached path.
func (e *Engine) SuggestedWords(m *trie.Memory, amount int) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trie.Suggest(m, amount)
}

// Has reports whether word was inserted.
func (e *Engine) Has(word string) bool {
	word = e.normalize(word)
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vocab.Has(word)
}

// CountPrefix returns how many distinct words start with prefix.
func (e *Engine) CountPrefix(prefix string) int {
	prefix = e.normalize(prefix)
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vocab.CountPrefix(prefix)
}

// Stats returns node and word counts.
func (e *Engine) Stats() map[string]int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return map[string]int{
		"nodes": e.trie.Size(),
		"words": e.vocab.Len(),
	}
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// Dump renders the arena table for debugging.
func (e *Engine) Dump() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trie.String()
}

// NewMemory starts a typing session.
func (e *Engine) NewMemory() *trie.Memory {
	return trie.NewMemory()
}

// MemoryFrom starts a typing session at word.
func (e *Engine) MemoryFrom(word string) *trie.Memory {
	return trie.MemoryFrom(e.normalize(word))
}

// UpdateWord moves m to word, keeping the cached path if word extends it.
func (e *Engine) UpdateWord(m *trie.Memory, word string) {
	m.Update(e.normalize(word))
}

// UpdateAndResetWord moves m to word and drops the cached path.
func (e *Engine) UpdateAndResetWord(m *trie.Memory, word string) {
	m.UpdateAndReset(e.normalize(word))
}
