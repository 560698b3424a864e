// Package suggest is the query surface over a trie, shared by the server, the CLI and embedding hosts.
package suggest

import "github.com/bastiangx/wordtrie/pkg/trie"

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns up to amount completions for prefix, without memory
	Complete(prefix string, amount int) []string

	// SuggestedWords completes the query held by m, resuming from its cached path
	SuggestedWords(m *trie.Memory, amount int) []string

	// AddWord inserts a word into the dictionary
	AddWord(word string)

	// Has reports whether word was inserted
	Has(word string) bool

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int

	// Memory constructors and mutators, normalizing the query like AddWord does
	NewMemory() *trie.Memory
	MemoryFrom(word string) *trie.Memory
	UpdateWord(m *trie.Memory, word string)
	UpdateAndResetWord(m *trie.Memory, word string)
}
