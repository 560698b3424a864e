package trie

import (
	"strings"
	"unicode/utf8"
)

// Memory remembers the last query of a typing session and the node path the
// trie already walked for it, so a query that extends it resumes mid-trie.
//
// NodeIDs()[i] is the node reached after consuming the first i+1 runes of
// Word(). The path may be shorter than Word() when the walk fell off the trie.
// A Memory holds identities only and must not be shared between sessions.
type Memory struct {
	word    string
	nodeIDs []int
}

// NewMemory returns a memory for the empty query.
func NewMemory() *Memory {
	return &Memory{}
}

// MemoryFrom returns a memory seeded with query and an empty path.
func MemoryFrom(query string) *Memory {
	return &Memory{word: query}
}

// Update sets the query. The cached path survives only when query starts with
// the previous query; otherwise the next search restarts at the root.
func (m *Memory) Update(query string) {
	if !m.extends(query) {
		m.ResetNodeIDs()
	}
	m.word = query
}

// UpdateAndReset sets the query and always drops the cached path.
func (m *Memory) UpdateAndReset(query string) {
	m.ResetNodeIDs()
	m.word = query
}

// extends reports whether query begins with the cached query. An invalid
// UTF-8 tail may decode to different runes once more bytes follow it.
func (m *Memory) extends(query string) bool {
	return strings.HasPrefix(query, m.word) && utf8.ValidString(m.word)
}

// Word returns the current query.
func (m *Memory) Word() string {
	return m.word
}

// NodeIDs returns a copy of the cached path.
func (m *Memory) NodeIDs() []int {
	out := make([]int, len(m.nodeIDs))
	copy(out, m.nodeIDs)
	return out
}

// PushNodeID appends id to the cached path.
func (m *Memory) PushNodeID(id int) {
	m.nodeIDs = append(m.nodeIDs, id)
}

// ResetNodeIDs clears the cached path.
func (m *Memory) ResetNodeIDs() {
	m.nodeIDs = m.nodeIDs[:0]
}

// Resumable reports whether a search would start below the root.
func (m *Memory) Resumable() bool {
	return len(m.nodeIDs) > 0
}
