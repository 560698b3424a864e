// Package trie is the arena-backed prefix trie used for typeahead completion.
//
// Nodes live in a flat table and refer to each other only by integer identity.
// Suggestions are collected depth-first below the node reached by the query,
// with children explored in insertion order, so words inserted earlier win ties.
//
// A Trie performs no locking. Callers that share one across goroutines must
// serialize AddWord against queries themselves (see package suggest).
package trie

import (
	"github.com/charmbracelet/log"
)

// MatchMode controls what a query that walks off the trie returns.
type MatchMode int

const (
	// MatchExact returns nothing unless every rune of the query was matched.
	MatchExact MatchMode = iota
	// MatchNearest expands from the deepest node the query reached.
	MatchNearest
)

func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchNearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// ParseMatchMode maps "exact" and "nearest" to a MatchMode.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch s {
	case "exact", "":
		return MatchExact, true
	case "nearest":
		return MatchNearest, true
	}
	return MatchExact, false
}

// Option configures a Trie.
type Option func(*Trie)

// WithMatchMode sets the MatchMode. The default is MatchExact.
func WithMatchMode(m MatchMode) Option {
	return func(t *Trie) { t.match = m }
}

// Trie is a prefix tree over runes stored in an arena.
type Trie struct {
	arena arena
	match MatchMode
}

// New returns an empty trie holding only the root.
func New(opts ...Option) *Trie {
	t := &Trie{arena: newArena()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddWord inserts word. Shared prefixes reuse existing nodes; a word that ends
// on an existing Incomplete node promotes it to Complete. The empty string is
// a no-op.
func (t *Trie) AddWord(word string) {
	runes := []rune(word)
	current := RootID

	for i, r := range runes {
		last := i == len(runes)-1
		next := t.arena.child(current, r)

		switch {
		case next == invalid && last:
			next = t.arena.alloc(current, newComplete(r, word))
		case next == invalid:
			next = t.arena.alloc(current, newIncomplete(r))
		case last:
			if t.arena.promote(next, word) {
				log.Debugf("Promoted node %d to complete for '%s'", next, word)
			}
		}
		current = next
	}
}

// Size is the number of nodes created by insertions, excluding the root.
func (t *Trie) Size() int {
	return t.arena.size()
}

// Node returns the node stored under id.
func (t *Trie) Node(id int) (Node, bool) {
	return t.arena.get(id)
}

// MatchMode reports how unmatched query tails are handled.
func (t *Trie) MatchMode() MatchMode {
	return t.match
}

// SuggestedWords returns up to amount words below query, without any memory.
func (t *Trie) SuggestedWords(query string, amount int) []string {
	runes := []rune(query)
	node, consumed := t.walk(RootID, runes, nil)
	if consumed < len(runes) && t.match == MatchExact {
		return []string{}
	}
	return t.collect(node, amount)
}

// Suggest is SuggestedWords for m.Word(), resuming the prefix walk from the
// path cached in m and appending every newly walked node to it.
// A nil memory behaves like the empty query.
func (t *Trie) Suggest(m *Memory, amount int) []string {
	if m == nil {
		return t.SuggestedWords("", amount)
	}

	runes := []rune(m.word)
	if !t.cacheUsable(m, len(runes)) {
		m.ResetNodeIDs()
	}

	start := RootID
	if n := len(m.nodeIDs); n > 0 {
		start = m.nodeIDs[n-1]
	}
	node, _ := t.walk(start, runes[len(m.nodeIDs):], m.PushNodeID)

	if len(m.nodeIDs) < len(runes) && t.match == MatchExact {
		return []string{}
	}
	return t.collect(node, amount)
}

// cacheUsable rejects a cached path that is longer than the query or names
// identities this trie never handed out.
func (t *Trie) cacheUsable(m *Memory, queryLen int) bool {
	if len(m.nodeIDs) > queryLen {
		return false
	}
	for _, id := range m.nodeIDs {
		if id <= RootID || id > t.arena.size() {
			return false
		}
	}
	return true
}

// walk follows runes from start and stops at the first rune without a
// matching child. It returns the last node reached and how many runes matched.
func (t *Trie) walk(start int, runes []rune, visit func(id int)) (int, int) {
	current := start
	for i, r := range runes {
		next := t.arena.child(current, r)
		if next == invalid {
			return current, i
		}
		if visit != nil {
			visit(next)
		}
		current = next
	}
	return current, len(runes)
}

// collect runs an explicit-stack depth-first search from start and gathers
// terminal words until amount is reached or the subtree is exhausted.
// Children are pushed in reverse so they pop in insertion order.
func (t *Trie) collect(start, amount int) []string {
	if amount <= 0 {
		return []string{}
	}
	words := make([]string, 0, min(amount, 64))

	visited := make(map[int]struct{})
	stack := []int{start}

	for len(stack) > 0 && len(words) < amount {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}

		node := t.arena.nodes[id]
		if word, ok := WordOf(node); ok {
			words = append(words, word)
		}

		children := node.base().children
		for i := len(children) - 1; i >= 0; i-- {
			if _, seen := visited[children[i]]; !seen {
				stack = append(stack, children[i])
			}
		}
	}
	return words
}

// Words returns every inserted word ordered by the identity of its terminal node.
func (t *Trie) Words() []string {
	var words []string
	for _, n := range t.arena.nodes {
		if word, ok := WordOf(n); ok {
			words = append(words, word)
		}
	}
	return words
}
