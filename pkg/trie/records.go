package trie

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidRecords is returned by Import when the records do not describe a
// well-formed arena.
var ErrInvalidRecords = errors.New("invalid trie records")

// NodeRecord is the flat, storage-neutral form of one arena entry.
type NodeRecord struct {
	ID       int
	Char     rune
	Children []int
	Complete bool
	Word     string
}

// Export returns one record per node, root first, ordered by identity.
func (t *Trie) Export() []NodeRecord {
	records := make([]NodeRecord, len(t.arena.nodes))
	for id, n := range t.arena.nodes {
		rec := NodeRecord{
			ID:       id,
			Char:     n.Char(),
			Children: n.Children(),
		}
		if word, ok := WordOf(n); ok {
			rec.Complete = true
			rec.Word = word
		}
		records[id] = rec
	}
	return records
}

// Import rebuilds a trie from records produced by Export. Records may arrive
// in any order. size must equal the highest identity, every identity in
// [0, size] must appear once, and every non-root node must hang below exactly
// one parent on a path from the root.
func Import(size int, records []NodeRecord, opts ...Option) (*Trie, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrInvalidRecords, size)
	}
	if len(records) != size+1 {
		return nil, fmt.Errorf("%w: %d records for size %d", ErrInvalidRecords, len(records), size)
	}

	nodes := make([]Node, size+1)
	for _, rec := range records {
		if rec.ID < 0 || rec.ID > size {
			return nil, fmt.Errorf("%w: identity %d out of range", ErrInvalidRecords, rec.ID)
		}
		if nodes[rec.ID] != nil {
			return nil, fmt.Errorf("%w: duplicate identity %d", ErrInvalidRecords, rec.ID)
		}
		children := make([]int, len(rec.Children))
		copy(children, rec.Children)
		base := nodeBase{char: rec.Char, children: children}

		if rec.Complete {
			last, _ := utf8.DecodeLastRuneInString(rec.Word)
			if rec.Word == "" || last != rec.Char {
				return nil, fmt.Errorf("%w: node %d word %q does not end in %q", ErrInvalidRecords, rec.ID, rec.Word, rec.Char)
			}
			nodes[rec.ID] = &Complete{nodeBase: base, word: rec.Word}
		} else {
			nodes[rec.ID] = &Incomplete{nodeBase: base}
		}
	}

	if _, ok := nodes[RootID].(*Incomplete); !ok {
		return nil, fmt.Errorf("%w: root must be incomplete", ErrInvalidRecords)
	}
	if err := checkTree(nodes); err != nil {
		return nil, err
	}

	t := New(opts...)
	t.arena.nodes = nodes
	return t, nil
}

// checkTree verifies that child links form a tree rooted at RootID covering
// every node, that siblings hold distinct runes, and that Complete words spell
// their path.
func checkTree(nodes []Node) error {
	parents := make([]int, len(nodes))
	for i := range parents {
		parents[i] = invalid
	}
	prefixes := make([]string, len(nodes))

	reached := 1
	queue := []int{RootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		children := nodes[id].base().children
		runes := make(map[rune]struct{}, len(children))
		for _, child := range children {
			if child <= RootID || child >= len(nodes) {
				return fmt.Errorf("%w: node %d links to missing node %d", ErrInvalidRecords, id, child)
			}
			// lookups stop at the first matching rune, so a second one is unreachable
			char := nodes[child].Char()
			if _, dup := runes[char]; dup {
				return fmt.Errorf("%w: node %d has two children for %q", ErrInvalidRecords, id, char)
			}
			runes[char] = struct{}{}
			if parents[child] != invalid {
				return fmt.Errorf("%w: node %d has more than one parent", ErrInvalidRecords, child)
			}
			parents[child] = id
			prefixes[child] = prefixes[id] + string(nodes[child].Char())

			if word, ok := WordOf(nodes[child]); ok && string([]rune(word)) != prefixes[child] {
				return fmt.Errorf("%w: node %d holds %q but spells %q", ErrInvalidRecords, child, word, prefixes[child])
			}
			reached++
			queue = append(queue, child)
		}
	}

	if reached != len(nodes) {
		return fmt.Errorf("%w: %d of %d nodes unreachable from the root", ErrInvalidRecords, len(nodes)-reached, len(nodes))
	}
	return nil
}
