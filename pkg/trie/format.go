package trie

import (
	"fmt"
	"strings"
)

// String renders the arena as a table for debugging. Complete nodes show
// their rune in brackets.
func (t *Trie) String() string {
	var b strings.Builder
	b.WriteString("   ID   | value |          word          | children\n")
	b.WriteString("________|_______|________________________|_________\n")

	for id, n := range t.arena.nodes {
		value := fmt.Sprintf(" %c ", n.Char())
		word, complete := WordOf(n)
		if complete {
			value = fmt.Sprintf("[%c]", n.Char())
		}
		fmt.Fprintf(&b, "%8d|%5s  |%-24s|", id, value, word)

		children := n.base().children
		for i, child := range children {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", child)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
