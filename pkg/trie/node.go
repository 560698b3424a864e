package trie

// Node is one arena entry. The set of implementations is closed:
// a node is either *Incomplete or *Complete.
type Node interface {
	// Char returns the rune this node holds.
	Char() rune
	// Children returns a copy of the child identities in insertion order.
	Children() []int
	base() *nodeBase
}

type nodeBase struct {
	char     rune
	children []int
}

func (b *nodeBase) Char() rune { return b.char }

func (b *nodeBase) Children() []int {
	out := make([]int, len(b.children))
	copy(out, b.children)
	return out
}

func (b *nodeBase) base() *nodeBase { return b }

// Incomplete is a node at which no inserted word terminates.
type Incomplete struct {
	nodeBase
}

// Complete is a node at which an inserted word terminates.
type Complete struct {
	nodeBase
	word string
}

// Word returns the full word ending at this node.
func (c *Complete) Word() string { return c.word }

// WordOf returns the terminal word of n, if n is Complete.
func WordOf(n Node) (string, bool) {
	if c, ok := n.(*Complete); ok {
		return c.word, true
	}
	return "", false
}

func newIncomplete(r rune) *Incomplete {
	return &Incomplete{nodeBase: nodeBase{char: r}}
}

func newComplete(r rune, word string) *Complete {
	return &Complete{nodeBase: nodeBase{char: r}, word: word}
}
