package trie

const (
	// RootID is the identity of the root node.
	RootID = 0

	rootChar = ' '
	invalid  = -1
)

// arena owns every node. Identities are slice indexes, handed out in
// increasing order and never reused.
type arena struct {
	nodes []Node
}

func newArena() arena {
	return arena{nodes: []Node{newIncomplete(rootChar)}}
}

// size is the number of non-root nodes, which is also the last identity handed out.
func (a *arena) size() int {
	return len(a.nodes) - 1
}

func (a *arena) get(id int) (Node, bool) {
	if id < 0 || id >= len(a.nodes) {
		return nil, false
	}
	return a.nodes[id], true
}

// child scans the children of parent for r. Children are unsorted, so this is
// linear in the branching factor.
func (a *arena) child(parent int, r rune) int {
	for _, id := range a.nodes[parent].base().children {
		if a.nodes[id].Char() == r {
			return id
		}
	}
	return invalid
}

// alloc stores n under the next identity and links it below parent.
func (a *arena) alloc(parent int, n Node) int {
	id := len(a.nodes)
	a.nodes = append(a.nodes, n)
	p := a.nodes[parent].base()
	p.children = append(p.children, id)
	return id
}

// promote turns an Incomplete node into a Complete one in place, keeping its
// identity, rune and children.
func (a *arena) promote(id int, word string) bool {
	inc, ok := a.nodes[id].(*Incomplete)
	if !ok {
		return false
	}
	a.nodes[id] = &Complete{nodeBase: inc.nodeBase, word: word}
	return true
}
