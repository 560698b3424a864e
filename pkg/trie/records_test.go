package trie

import (
	"errors"
	"slices"
	"testing"
)

func TestExportImport(t *testing.T) {
	orig := sampleTrie()
	orig.AddWord("ca")

	records := orig.Export()
	if len(records) != orig.Size()+1 {
		t.Fatalf("exported %d records for size %d", len(records), orig.Size())
	}

	// order must not matter
	slices.Reverse(records)
	restored, err := Import(orig.Size(), records)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if restored.Size() != orig.Size() {
		t.Errorf("size = %d, want %d", restored.Size(), orig.Size())
	}
	for id := 0; id <= orig.Size(); id++ {
		a, _ := orig.Node(id)
		b, _ := restored.Node(id)
		wa, ca := WordOf(a)
		wb, cb := WordOf(b)
		if a.Char() != b.Char() || wa != wb || ca != cb || !slices.Equal(a.Children(), b.Children()) {
			t.Errorf("node %d differs after import", id)
		}
	}
	for _, q := range []string{"", "c", "ca", "tr", "zzz"} {
		if a, b := orig.SuggestedWords(q, 10), restored.SuggestedWords(q, 10); !slices.Equal(a, b) {
			t.Errorf("%q: %v != %v", q, a, b)
		}
	}
}

func TestImportOptions(t *testing.T) {
	restored, err := Import(sampleTrie().Size(), sampleTrie().Export(), WithMatchMode(MatchNearest))
	if err != nil {
		t.Fatal(err)
	}
	if restored.MatchMode() != MatchNearest {
		t.Errorf("match mode = %v", restored.MatchMode())
	}
}

func TestImportRejects(t *testing.T) {
	valid := func() []NodeRecord {
		tr := New()
		tr.AddWord("ab")
		tr.AddWord("ac")
		return tr.Export()
	}

	testCases := []struct {
		name   string
		size   int
		mutate func([]NodeRecord) []NodeRecord
	}{
		{"size mismatch", 4, func(r []NodeRecord) []NodeRecord { return r }},
		{"negative size", -1, func(r []NodeRecord) []NodeRecord { return r[:0] }},
		{"out of range id", 3, func(r []NodeRecord) []NodeRecord { r[2].ID = 9; return r }},
		{"duplicate id", 3, func(r []NodeRecord) []NodeRecord { r[2].ID = 1; return r }},
		{"complete root", 3, func(r []NodeRecord) []NodeRecord { r[0].Complete, r[0].Word = true, " "; return r }},
		{"dangling child", 3, func(r []NodeRecord) []NodeRecord { r[1].Children = append(r[1].Children, 7); return r }},
		{"root as child", 3, func(r []NodeRecord) []NodeRecord { r[1].Children = append(r[1].Children, 0); return r }},
		{"two parents", 3, func(r []NodeRecord) []NodeRecord { r[0].Children = append(r[0].Children, 2); return r }},
		{"unreachable", 3, func(r []NodeRecord) []NodeRecord { r[1].Children = r[1].Children[:1]; return r }},
		{"word mismatch", 3, func(r []NodeRecord) []NodeRecord { r[2].Word = "xb"; return r }},
		{"duplicate sibling rune", 3, func(r []NodeRecord) []NodeRecord { r[3].Char, r[3].Word = 'b', "ab"; return r }},
		{"empty word", 3, func(r []NodeRecord) []NodeRecord { r[2].Word = ""; return r }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Import(tc.size, tc.mutate(valid()))
			if !errors.Is(err, ErrInvalidRecords) {
				t.Errorf("err = %v, want ErrInvalidRecords", err)
			}
		})
	}
}
