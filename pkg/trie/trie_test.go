package trie

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

var sampleWords = []string{"car", "card", "cards", "cat", "trie", "try", "trying"}

func sampleTrie(opts ...Option) *Trie {
	t := New(opts...)
	for _, w := range sampleWords {
		t.AddWord(w)
	}
	return t
}

// size must grow by exactly the number of new nodes per insert
func TestAddWordSize(t *testing.T) {
	trie := New()
	wantSizes := []int{3, 4, 5, 6, 10, 11, 14}

	for i, w := range sampleWords {
		trie.AddWord(w)
		if got := trie.Size(); got != wantSizes[i] {
			t.Errorf("after %q: size = %d, want %d", w, got, wantSizes[i])
		}
	}
}

func TestAddWordIdempotent(t *testing.T) {
	trie := sampleTrie()
	before := trie.Size()

	for _, w := range sampleWords {
		trie.AddWord(w)
	}
	if got := trie.Size(); got != before {
		t.Errorf("size after re-inserting = %d, want %d", got, before)
	}
	if got := trie.SuggestedWords("car", 10); !slices.Equal(got, []string{"car", "card", "cards"}) {
		t.Errorf("duplicates leaked into results: %v", got)
	}
}

func TestAddWordEmpty(t *testing.T) {
	trie := New()
	trie.AddWord("")
	if trie.Size() != 0 {
		t.Errorf("empty word created %d nodes", trie.Size())
	}
	if got := trie.SuggestedWords("", 5); len(got) != 0 {
		t.Errorf("empty trie returned %v", got)
	}
}

// a shorter word inserted after a longer one must still be suggested
func TestAddWordPromotesPrefix(t *testing.T) {
	trie := New()
	trie.AddWord("card")
	trie.AddWord("car")

	if trie.Size() != 4 {
		t.Errorf("size = %d, want 4", trie.Size())
	}
	got := trie.SuggestedWords("ca", 5)
	if !slices.Equal(got, []string{"car", "card"}) {
		t.Errorf("got %v, want [car card]", got)
	}

	n, _ := trie.Node(3)
	if word, ok := WordOf(n); !ok || word != "car" {
		t.Errorf("node 3 = %v, want complete 'car'", n)
	}
	if !slices.Equal(n.Children(), []int{4}) {
		t.Errorf("promotion lost children: %v", n.Children())
	}
}

func TestSuggestedWords(t *testing.T) {
	trie := sampleTrie()

	testCases := []struct {
		query  string
		amount int
		want   []string
	}{
		{"tr", 5, []string{"trie", "try", "trying"}},
		{"tr", 2, []string{"trie", "try"}},
		{"car", 5, []string{"car", "card", "cards"}},
		{"ca", 10, []string{"car", "card", "cards", "cat"}},
		{"cards", 1, []string{"cards"}},
		{"", 3, []string{"car", "card", "cards"}},
		{"", 100, sampleWords},
		{"tr", 0, []string{}},
		{"tr", -3, []string{}},
		{"zzz", 5, []string{}},
		{"cart", 5, []string{}},
		{"trying!", 5, []string{}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s/%d", tc.query, tc.amount), func(t *testing.T) {
			got := trie.SuggestedWords(tc.query, tc.amount)
			if got == nil {
				t.Fatal("got nil, want an empty slice")
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("SuggestedWords(%q, %d) = %v, want %v", tc.query, tc.amount, got, tc.want)
			}
		})
	}
}

func TestSuggestedWordsExactMatchIncluded(t *testing.T) {
	trie := sampleTrie()
	for _, w := range sampleWords {
		got := trie.SuggestedWords(w, 1)
		if !slices.Contains(got, w) {
			t.Errorf("SuggestedWords(%q, 1) = %v, missing the word itself", w, got)
		}
	}
}

func TestSuggestedWordsNearest(t *testing.T) {
	trie := sampleTrie(WithMatchMode(MatchNearest))

	if got := trie.SuggestedWords("zzz", 3); !slices.Equal(got, []string{"car", "card", "cards"}) {
		t.Errorf("zzz = %v, want the first words of the vocabulary", got)
	}
	if got := trie.SuggestedWords("cart", 5); !slices.Equal(got, []string{"car", "card", "cards"}) {
		t.Errorf("cart = %v, want expansion from 'car'", got)
	}
}

func TestSuggestedWordsInsertionOrder(t *testing.T) {
	trie := New()
	for _, w := range []string{"zebra", "zeal", "zero", "apple"} {
		trie.AddWord(w)
	}
	got := trie.SuggestedWords("ze", 3)
	if !slices.Equal(got, []string{"zebra", "zeal", "zero"}) {
		t.Errorf("got %v, want insertion order not lexicographic", got)
	}
}

func TestUnicodeWords(t *testing.T) {
	trie := New()
	trie.AddWord("über")
	trie.AddWord("überall")
	trie.AddWord("日本")
	trie.AddWord("日本語")

	if trie.Size() != 10 {
		t.Errorf("size = %d, want 10", trie.Size())
	}
	if got := trie.SuggestedWords("üb", 5); !slices.Equal(got, []string{"über", "überall"}) {
		t.Errorf("üb = %v", got)
	}
	if got := trie.SuggestedWords("日", 5); !slices.Equal(got, []string{"日本", "日本語"}) {
		t.Errorf("日 = %v", got)
	}
}

func TestWords(t *testing.T) {
	trie := sampleTrie()
	if got := trie.Words(); !slices.Equal(got, sampleWords) {
		t.Errorf("Words() = %v, want %v", got, sampleWords)
	}
}

func TestString(t *testing.T) {
	trie := New()
	trie.AddWord("ab")
	out := trie.String()

	if !strings.Contains(out, "[b]") {
		t.Errorf("complete node not bracketed:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 5 {
		t.Errorf("got %d lines, want header(2) + 3 nodes:\n%s", lines, out)
	}
}

func TestParseMatchMode(t *testing.T) {
	testCases := []struct {
		in   string
		want MatchMode
		ok   bool
	}{
		{"exact", MatchExact, true},
		{"", MatchExact, true},
		{"nearest", MatchNearest, true},
		{"fuzzy", MatchExact, false},
	}
	for _, tc := range testCases {
		got, ok := ParseMatchMode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseMatchMode(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

// 50k generated words, 3-char prefix, 10 results
func BenchmarkSuggestedWords(b *testing.B) {
	trie := New()
	for i := 0; i < 50000; i++ {
		trie.AddWord(fmt.Sprintf("w%05dx", i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		trie.SuggestedWords("w12", 10)
	}
}
