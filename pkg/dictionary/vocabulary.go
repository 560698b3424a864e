package dictionary

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Vocabulary indexes the distinct words inserted into a trie.
// Not safe for concurrent mutation.
type Vocabulary struct {
	trie  *patricia.Trie
	count int
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{trie: patricia.NewTrie()}
}

// VocabularyFrom indexes words in order, ignoring repeats.
func VocabularyFrom(words []string) *Vocabulary {
	v := NewVocabulary()
	for _, w := range words {
		v.Add(w)
	}
	return v
}

// Add records word and reports whether it was new. Empty words are ignored.
func (v *Vocabulary) Add(word string) bool {
	if word == "" {
		return false
	}
	if !v.trie.Insert(patricia.Prefix(word), struct{}{}) {
		return false
	}
	v.count++
	return true
}

// Has reports whether word was added.
func (v *Vocabulary) Has(word string) bool {
	if word == "" {
		return false
	}
	return v.trie.Get(patricia.Prefix(word)) != nil
}

// CountPrefix returns how many distinct words start with prefix.
func (v *Vocabulary) CountPrefix(prefix string) int {
	count := 0
	err := v.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		count++
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting vocabulary subtree: %v", err)
	}
	return count
}

// Len is the number of distinct words.
func (v *Vocabulary) Len() int {
	return v.count
}
