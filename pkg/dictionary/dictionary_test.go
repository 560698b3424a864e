package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordsCSV = `rank,word,pos
1,car,noun
2,card,noun
3,"cards",noun
4, cat ,noun
`

func TestExtractColumn(t *testing.T) {
	words, err := ExtractColumn(strings.NewReader(wordsCSV), "word")
	require.NoError(t, err)
	assert.Equal(t, []string{"car", "card", "cards", "cat"}, words)

	ranks, err := ExtractColumn(strings.NewReader(wordsCSV), "rank")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ranks)
}

func TestExtractColumnHeaderOnly(t *testing.T) {
	words, err := ExtractColumn(strings.NewReader("word\n"), "word")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestExtractColumnBOM(t *testing.T) {
	words, err := ExtractColumn(strings.NewReader("\ufeffword,n\ntrie,1\n"), "word")
	require.NoError(t, err)
	assert.Equal(t, []string{"trie"}, words)
}

func TestExtractColumnErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		column string
		want   error
	}{
		{"missing column", wordsCSV, "frequency", ErrColumnNotFound},
		{"empty input", "", "word", ErrMalformed},
		{"short row", "rank,word\n1,car\n2\n", "word", ErrMalformed},
		{"bad quoting", "word\n\"car\n", "word", ErrMalformed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractColumn(strings.NewReader(tc.input), tc.column)
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

func TestReadWordList(t *testing.T) {
	words, err := ReadWordList(strings.NewReader("# english\ntrie\n\n  try \ntrying\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"trie", "try", "trying"}, words)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(wordsCSV), 0644))
	words, err := Load(csvPath, "word")
	require.NoError(t, err)
	assert.Len(t, words, 4)

	txtPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("alpha\nbeta\n"), 0644))
	words, err = Load(txtPath, "ignored")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, words)

	_, err = Load(csvPath, "nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	_, err = Load(filepath.Join(dir, "missing.csv"), "word")
	assert.Error(t, err)

	jsonPath := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte("[]"), 0644))
	_, err = Load(jsonPath, "word")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadRejectsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trie.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 16), 0644))

	_, err := Load(path, "word")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, size int) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, make([]byte, size), 0644))
		return p
	}

	testCases := []struct {
		path    string
		want    FileFormat
		wantErr bool
	}{
		{write("a.csv", 10), FormatCSV, false},
		{write("b.TXT", 10), FormatText, false},
		{write("c.bin", 32), FormatSnapshot, false},
		{write("d.msgpack", 32), FormatSnapshot, false},
		{write("e.db", 0), FormatRowStore, false},
		{write("f.bin", 2), FormatUnknown, true},
		{write("g.csv", 0), FormatUnknown, true},
		{write("h.xml", 10), FormatUnknown, true},
	}

	for _, tc := range testCases {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			got, err := DetectFileFormat(tc.path)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantErr, err != nil, "err = %v", err)
		})
	}
}

func TestListSupportedFormats(t *testing.T) {
	formats := ListSupportedFormats()
	require.Len(t, formats, 4)
	assert.Equal(t, FormatCSV, formats[0].Format)
	assert.Equal(t, FormatRowStore, formats[3].Format)
	assert.Equal(t, "Trie Snapshot", FormatSnapshot.String())
}

func TestVocabulary(t *testing.T) {
	v := VocabularyFrom([]string{"car", "card", "car", "", "cat", "trie"})

	assert.Equal(t, 4, v.Len())
	assert.True(t, v.Has("card"))
	assert.False(t, v.Has("ca"))
	assert.False(t, v.Has(""))

	assert.Equal(t, 3, v.CountPrefix("ca"))
	assert.Equal(t, 2, v.CountPrefix("car"))
	assert.Equal(t, 0, v.CountPrefix("x"))
	assert.Equal(t, 4, v.CountPrefix(""))

	assert.False(t, v.Add("trie"))
	assert.True(t, v.Add("try"))
	assert.Equal(t, 5, v.Len())
}
