package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var words = []string{"car", "card", "cards", "cat", "trie", "try", "trying"}

func newHandler(out *bytes.Buffer, noFilter bool) *InputHandler {
	e := suggest.FromWords(words, suggest.DefaultOptions())
	return NewInputHandler(e, out, 1, 10, 5, noFilter)
}

func TestHandleInputSession(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out, false)

	require.Equal(t, []string{"trie", "try", "trying"}, h.handleInput("t"))
	assert.Equal(t, []string{"try", "trying"}, h.handleInput("try"))
	assert.Len(t, h.memory.NodeIDs(), 3, "cached path")
	assert.Equal(t, []string{"car", "card", "cards", "cat"}, h.handleInput("ca"))
	assert.Contains(t, out.String(), "Found 2 suggestions for prefix 'try'")
}

func TestHandleInputRejects(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out, false)

	for _, in := range []string{"abcdefghijk", "123", "a+b"} {
		assert.Nil(t, h.handleInput(in), "%q should be rejected", in)
	}

	h = newHandler(&out, true)
	got := h.handleInput("123")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStartCommands(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out, false)

	in := strings.NewReader("Tr\n:add tram\n:has TRAM\n:has tr\n:stats\n:reset\nTra")
	require.NoError(t, h.Start(in))

	got := out.String()
	for _, want := range []string{"Trie", "added tram", "present TRAM", "absent tr", "requests", "reset session", "Tram"} {
		assert.Contains(t, got, want)
	}
	assert.Equal(t, 2, h.requestCount)
}
