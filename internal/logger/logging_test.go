package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(&buf, "trie", log.InfoLevel, false, false, log.TextFormatter)

	l.Debug("hidden")
	l.Info("loaded", "words", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden", "debug line written at info level")
	assert.Contains(t, out, "trie")
	assert.Contains(t, out, "words=7")
}

func TestSetup(t *testing.T) {
	prev := log.Default()
	defer log.SetDefault(prev)

	Setup(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	Setup(false)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}
