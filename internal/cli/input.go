// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// InputHandler runs one typing session over stdin: every line is the word
// being typed, and lines that extend the previous one resume its trie walk.
// Lines starting with ':' are commands, see handleCommand.
type InputHandler struct {
	completer       suggest.ICompleter
	memory          *trie.Memory
	out             *terminal
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, w io.Writer, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		memory:          completer.NewMemory(),
		out:             newTerminal(w),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start reads lines from r until it is closed. A clean end of input returns nil.
func (h *InputHandler) Start(r io.Reader) error {
	h.out.banner()
	reader := bufio.NewReader(r)

	for {
		h.out.prompt()
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if strings.HasPrefix(line, ":") {
				h.handleCommand(line[1:])
			} else {
				h.handleInput(line)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleInput completes prefix within the session and prints the results.
func (h *InputHandler) handleInput(prefix string) []string {
	h.requestCount++

	n := utf8.RuneCountInString(prefix)
	if n < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return nil
	}
	if n > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return nil
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter && !utils.IsValidInput(prefix) {
		log.Warnf("No results found for prefix: '%s' (filtered out)", prefix)
		return nil
	}

	start := time.Now()
	h.completer.UpdateWord(h.memory, prefix)
	resumed := h.memory.Resumable()
	words := h.completer.SuggestedWords(h.memory, h.suggestLimit)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s' (resumed: %v)", elapsed, prefix, resumed)

	if len(words) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return words
	}
	h.out.suggestions(prefix, words)
	return words
}

// handleCommand runs ":add <word>", ":has <word>", ":stats" or ":reset".
func (h *InputHandler) handleCommand(line string) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "add":
		if arg == "" {
			log.Error("usage: :add <word>")
			return
		}
		h.completer.AddWord(arg)
		h.out.status("added", arg)
	case "has":
		if arg == "" {
			log.Error("usage: :has <word>")
			return
		}
		if h.completer.Has(arg) {
			h.out.status("present", arg)
		} else {
			h.out.status("absent", arg)
		}
	case "stats":
		stats := h.completer.Stats()
		stats["requests"] = h.requestCount
		h.out.stats(stats)
	case "reset":
		h.completer.UpdateAndResetWord(h.memory, "")
		h.out.status("reset", "session")
	default:
		log.Errorf("Unknown command: %s", name)
	}
}
