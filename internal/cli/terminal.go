package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/maps"
)

// terminal prints human-readable output for the CLI. Styles are bound to w,
// so output that is not a terminal stays plain.
type terminal struct {
	w         io.Writer
	wordStyle lipgloss.Style
	rankStyle lipgloss.Style
	keyStyle  lipgloss.Style
}

func newTerminal(w io.Writer) *terminal {
	r := lipgloss.NewRenderer(w)
	return &terminal{
		w: w,
		wordStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		rankStyle: r.NewStyle().Faint(true),
		keyStyle: r.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
	}
}

func (t *terminal) banner() {
	fmt.Fprintln(t.w, t.keyStyle.Render("wordtrie CLI [BETA]"))
	fmt.Fprintln(t.w, "type a word and press Enter to see the suggestions (Ctrl+D to exit)")
	fmt.Fprintln(t.w, "commands: :add <word>, :has <word>, :stats, :reset")
}

func (t *terminal) prompt() {
	fmt.Fprint(t.w, "> ")
}

func (t *terminal) suggestions(prefix string, words []string) {
	fmt.Fprintf(t.w, "Found %d suggestions for prefix '%s':\n", len(words), prefix)
	for i, w := range words {
		rank := t.rankStyle.Render(fmt.Sprintf("%2d.", i+1))
		fmt.Fprintf(t.w, "%s %s\n", rank, t.wordStyle.Render(utils.MatchCapitals(prefix, w)))
	}
}

func (t *terminal) status(key, value string) {
	fmt.Fprintf(t.w, "%s %s\n", t.keyStyle.Render(key), value)
}

func (t *terminal) stats(stats map[string]int) {
	keys := maps.Keys(stats)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(t.w, "%-10s %s\n", t.keyStyle.Render(k), utils.FormatWithCommas(stats[k]))
	}
}
