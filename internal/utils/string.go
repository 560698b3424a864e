package utils

import (
	"strconv"
	"unicode"
)

// MatchCapitals copies the upper-case runes of typed onto word at the same
// positions, so a suggestion for "Tr" reads "Trie" rather than "trie".
// Positions past the end of word are ignored.
func MatchCapitals(typed, word string) string {
	var positions []int
	i := 0
	for _, r := range typed {
		if unicode.IsUpper(r) {
			positions = append(positions, i)
		}
		i++
	}
	if len(positions) == 0 {
		return word
	}

	runes := []rune(word)
	for _, pos := range positions {
		if pos < len(runes) {
			runes[pos] = unicode.ToUpper(runes[pos])
		}
	}
	return string(runes)
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := strconv.Itoa(n)
	if n < 1000 {
		return str
	}

	out := make([]byte, 0, len(str)+len(str)/3)
	for i := 0; i < len(str); i++ {
		if i > 0 && (len(str)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, str[i])
	}
	return string(out)
}
