package render

import (
	"fmt"
	"strings"
)

// AlphabetSize is the number of glyphs each column picks from.
const AlphabetSize = 96

// Alphabet is the glyph set drawn by the rain.
type Alphabet struct {
	Name  string
	Runes []rune
}

// RuneRange returns n consecutive code points starting at first.
func RuneRange(first rune, n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = first + rune(i)
	}
	return out
}

var (
	// Katakana is U+30A0..U+30FF.
	Katakana = Alphabet{Name: "katakana", Runes: RuneRange(0x30A0, AlphabetSize)}

	// Latin is printable ASCII plus two Latin-1 signs, for faces without kana.
	Latin = Alphabet{Name: "latin", Runes: append(RuneRange('!', 94), '£', '¥')}
)

var alphabets = []Alphabet{Katakana, Latin}

// ParseAlphabet returns an alphabet by name.
func ParseAlphabet(name string) (Alphabet, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, a := range alphabets {
		if a.Name == n {
			return a, nil
		}
	}
	return Katakana, fmt.Errorf("unknown alphabet %q", name)
}

// AlphabetNames lists the built-in alphabets.
func AlphabetNames() []string {
	names := make([]string, len(alphabets))
	for i, a := range alphabets {
		names[i] = a.Name
	}
	return names
}
