package khipu

import (
	"strings"

	"github.com/derekparker/trie"
)

// Hyphenator finds hyphenation points inside a word using Liang's
// pattern-matching algorithm (the same algorithm TeX uses), with patterns
// indexed in a prefix trie for fast substring lookup.
//
// This supplements the distilled spec: the teacher delegates hyphenation
// to a core/locate.Dictionary lookup that isn't part of this fetch pack,
// so the pattern trie is grounded on the pack's derekparker/trie instead
// and applies Liang's patterns directly (patterns are supplied through
// AddPattern, not generated).
type Hyphenator struct {
	patterns  *trie.Trie
	minLength int
}

// NewHyphenator returns a Hyphenator that only attempts to split words of
// at least minLength runes.
func NewHyphenator(minLength int) *Hyphenator {
	return &Hyphenator{patterns: trie.New(), minLength: minLength}
}

// AddPattern registers a single Liang hyphenation pattern, e.g. "hy3phen"
// where digits between letters give the weight of a potential break at
// that point (odd = break allowed, even = break suppressed).
func (h *Hyphenator) AddPattern(pattern string) {
	h.patterns.Add(stripWeights(pattern), pattern)
}

// AddPatterns registers every pattern in patterns.
func (h *Hyphenator) AddPatterns(patterns []string) {
	for _, p := range patterns {
		h.AddPattern(p)
	}
}

// Hyphenate splits word at its legal hyphenation points, returning the
// syllables. The second return value is false if word is too short or no
// pattern fired, in which case the single-element slice []string{word} is
// returned.
func (h *Hyphenator) Hyphenate(word string) ([]string, bool) {
	if h == nil || len([]rune(word)) < h.minLength {
		return []string{word}, false
	}
	lower := "." + strings.ToLower(word) + "."
	runes := []rune(lower)
	weights := make([]int, len(runes)+1)
	for i := range runes {
		for j := i + 1; j <= len(runes); j++ {
			sub := string(runes[i:j])
			node, ok := h.patterns.Find(sub)
			if !ok {
				continue
			}
			pattern, ok := node.Meta().(string)
			if !ok {
				continue
			}
			applyPattern(pattern, weights, i)
		}
	}
	var syllables []string
	var cur strings.Builder
	// weights index 0 is before the leading '.'; actual word runs [1,len-1)
	for pos := 1; pos < len(runes)-1; pos++ {
		cur.WriteRune(runes[pos])
		w := weights[pos+1]
		if w%2 == 1 && pos < len(runes)-2 {
			syllables = append(syllables, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		syllables = append(syllables, cur.String())
	}
	if len(syllables) < 2 {
		return []string{word}, false
	}
	return syllables, true
}

// applyPattern merges a Liang pattern's digit weights into weights,
// starting at the position where the pattern's (stripped) letters began
// matching the subject at offset start.
func applyPattern(pattern string, weights []int, start int) {
	pos := start
	digit := 0
	for _, r := range pattern {
		if r >= '0' && r <= '9' {
			digit = int(r - '0')
			continue
		}
		if digit > weights[pos] {
			weights[pos] = digit
		}
		digit = 0
		pos++
	}
	if digit > weights[pos] {
		weights[pos] = digit
	}
}

// stripWeights removes the digit weights from a Liang pattern, leaving
// only the letters used as the trie key.
func stripWeights(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		if r < '0' || r > '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
