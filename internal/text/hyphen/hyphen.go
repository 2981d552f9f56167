// Package hyphen implements a Liang-pattern hyphenation matcher (spec
// component C, "hyphenation"), the algorithm TeX and every FO/CSS
// implementation derived from it use: a trie of digit-annotated
// substrings ("patterns") is matched against every substring of a
// padded word, priorities are max-merged position-by-position, and odd
// values mark a legal break point. Words are NFC-normalized with
// golang.org/x/text/unicode/norm before matching; splitting text into
// words is left to the caller.
package hyphen

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/xsllayout/xsl-layout/internal/diag"
)

// Engine implements the HyphenationEngine external collaborator
// interface named in spec §6 (consumed, not built, in principle — but
// the spec leaves its implementation to the host, and the pack offers
// no third-party Liang-pattern library, so this is a from-scratch
// implementation following TeX's algorithm).
type Engine interface {
	// Hyphenate returns the legal break points within word, as byte
	// offsets into word, excluding the very start and end.
	Hyphenate(word string) []int
}

// patternTrie holds a set of hyphenation patterns such as "hy3phen" (a
// digit at position i gives the priority of a break between the
// characters on either side of it, 0 = no opinion).
type patternTrie struct {
	patterns map[string][]int // pattern text (letters only) -> priorities, len = len(text)+1
	minLeft  int
	minRight int
}

// New builds an Engine from a raw pattern list in Liang's `.pat`
// notation (e.g. "1hy3ph4en1", "h1yph"), plus the minimum number of
// characters required before/after a break (TeX's \lefthyphenmin /
// \righthyphenmin, typically 2/3).
func New(rawPatterns []string, minLeft, minRight int, sink *diag.Sink) Engine {
	e := &patternTrieEngine{
		trie: patternTrie{patterns: map[string][]int{}, minLeft: minLeft, minRight: minRight},
	}
	for _, raw := range rawPatterns {
		text, priorities, ok := parsePattern(raw)
		if !ok {
			if sink != nil {
				sink.Warn("unparseable hyphenation pattern", map[string]string{"pattern": raw})
			}
			continue
		}
		e.trie.patterns[text] = priorities
	}
	return e
}

type patternTrieEngine struct {
	trie patternTrie
}

// parsePattern splits a pattern like "hy3phen1a" into its letters
// ("hyphena") and the digit-priority sequence between each letter
// (including before the first and after the last), per Liang's format.
func parsePattern(raw string) (string, []int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil, false
	}
	var letters strings.Builder
	priorities := []int{0}
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			priorities[len(priorities)-1] = int(r - '0')
			continue
		}
		letters.WriteRune(r)
		priorities = append(priorities, 0)
	}
	return letters.String(), priorities, letters.Len() > 0
}

// Hyphenate implements Engine.
func (e *patternTrieEngine) Hyphenate(word string) []int {
	word = norm.NFC.String(word)
	if len(word) < e.trie.minLeft+e.trie.minRight {
		return nil
	}
	padded := "." + strings.ToLower(word) + "."
	n := len(padded)
	scores := make([]int, n+1)

	for start := 0; start < n; start++ {
		for end := start + 1; end <= n; end++ {
			sub := padded[start:end]
			if pr, ok := e.trie.patterns[sub]; ok {
				for i, p := range pr {
					pos := start + i
					if pos < len(scores) && p > scores[pos] {
						scores[pos] = p
					}
				}
			}
		}
	}

	var breaks []int
	// scores index i corresponds to the gap before padded[i]; padded has
	// a leading '.', so a break before padded[i] is a break after the
	// (i-1)th letter of word, i.e. byte offset (i-1) into word.
	for i := e.trie.minLeft + 1; i <= len(word)-e.trie.minRight; i++ {
		if i < 0 || i >= len(scores) {
			continue
		}
		if scores[i]%2 == 1 {
			breaks = append(breaks, i-1)
		}
	}
	return breaks
}
