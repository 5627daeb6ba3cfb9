package parser

import (
	"strings"
	"unicode"
)

// ══════════════════════════════════════════════════════════════════════════════
// ARGUMENT TOKENIZER
// Splits a raw argument string into a preamble and prefix-tagged values.
// A prefix only matches where a whitespace-delimited token starts, so
// slashes inside values ("s/Math:exam=45.5/60") never open a new field.
// ══════════════════════════════════════════════════════════════════════════════

// Prefix marks a tagged argument, for example "n/" in "add n/John Doe".
type Prefix string

// The prefix vocabulary of the console commands.
const (
	PrefixName       Prefix = "n/"
	PrefixPhone      Prefix = "p/"
	PrefixEmail      Prefix = "e/"
	PrefixAddress    Prefix = "a/"
	PrefixClass      Prefix = "c/"
	PrefixTag        Prefix = "t/"
	PrefixAttendance Prefix = "att/"
	PrefixRemark     Prefix = "rem/"
	PrefixSubject    Prefix = "s/"
)

// String returns the literal prefix text.
func (p Prefix) String() string {
	return string(p)
}

// ArgumentMap holds the result of tokenizing an argument string: the text
// before the first prefix, and the values of every prefix occurrence in
// input order.
type ArgumentMap struct {
	preamble string
	values   map[Prefix][]string
}

// prefixHit records one prefix occurrence found during the scan.
type prefixHit struct {
	prefix Prefix
	start  int
}

// TokenizeArguments splits args into a preamble and prefix values. Only the
// given prefixes are recognized; anything else stays part of the surrounding
// value. Values are trimmed of surrounding whitespace.
func TokenizeArguments(args string, prefixes ...Prefix) ArgumentMap {
	hits := findPrefixHits(args, prefixes)

	m := ArgumentMap{values: make(map[Prefix][]string, len(hits))}
	if len(hits) == 0 {
		m.preamble = strings.TrimSpace(args)
		return m
	}

	m.preamble = strings.TrimSpace(args[:hits[0].start])
	for i, hit := range hits {
		end := len(args)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		value := args[hit.start+len(hit.prefix) : end]
		m.values[hit.prefix] = append(m.values[hit.prefix], strings.TrimSpace(value))
	}
	return m
}

// findPrefixHits scans args for prefix occurrences at token starts. When
// several prefixes match the same position the longest one wins.
func findPrefixHits(args string, prefixes []Prefix) []prefixHit {
	var hits []prefixHit
	atTokenStart := true
	for i, r := range args {
		if atTokenStart {
			var best Prefix
			for _, p := range prefixes {
				if len(p) > len(best) && strings.HasPrefix(args[i:], string(p)) {
					best = p
				}
			}
			if best != "" {
				hits = append(hits, prefixHit{prefix: best, start: i})
			}
		}
		atTokenStart = unicode.IsSpace(r)
	}
	return hits
}

// Preamble returns the trimmed text before the first prefix.
func (m ArgumentMap) Preamble() string {
	return m.preamble
}

// Value returns the last value given for the prefix.
func (m ArgumentMap) Value(p Prefix) (string, bool) {
	vs := m.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// AllValues returns every value given for the prefix, in input order.
func (m ArgumentMap) AllValues(p Prefix) []string {
	vs := m.values[p]
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// Has reports whether the prefix occurs at least once.
func (m ArgumentMap) Has(p Prefix) bool {
	return len(m.values[p]) > 0
}

// HasAll reports whether every given prefix occurs at least once.
func (m ArgumentMap) HasAll(prefixes ...Prefix) bool {
	for _, p := range prefixes {
		if !m.Has(p) {
			return false
		}
	}
	return true
}

// Duplicated returns the given prefixes that occur more than once, in the
// order given. Used to reject repeated single-valued fields.
func (m ArgumentMap) Duplicated(prefixes ...Prefix) []Prefix {
	var dup []Prefix
	for _, p := range prefixes {
		if len(m.values[p]) > 1 {
			dup = append(dup, p)
		}
	}
	return dup
}
