package pipeline

import (
	"regexp"
	"strings"
)

// escapeChar suppresses substitution of the token that immediately follows it.
const escapeChar = '!'

// Rule is a single rewrite: a pattern paired with either a replacement
// template (Replace, using $1 / ${1} expansion) or a replacement function.
//
// The optional predicates are evaluated per occurrence, so a page may mix
// rewritten and untouched occurrences of the same pattern.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp

	// Replace is the expansion template. Ignored when Func is set.
	Replace string

	// Func computes the replacement from the submatches (groups[0] is the
	// whole match) and the active prefix.
	Func func(groups []string, prefix string) string

	// Escapable leaves occurrences preceded by '!' untouched.
	Escapable bool

	// Protect leaves occurrences overlapping any match of this pattern untouched.
	Protect *regexp.Regexp

	// Accept, when set, must return true for the occurrence to be rewritten.
	Accept func(groups []string, prefix string) bool
}

// Apply rewrites every non-overlapping occurrence of the rule in text.
// Occurrences rejected by a predicate are copied through verbatim.
func (r Rule) Apply(text, prefix string) string {
	matches := r.Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var protected [][]int
	if r.Protect != nil {
		protected = r.Protect.FindAllStringIndex(text, -1)
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range matches {
		start, end := loc[0], loc[1]
		if r.skip(text, loc, protected, prefix) {
			continue
		}
		b.WriteString(text[last:start])
		if r.Func != nil {
			b.WriteString(r.Func(submatches(text, loc), prefix))
		} else {
			b.Write(r.Pattern.ExpandString(nil, r.Replace, text, loc))
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func (r Rule) skip(text string, loc []int, protected [][]int, prefix string) bool {
	start, end := loc[0], loc[1]
	if r.Escapable && start > 0 && text[start-1] == escapeChar {
		return true
	}
	for _, span := range protected {
		if start < span[1] && span[0] < end {
			return true
		}
	}
	if r.Accept != nil && !r.Accept(submatches(text, loc), prefix) {
		return true
	}
	return false
}

// submatches converts an index slice into the matched strings.
// Groups that did not participate are returned as "".
func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return groups
}

// Stage is a named, ordered list of rules applied one after another.
type Stage struct {
	Name  string
	Rules []Rule
}

// Apply runs every rule of the stage in declaration order.
func (s Stage) Apply(text, prefix string) string {
	for _, r := range s.Rules {
		text = r.Apply(text, prefix)
	}
	return text
}

// Rule returns the named rule of the stage, for testing rules in isolation.
func (s Stage) Rule(name string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}
