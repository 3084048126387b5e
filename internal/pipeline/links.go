package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Link separators.
const (
	twikiLabelSep = "]["
	moinLabelSep  = "|"
)

// linkSpan matches an explicit [[...]] link on a single line.
var linkSpan = regexp.MustCompile(`\[\[(.*?)\]\]`)

// externalSchemes are link targets passed through without topic normalization.
var externalSchemes = []string{"http:", "https:", "file:", "attachment:"}

// Links rewrites explicit and implicit TWiki links to MoinMoin syntax.
var Links = Stage{
	Name: "links",
	Rules: []Rule{
		{
			Name:    "bare-attachment",
			Pattern: regexp.MustCompile(`(^|\s)(attachment:[^\s\[\]|]+)`),
			Replace: "${1}[[${2}]]",
			Protect: linkSpan,
		},
		{
			Name:    "bracketed",
			Pattern: linkSpan,
			Func: func(groups []string, prefix string) string {
				return "[[" + ConvertLink(groups[1], prefix) + "]]"
			},
		},
		{
			Name:    "wikiword",
			Pattern: regexp.MustCompile(`(\s)([A-Z]\w+[A-Z]+\w+)`),
			Func: func(groups []string, prefix string) string {
				return groups[1] + prefix + "/" + groups[2]
			},
			Protect: linkSpan,
			Accept: func(groups []string, prefix string) bool {
				return prefix != "" && hasLower(groups[2])
			},
		},
	},
}

// ConvertLink converts the inside of a TWiki [[...]] link to the inside of
// a MoinMoin link. TWiki builds a topic name by capitalizing the first
// letter and dropping spaces at render time; the same is done here at
// conversion time so the Moin link points at the converted topic.
func ConvertLink(link, prefix string) string {
	link = strings.ReplaceAll(link, twikiLabelSep, moinLabelSep)
	if !strings.Contains(link, moinLabelSep) {
		if strings.IndexFunc(strings.TrimSpace(link), unicode.IsSpace) >= 0 {
			link = link + moinLabelSep + link
		}
	}

	target, label, hasLabel := strings.Cut(link, moinLabelSep)
	target = strings.Join(strings.Fields(target), "")
	if target != "" && !isExternal(target) {
		target = capitalize(target)
		target = strings.ReplaceAll(target, ".", "/")
		if prefix != "" {
			target = prefix + "/" + target
		}
	}

	if !hasLabel {
		return target
	}
	return target + moinLabelSep + label
}

func isExternal(target string) bool {
	for _, scheme := range externalSchemes {
		if strings.HasPrefix(target, scheme) {
			return true
		}
	}
	return false
}

// capitalize upper-cases the first rune and leaves the rest unchanged.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func hasLower(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}
