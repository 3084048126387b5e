package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// Markup converts TWiki inline and block markup: emphasis, fixed width,
// verbatim blocks, definition and numbered lists, headings and rules.
//
// Order matters. Rules run over mixed TWiki/Moin text, so a rule may see
// the output of an earlier one:
//   - single-line verbatim rules reject newlines so they never shadow the
//     multi-line block rules that follow them;
//   - heading sigils are tried from the longest to the shortest;
//   - the dash rule runs last so it cannot eat unconverted headings.
var Markup = Stage{
	Name:  "markup",
	Rules: markupRules(),
}

func markupRules() []Rule {
	rules := []Rule{
		pattern("bold", `\*([^*].*?[^*])\*`, "'''${1}'''"),
		pattern("italic", `_([^_].*?[^_])_\b`, "''${1}''"),
		// Only the leading boundary is checked, as TWiki does.
		pattern("bold-italic", `\b__([^_].*?[^_])__`, "''''${1}''''"),

		pattern("fixed", `\B=\b([^*\n]*?)=\B`, "`${1}`"),
		pattern("verbatim", `\B<verbatim>\b([^*\n]*?)</verbatim>\B`, "`${1}`"),
		pattern("verbatim-block", `\B<verbatim>\b([^*]*?)</verbatim>\B`, "{{{\n${1}}}}\n"),
		pattern("literal", `\B<literal>\b([^*\n]*?)</literal>\B`, "`${1}`"),
		pattern("literal-block", `\B<literal>\b([^*]*?)</literal>\B`, "{{{\n${1}}}}\n"),

		pattern("definition", `(?m)^   \$ (.+?): (.*)$`, "${1}:: ${2}"),
		pattern("numbered", `(?m)^((?:   )+)[0-9] `, "${1}1. "),
	}
	rules = append(rules, headingRules()...)
	return append(rules,
		pattern("rule-html", `(?m)^[ \t]*<hr ?/?>[ \t]*$`, "----"),
		pattern("rule", `(?m)^-?---.*$`, "----"),
	)
}

// headingRules builds the heading rules, deepest level first: the level-6
// sigil "---++++++" also starts with every shallower sigil.
func headingRules() []Rule {
	rules := make([]Rule, 0, 7)
	for level := 6; level >= 1; level-- {
		rules = append(rules, heading(fmt.Sprintf("heading-%d", level), "---"+strings.Repeat("+", level), level))
	}
	return append(rules, heading("heading-numbered", "---#", 1))
}

func heading(name, sigil string, level int) Rule {
	marker := strings.Repeat("=", level)
	return pattern(name,
		`(?m)^-?`+regexp.QuoteMeta(sigil)+`[ \t]*(.*?)[ \t]*$`,
		marker+" ${1} "+marker,
	)
}

func pattern(name, expr, replace string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(expr),
		Replace: replace,
	}
}
