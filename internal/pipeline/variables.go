package pipeline

import "regexp"

// Variables replaces TWiki variables with their MoinMoin counterparts.
// A variable written as !%NAME% is escaped and kept as typed.
var Variables = Stage{
	Name: "variables",
	Rules: []Rule{
		variable("toc", `%TOC%`, "<<TableOfContents>>"),
		variable("info", `%I%`, "(!)"),
		variable("alert", `%X%`, `/!\`),
		variable("vbar", `%VBAR%`, "|"),
		variable("caret", `%CARET%`, "^"),
		variable("attachurl", `%ATTACHURL%/(\S+)`, "[[attachment:${1}]]"),
	},
}

func variable(name, pattern, replace string) Rule {
	return Rule{
		Name:      name,
		Pattern:   regexp.MustCompile(pattern),
		Replace:   replace,
		Escapable: true,
	}
}
