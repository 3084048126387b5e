package pipeline

import "regexp"

// Meta removes machine-generated %META:...% lines. The line terminator is
// kept, so a stripped page has the same number of lines as its source.
var Meta = Stage{
	Name: "meta",
	Rules: []Rule{
		{
			Name:    "meta",
			Pattern: regexp.MustCompile(`(?m)^%META:.*%`),
		},
	},
}
