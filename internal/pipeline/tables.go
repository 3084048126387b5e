package pipeline

import (
	"regexp"
	"strings"
)

// Tables converts TWiki table rows ("|a|b|") to MoinMoin rows ("||a||b||").
// Only lines that start with a pipe, after optional indentation, are rows.
var Tables = Stage{
	Name: "tables",
	Rules: []Rule{
		{
			Name:    "row",
			Pattern: regexp.MustCompile(`(?m)^[ \t]*\|.*$`),
			Func: func(groups []string, _ string) string {
				return convertRow(groups[0])
			},
		},
	},
}

// convertRow doubles every pipe of a row, including the label separator of
// a link resolved by the link stage.
func convertRow(row string) string {
	return strings.ReplaceAll(row, "|", "||")
}
