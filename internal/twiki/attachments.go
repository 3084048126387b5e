package twiki

import (
	"path/filepath"
	"regexp"
)

// fileAttachment matches the attachment attribute of a FILEATTACHMENT
// meta line: %META:FILEATTACHMENT{name="a.png" attachment="a.png" ...}%
var fileAttachment = regexp.MustCompile(`(?m)^%META:FILEATTACHMENT\{.*?\battachment="([^"]*)"[\s}]`)

// Attachments returns the file names listed in the FILEATTACHMENT meta
// lines of a page, in page order and without duplicates. Names that are
// not plain file names, such as "../x" or "a/b", are dropped.
func Attachments(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range fileAttachment.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if !isPlainFileName(name) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func isPlainFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && filepath.ToSlash(name) == name
}
