package twiki

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// TopicExt is the extension of TWiki topic files.
const TopicExt = ".txt"

// ErrNotDirectory is returned when a source root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Escape tokens MoinMoin uses for characters not allowed in page directories.
const (
	moinSlash = "(2f)"
	moinDash  = "(2d)"
	moinSpace = "(20)"
)

var topicEscaper = strings.NewReplacer("/", moinSlash, "-", moinDash, " ", moinSpace)

// Page is a TWiki topic file found by Discover.
type Page struct {
	// Path is the topic file.
	Path string

	// Name is the TWiki topic name, the file name without TopicExt.
	Name string

	// Prefix is the web path of the topic, "" at the root.
	Prefix string

	// Topic is the MoinMoin page directory name.
	Topic string

	// AttachmentDir holds the topic's attachments. Empty when no
	// attachment root was given.
	AttachmentDir string
}

// Discover walks pagesDir and returns every topic file in lexical order.
//
// Each sub-directory is a web: its name extends the prefix of the topics
// inside it and selects the matching sub-directory of attachmentsDir.
// rootPrefix is prepended to every prefix; attachmentsDir may be "".
func Discover(ctx context.Context, pagesDir, attachmentsDir, rootPrefix string) ([]Page, error) {
	info, err := os.Stat(pagesDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, pagesDir)
	}

	var pages []Page
	err = filepath.WalkDir(pagesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p != pagesDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) != TopicExt || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(pagesDir, filepath.Dir(p))
		if err != nil {
			return err
		}
		web := ""
		if rel != "." {
			web = filepath.ToSlash(rel)
		}

		name := strings.TrimSuffix(d.Name(), TopicExt)
		prefix := joinPrefix(rootPrefix, web)
		page := Page{
			Path:   p,
			Name:   name,
			Prefix: prefix,
			Topic:  TopicName(prefix, name),
		}
		if attachmentsDir != "" {
			page.AttachmentDir = filepath.Join(attachmentsDir, filepath.FromSlash(web), name)
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// TopicName returns the MoinMoin page directory name of a topic.
// "Main/Sub" and "My-Topic" give "Main(2f)Sub(2f)My(2d)Topic".
func TopicName(prefix, name string) string {
	return topicEscaper.Replace(joinPrefix(prefix, name))
}

func joinPrefix(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	}
	return path.Join(prefix, name)
}
