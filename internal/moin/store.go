// Package moin writes pages and attachments in the MoinMoin 1.x on-disk
// layout:
//
//	<root>/<topic>/current              "00000001"
//	<root>/<topic>/revisions/00000001   page text
//	<root>/<topic>/attachments/<file>
package moin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/fileutil"
)

// FirstRevision is the revision every converted page is written as.
const FirstRevision = "00000001"

// Layout names inside a page directory.
const (
	currentFile    = "current"
	revisionsDir   = "revisions"
	attachmentsDir = "attachments"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrInvalidTopic is returned for a topic name that is not a single path element.
var ErrInvalidTopic = errors.New("invalid topic name")

// Store is a MoinMoin page directory.
type Store struct {
	root string
}

// NewStore returns a Store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the page directory.
func (s *Store) Root() string {
	return s.root
}

// PageDir returns the directory of a topic.
func (s *Store) PageDir(topic string) string {
	return filepath.Join(s.root, topic)
}

// WritePage writes text as the first revision of topic and points the
// current revision file at it. Existing directories are reused, so a run
// can be repeated over the same target.
func (s *Store) WritePage(topic, text string) error {
	if err := validateTopic(topic); err != nil {
		return err
	}

	page := s.PageDir(topic)
	if err := os.MkdirAll(filepath.Join(page, revisionsDir), dirPerm); err != nil {
		return fmt.Errorf("creating page %s: %w", topic, err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(page, revisionsDir, FirstRevision), []byte(text), filePerm); err != nil {
		return fmt.Errorf("writing revision of %s: %w", topic, err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(page, currentFile), []byte(FirstRevision), filePerm); err != nil {
		return fmt.Errorf("writing current revision of %s: %w", topic, err)
	}
	return nil
}

// AttachmentError reports an attachment that could not be copied.
type AttachmentError struct {
	Name string
	Err  error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("attachment %s: %v", e.Name, e.Err)
}

func (e *AttachmentError) Unwrap() error {
	return e.Err
}

// CopyAttachments copies the named files from srcDir into the attachment
// directory of topic. A file that cannot be copied does not stop the
// others; it is returned as an *AttachmentError in the failed list.
// The returned error is set only when the attachment directory itself
// cannot be created.
func (s *Store) CopyAttachments(topic, srcDir string, names []string) (copied []string, failed []*AttachmentError, err error) {
	if len(names) == 0 {
		return nil, nil, nil
	}
	if err := validateTopic(topic); err != nil {
		return nil, nil, err
	}

	dst := filepath.Join(s.PageDir(topic), attachmentsDir)
	if err := os.MkdirAll(dst, dirPerm); err != nil {
		return nil, nil, fmt.Errorf("creating attachment dir of %s: %w", topic, err)
	}

	for _, name := range names {
		if err := fileutil.CopyFile(filepath.Join(srcDir, name), filepath.Join(dst, name)); err != nil {
			failed = append(failed, &AttachmentError{Name: name, Err: err})
			continue
		}
		copied = append(copied, name)
	}
	return copied, failed, nil
}

func validateTopic(topic string) error {
	if topic == "" || topic == "." || topic == ".." || filepath.Base(topic) != topic {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}
	return nil
}
