// Package pipeline implements the TWiki to MoinMoin text conversion.
//
// Conversion is a fixed sequence of stages, each an ordered list of
// regular-expression rewrite rules:
//   - variables: %TOC%, %ATTACHURL%/file and friends
//   - meta: removal of %META:...% lines
//   - links: [[target][label]] links and WikiWords
//   - markup: emphasis, verbatim, lists, headings, rules
//   - tables: | cell | rows
//   - html: embedded tags and entities
//
// Stages and rules hold no state and every function here is pure, so a
// Pipeline may be shared by goroutines converting different pages.
// File access, encodings and attachments are handled by the callers.
package pipeline
