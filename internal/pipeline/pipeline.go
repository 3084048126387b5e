package pipeline

import "regexp"

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Pipeline applies its stages in order, threading the text through each.
type Pipeline struct {
	stages []Stage
}

// New returns a pipeline running the given stages in order.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Default returns the TWiki to MoinMoin pipeline.
//
// The stage order is part of the contract: metadata is stripped before any
// other rule can misfire on it, and links are resolved before inline markup
// and table rows so a link label is never read as markup and never turns a
// line into a table row.
func Default() *Pipeline {
	return New(Variables, Meta, Links, Markup, Tables, HTML)
}

// Stages returns the stages in execution order.
func (p *Pipeline) Stages() []Stage {
	stages := make([]Stage, len(p.stages))
	copy(stages, p.stages)
	return stages
}

// Run converts text. The prefix qualifies topic links ("Main" turns
// [[WebHome]] into [[Main/WebHome]]); pass "" for none.
func (p *Pipeline) Run(text, prefix string) string {
	return p.Trace(text, prefix, nil)
}

// Trace is Run with a callback receiving each stage's output.
// A nil callback is allowed.
func (p *Pipeline) Trace(text, prefix string, observe func(stage, text string)) string {
	for _, s := range p.stages {
		text = s.Apply(text, prefix)
		if observe != nil {
			observe(s.Name, text)
		}
	}
	return text
}

// NormalizeLineEndings converts \r\n and \r to \n.
// The rules are line-based and expect \n terminated lines.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
