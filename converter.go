package twiki2moin

import (
	"context"
	"fmt"

	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/pipeline"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/twiki"
)

// defaultPipeline is shared: stages hold no state.
var defaultPipeline = pipeline.Default()

// Convert converts TWiki markup to MoinMoin markup.
//
// prefix is the web path of the page ("Main", "Main/Sub") and qualifies
// topic links and WikiWords; pass "" for none. Convert never fails: text
// the rules do not recognize is returned unchanged.
func Convert(text, prefix string) string {
	return defaultPipeline.Run(text, prefix)
}

// Converter converts raw TWiki page files.
// Create with NewConverter. A Converter is safe for concurrent use.
type Converter struct {
	encoding string
	trace    TraceFunc
	pipeline *pipeline.Pipeline
}

// NewConverter creates a Converter decoding pages as Latin-1 unless
// WithEncoding says otherwise.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		encoding: twiki.DefaultEncoding,
		pipeline: defaultPipeline,
	}

	for _, opt := range opts {
		opt(c)
	}

	enc, err := twiki.ParseEncoding(c.encoding)
	if err != nil {
		return nil, err
	}
	c.encoding = enc

	return c, nil
}

// Encoding returns the canonical source encoding name.
func (c *Converter) Encoding() string {
	return c.encoding
}

// Convert decodes input.Source, normalizes its line endings, converts it
// and lists the attachments named in its metadata.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	text, used, err := twiki.Decode(input.Source, c.encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	text = pipeline.NormalizeLineEndings(text)

	var observe func(stage, text string)
	if c.trace != nil {
		observe = func(stage, out string) {
			c.trace(input.Topic, stage, out)
		}
	}

	return &Result{
		Text:        c.pipeline.Trace(text, input.Prefix, observe),
		Attachments: twiki.Attachments(text),
		Encoding:    used,
	}, nil
}
