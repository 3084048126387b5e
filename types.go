package twiki2moin

import "github.com/lhrc-mikeyp/TWiki-To-Moin/internal/twiki"

// Source encodings accepted by WithEncoding.
const (
	EncodingLatin1 = twiki.EncodingLatin1
	EncodingUTF8   = twiki.EncodingUTF8
	EncodingAuto   = twiki.EncodingAuto
)

// Input is a TWiki page to convert.
type Input struct {
	Source []byte // raw page file content (required, may be empty)
	Prefix string // web path qualifying links, "" for none
	Topic  string // topic name passed to the trace function (optional)
}

// Result is a converted page.
type Result struct {
	// Text is the MoinMoin page text.
	Text string

	// Attachments lists the file names from the page's
	// %META:FILEATTACHMENT% lines.
	Attachments []string

	// Encoding is the encoding Source was decoded with.
	Encoding string
}

// TraceFunc receives the text after each pipeline stage.
type TraceFunc func(topic, stage, text string)

// Option configures a Converter.
type Option func(*Converter)

// WithEncoding sets the source encoding: EncodingLatin1 (default),
// EncodingUTF8 or EncodingAuto. NewConverter rejects unknown names.
func WithEncoding(name string) Option {
	return func(c *Converter) {
		c.encoding = name
	}
}

// WithTrace registers a function called with the output of every stage.
func WithTrace(fn TraceFunc) Option {
	return func(c *Converter) {
		c.trace = fn
	}
}
