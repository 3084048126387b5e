package pipeline

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDefault - Stage order
// ---------------------------------------------------------------------------

func TestDefault_StageOrder(t *testing.T) {
	t.Parallel()

	want := []string{"variables", "meta", "links", "markup", "tables", "html"}

	stages := Default().Stages()
	if len(stages) != len(want) {
		t.Fatalf("Default() has %d stages, want %d", len(stages), len(want))
	}
	for i, s := range stages {
		if s.Name != want[i] {
			t.Errorf("stage %d = %q, want %q", i, s.Name, want[i])
		}
	}
}

func TestStages_ReturnsCopy(t *testing.T) {
	t.Parallel()

	p := Default()
	stages := p.Stages()
	stages[0] = Stage{Name: "replaced"}

	if got := p.Stages()[0].Name; got != "variables" {
		t.Errorf("Stages()[0].Name = %q after caller mutation, want %q", got, "variables")
	}
}

// ---------------------------------------------------------------------------
// TestRun - End to end conversions
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		prefix string
		want   string
	}{
		{name: "toc", input: "%TOC%", want: "<<TableOfContents>>"},
		{name: "escaped toc", input: "!%TOC%", want: "!%TOC%"},
		{name: "link with spaces", input: "[[Simple Link]]", want: "[[SimpleLink|Simple Link]]"},
		{name: "lowercase link", input: "[[simplelink]]", want: "[[Simplelink]]"},
		{name: "heading level 2", input: "---++ Heading", want: "== Heading =="},
		{name: "heading level 1", input: "---+ Heading", want: "= Heading ="},
		{
			name:  "verbatim block",
			input: "<verbatim>something\na second line\n</verbatim>",
			want:  "{{{\nsomething\na second line\n}}}\n",
		},
		{name: "table row", input: "|a|b|", want: "||a||b||"},
		{name: "not a table row", input: "something |a|b|", want: "something |a|b|"},
		{name: "attachurl becomes link", input: "%ATTACHURL%/a.png", prefix: "Main", want: "[[attachment:a.png]]"},
		{name: "empty", input: "", want: ""},
	}

	p := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.Run(tt.input, tt.prefix)
			if got != tt.want {
				t.Errorf("Run(%q, %q) = %q, want %q", tt.input, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestRun_PlainTextUnchanged(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Just a sentence.",
		"Two lines\nof ordinary prose, with commas; and semicolons.\n",
		"   * a bullet item\n   * another one\n",
		"numbers 1 2 3 and symbols # @ ~",
	}

	p := Default()
	for _, in := range inputs {
		for _, prefix := range []string{"", "Main"} {
			if got := p.Run(in, prefix); got != in {
				t.Errorf("Run(%q, %q) = %q, want input unchanged", in, prefix, got)
			}
		}
	}
}

// The label of a resolved link holds a "|". It never turns a plain line into
// a table row, and inside a row it is doubled like every other pipe.
func TestRun_LinkPipeInRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "label pipe doubled in row", input: "|[[WebHome][Home page]]|x|", want: "||[[WebHome||Home page]]||x||"},
		{name: "spaced label in row", input: "|[[Foo][a b]]|c|", want: "||[[Foo||a b]]||c||"},
		{name: "label pipe does not start a row", input: "[[WebHome][Home]] |x|", want: "[[WebHome|Home]] |x|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Default().Run(tt.input, ""); got != tt.want {
				t.Errorf("Run(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRun_MetaStrippedBeforeLinks(t *testing.T) {
	t.Parallel()

	in := `%META:FILEATTACHMENT{name="a.png" attachment="a.png" attr=""}%` + "\ntext\n"
	got := Default().Run(in, "")
	if got != "\ntext\n" {
		t.Errorf("Run() = %q, want %q", got, "\ntext\n")
	}
}

func TestRun_Page(t *testing.T) {
	t.Parallel()

	in := `%META:TOPICINFO{author="JohnDoe" date="1234"}%
---+ Project Notes
%TOC%
See [[Web.Topic][the topic]] and WebHome.
   * read =README= now
|*Name*|*Value*|
|[[Foo][Bar]]|1|
%META:FILEATTACHMENT{name="a.png" attachment="a.png" attr=""}%
`
	want := `
= Project Notes =
<<TableOfContents>>
See [[Main/Web/Topic|the topic]] and Main/WebHome.
   * read ` + "`README`" + ` now
||'''Name'''||'''Value'''||
||[[Main/Foo||Bar]]||1||

`

	got := Default().Run(in, "Main")
	if got != want {
		t.Errorf("Run() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	if strings.Count(got, "\n") != strings.Count(in, "\n") {
		t.Errorf("Run() changed line count: got %d, want %d", strings.Count(got, "\n"), strings.Count(in, "\n"))
	}
}

func TestRun_Concurrent(t *testing.T) {
	t.Parallel()

	p := Default()
	want := p.Run("[[Simple Link]] *bold*", "Main")

	done := make(chan string, 8)
	for range 8 {
		go func() {
			done <- p.Run("[[Simple Link]] *bold*", "Main")
		}()
	}
	for range 8 {
		if got := <-done; got != want {
			t.Errorf("concurrent Run() = %q, want %q", got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestTrace
// ---------------------------------------------------------------------------

func TestTrace(t *testing.T) {
	t.Parallel()

	var stages []string
	var outputs []string
	got := Default().Trace("%TOC%\n|a|", "", func(stage, text string) {
		stages = append(stages, stage)
		outputs = append(outputs, text)
	})

	if len(stages) != 6 {
		t.Fatalf("Trace() observed %d stages, want 6", len(stages))
	}
	if outputs[0] != "<<TableOfContents>>\n|a|" {
		t.Errorf("variables output = %q", outputs[0])
	}
	if outputs[5] != got {
		t.Errorf("last observed output = %q, want final result %q", outputs[5], got)
	}
	if got != "<<TableOfContents>>\n||a||" {
		t.Errorf("Trace() = %q", got)
	}
}

func TestTrace_NilObserver(t *testing.T) {
	t.Parallel()

	if got := Default().Trace("%TOC%", "", nil); got != "<<TableOfContents>>" {
		t.Errorf("Trace(nil) = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeLineEndings
// ---------------------------------------------------------------------------

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "LF unchanged",
			input:    "line1\nline2\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "CRLF to LF",
			input:    "line1\r\nline2\r\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "CR to LF",
			input:    "line1\rline2\rline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "mixed line endings",
			input:    "line1\r\nline2\rline3\nline4",
			expected: "line1\nline2\nline3\nline4",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeLineEndings(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeLineEndings() = %q, want %q", got, tt.expected)
			}
		})
	}
}
