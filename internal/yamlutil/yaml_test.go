package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions), which no caller passes.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"

	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/yamlutil"
)

type testSource struct {
	PagesDir string `yaml:"pagesDir"`
}

type testConfig struct {
	Source  testSource `yaml:"source"`
	Prefix  string     `yaml:"prefix"`
	Workers int        `yaml:"workers"`
	Verbose bool       `yaml:"verbose"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "known fields",
			data: []byte("source:\n  pagesDir: data/Main\nprefix: Main\nworkers: 4\nverbose: true"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Source.PagesDir != "data/Main" {
					t.Errorf("Source.PagesDir = %q, want %q", cfg.Source.PagesDir, "data/Main")
				}
				if cfg.Prefix != "Main" {
					t.Errorf("Prefix = %q, want %q", cfg.Prefix, "Main")
				}
				if cfg.Workers != 4 {
					t.Errorf("Workers = %d, want 4", cfg.Workers)
				}
				if !cfg.Verbose {
					t.Error("Verbose = false, want true")
				}
			},
		},
		{
			name: "absent fields keep existing values",
			data: []byte("workers: 2"),
			dest: &testConfig{Prefix: "Keep"},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Prefix != "Keep" {
					t.Errorf("Prefix = %q, want %q", cfg.Prefix, "Keep")
				}
			},
		},
		{
			name: "accented text",
			data: []byte("prefix: Café"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				if got := v.(*testConfig).Prefix; got != "Café" {
					t.Errorf("Prefix = %q, want %q", got, "Café")
				}
			},
		},
		{
			name:    "unknown top-level field",
			data:    []byte("prefix: Main\nprefx: Typo"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "unknown nested field",
			data:    []byte("source:\n  pageDir: data/Main"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "invalid syntax",
			data:    []byte("prefix: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("prefix: Main"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Serializes Go structs to YAML
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&testConfig{
		Source:  testSource{PagesDir: "data/Main"},
		Prefix:  "Main",
		Workers: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := string(data)
	for _, want := range []string{"source:\n  pagesDir: data/Main\n", "prefix: Main\n", "workers: 3\n", "verbose: false\n"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q, got:\n%s", want, s)
		}
	}
}

func TestMarshal_ReadBack(t *testing.T) {
	t.Parallel()

	original := testConfig{Source: testSource{PagesDir: "twiki/data"}, Prefix: "Main/Sub", Workers: 8}

	data, err := yamlutil.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded testConfig
	if err := yamlutil.UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("UnmarshalStrict failed: %v", err)
	}
	if decoded != original {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests to avoid data races.

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := []byte("prefix: x" + strings.Repeat(" ", 91))
		var cfg testConfig
		if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails with sizes", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		data := make([]byte, 100)
		var cfg testConfig
		err := yamlutil.UnmarshalStrict(data, &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if !strings.Contains(err.Error(), "100 bytes") || !strings.Contains(err.Error(), "max 50") {
			t.Errorf("error should contain both sizes, got: %s", err)
		}
	})
}
