//go:build bench

package twiki2moin

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkResolveWorkers benchmarks worker count calculation.
func BenchmarkResolveWorkers(b *testing.B) {
	for _, w := range []int{0, 1, 4, 64} {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = ResolveWorkers(w)
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// BenchmarkConverterConvert benchmarks decoding and conversion per encoding.
func BenchmarkConverterConvert(b *testing.B) {
	page := benchPage(50)
	ctx := context.Background()

	for _, enc := range []string{EncodingLatin1, EncodingUTF8, EncodingAuto} {
		conv, err := NewConverter(WithEncoding(enc))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(enc, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(page)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := conv.Convert(ctx, Input{Source: page, Prefix: "Main"}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkConverterConvertParallel shares one Converter between goroutines,
// the way the CLI's workers do.
func BenchmarkConverterConvertParallel(b *testing.B) {
	conv, err := NewConverter()
	if err != nil {
		b.Fatal(err)
	}
	page := benchPage(50)
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(page)))
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := conv.Convert(ctx, Input{Source: page, Prefix: "Main"}); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

func benchPage(sections int) []byte {
	var sb strings.Builder
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "---++ Section %d\r\n", i)
		fmt.Fprintf(&sb, "*Caf\xe9* and [[Topic%d][a link]] with %%ATTACHURL%%/f%d.txt\r\n", i, i)
		sb.WriteString("| a | b |\r\n")
		fmt.Fprintf(&sb, "%%META:FILEATTACHMENT{name=\"f%d.txt\" attachment=\"f%d.txt\" attr=\"\"}%%\r\n", i, i)
	}
	return []byte(sb.String())
}
