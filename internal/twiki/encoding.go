package twiki

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Source encodings accepted by Decode.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf-8"
	EncodingAuto   = "auto"
)

// DefaultEncoding is the encoding of a stock TWiki installation.
const DefaultEncoding = EncodingLatin1

// ErrUnknownEncoding is returned for an encoding name Decode does not support.
var ErrUnknownEncoding = errors.New("unknown encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseEncoding returns the canonical name of a source encoding.
// Spelling variants such as "ISO-8859-1", "UTF8" or "" (the default) are accepted.
func ParseEncoding(name string) (string, error) {
	switch normalizeCharset(name) {
	case "":
		return DefaultEncoding, nil
	case "latin1", "iso88591":
		return EncodingLatin1, nil
	case "utf8":
		return EncodingUTF8, nil
	case "auto":
		return EncodingAuto, nil
	}
	return "", fmt.Errorf("%w: %q (must be latin1, utf-8 or auto)", ErrUnknownEncoding, name)
}

// Decode converts raw page bytes to a UTF-8 string. It returns the text
// and the encoding actually used, which for EncodingAuto is the detected one.
func Decode(raw []byte, name string) (string, string, error) {
	enc, err := ParseEncoding(name)
	if err != nil {
		return "", "", err
	}

	switch enc {
	case EncodingLatin1:
		text, err := decodeWith(charmap.ISO8859_1, raw)
		return text, EncodingLatin1, err
	case EncodingUTF8:
		text, err := decodeWith(unicode.UTF8BOM, raw)
		return text, EncodingUTF8, err
	}
	return detect(raw)
}

// detect decodes raw in the most likely encoding. Valid UTF-8 wins,
// then chardet's best guess, then Latin-1, which accepts any input.
func detect(raw []byte) (string, string, error) {
	if utf8.Valid(raw) {
		return string(bytes.TrimPrefix(raw, utf8BOM)), EncodingUTF8, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err == nil {
		if enc := lookupCharset(result.Charset); enc != nil {
			if text, err := decodeWith(enc, raw); err == nil {
				return text, strings.ToLower(result.Charset), nil
			}
		}
	}

	text, err := decodeWith(charmap.ISO8859_1, raw)
	return text, EncodingLatin1, err
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding: %w", err)
	}
	return string(decoded), nil
}

// lookupCharset maps the charsets chardet reports for Western text to
// decoders. UTF-8 is absent: detect only runs on invalid UTF-8.
func lookupCharset(charset string) encoding.Encoding {
	switch normalizeCharset(charset) {
	case "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case "iso88591", "latin1":
		return charmap.ISO8859_1
	case "iso885915":
		return charmap.ISO8859_15
	case "windows1252", "cp1252":
		return charmap.Windows1252
	}
	return nil
}

func normalizeCharset(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}
