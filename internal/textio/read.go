package textio

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalization forms accepted by ReadOptions.
const (
	NormalizeNone = "none"
	NormalizeNFC  = "nfc"
)

// ReadOptions controls how input text is prepared.
type ReadOptions struct {
	Normalize string
}

// ReadText loads the whole file at path, decodes it and trims surrounding whitespace.
// UTF-8 is assumed unless a UTF-16 byte order mark is present; a UTF-8 BOM is dropped.
func ReadText(path string, opts ReadOptions) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", &OpError{Op: OpRead, Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	text, err := Decode(file, opts)
	if err != nil {
		return "", &OpError{Op: OpRead, Path: path, Err: err}
	}
	return text, nil
}

// Decode reads r fully and applies the same preparation as ReadText.
func Decode(r io.Reader, opts ReadOptions) (string, error) {
	decoder := unicode.BOMOverride(transform.Nop)
	raw, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidText
	}
	text := string(raw)
	if opts.Normalize == NormalizeNFC {
		text = norm.NFC.String(text)
	}
	return strings.TrimSpace(text), nil
}

// ValidNormalize reports whether form is an accepted normalization name.
func ValidNormalize(form string) bool {
	switch form {
	case "", NormalizeNone, NormalizeNFC:
		return true
	default:
		return false
	}
}
