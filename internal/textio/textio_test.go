package textio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestReadTextTrims(t *testing.T) {
	path := writeInput(t, []byte("  \n ကခ abc \n\t"))
	text, err := ReadText(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "ကခ abc" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestReadTextDropsUTF8BOM(t *testing.T) {
	path := writeInput(t, append([]byte{0xEF, 0xBB, 0xBF}, []byte("က")...))
	text, err := ReadText(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "က" {
		t.Fatalf("expected BOM to be stripped, got %q", text)
	}
}

func TestReadTextDecodesUTF16(t *testing.T) {
	// UTF-16LE BOM followed by U+1000 'a'.
	path := writeInput(t, []byte{0xFF, 0xFE, 0x00, 0x10, 'a', 0x00})
	text, err := ReadText(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "ကa" {
		t.Fatalf("unexpected decoded text %q", text)
	}
}

func TestReadTextRejectsInvalidUTF8(t *testing.T) {
	path := writeInput(t, []byte{'a', 0xFF, 'b'})
	_, err := ReadText(path, ReadOptions{})
	if !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
	if op, ok := OpOf(err); !ok || op != OpRead {
		t.Fatalf("expected read op, got %q (ok=%v)", op, ok)
	}
}

func TestReadTextMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := ReadText(path, ReadOptions{})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to read") || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected message to name operation and path, got %q", err.Error())
	}
}

func TestDecodeNormalizesNFC(t *testing.T) {
	// 'e' + combining acute composes to U+00E9 under NFC.
	text, err := Decode(strings.NewReader("e\u0301"), ReadOptions{Normalize: NormalizeNFC})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if text != "\u00e9" {
		t.Fatalf("expected composed text, got %q", text)
	}
	raw, err := Decode(strings.NewReader("e\u0301"), ReadOptions{Normalize: NormalizeNone})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if raw != "e\u0301" {
		t.Fatalf("expected untouched text, got %q", raw)
	}
}

func TestWriteFileReplacesDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("old contents that are longer"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}
	err := WriteFile(path, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "new")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "new" {
		t.Fatalf("expected output to be regenerated, got %q", got)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file to be cleaned up, found %d entries", len(entries))
	}
}

func TestWriteFileRenderFailureKeepsOld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}
	boom := errors.New("boom")
	err := WriteFile(path, func(w io.Writer) error {
		_, _ = io.Copy(w, bytes.NewReader([]byte("partial")))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	if op, _ := OpOf(err); op != OpWrite {
		t.Fatalf("expected write op, got %q", op)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "old" {
		t.Fatalf("expected destination untouched, got %q", got)
	}
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.txt")
	err := WriteFile(path, func(io.Writer) error { return nil })
	if op, ok := OpOf(err); !ok || op != OpCreate {
		t.Fatalf("expected create op, got %q (err=%v)", op, err)
	}
}
