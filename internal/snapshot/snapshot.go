// Package snapshot persists a finished tally in msgpack form.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/mmfreq/internal/freq"
	"github.com/verte-zerg/mmfreq/internal/model"
	"github.com/verte-zerg/mmfreq/internal/textio"
)

// Bump when the Snapshot layout changes.
const schemaVersion uint16 = 1

// Snapshot is the on-disk form of one run.
type Snapshot struct {
	Schema     uint16    `msgpack:"schema"`
	CreatedAt  time.Time `msgpack:"created_at"`
	InputPath  string    `msgpack:"input_path"`
	Text       string    `msgpack:"text"`
	Total      int       `msgpack:"total"`
	DurationMs int64     `msgpack:"duration_ms"`
	Designated []Entry   `msgpack:"designated"`
	Other      []Entry   `msgpack:"other"`
}

// Entry is one table row in first-seen order.
type Entry struct {
	CodePoint uint32 `msgpack:"cp"`
	Count     int    `msgpack:"n"`
}

// New captures a finished tally.
func New(t *freq.Tally, inputPath, text string, elapsed time.Duration, now time.Time) (Snapshot, error) {
	designated, err := entriesOf(t.Designated)
	if err != nil {
		return Snapshot{}, err
	}
	other, err := entriesOf(t.Other)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Schema:     schemaVersion,
		CreatedAt:  now.UTC(),
		InputPath:  inputPath,
		Text:       text,
		Total:      t.Total,
		DurationMs: elapsed.Milliseconds(),
		Designated: designated,
		Other:      other,
	}, nil
}

func entriesOf(tbl *freq.Table) ([]Entry, error) {
	src := tbl.Entries()
	out := make([]Entry, 0, len(src))
	for _, e := range src {
		cp, err := safecast.Conv[uint32](e.Char)
		if err != nil {
			return nil, fmt.Errorf("invalid code point %d: %w", e.Char, err)
		}
		out = append(out, Entry{CodePoint: cp, Count: e.Count})
	}
	return out, nil
}

// Tally rebuilds the tables, validating bucket membership and the total.
// Frequencies are recomputed.
func (s Snapshot) Tally() (*freq.Tally, error) {
	t := freq.NewTally()
	if err := restore(t, model.Designated, s.Designated); err != nil {
		return nil, err
	}
	if err := restore(t, model.Other, s.Other); err != nil {
		return nil, err
	}
	t.Total = t.Designated.Sum() + t.Other.Sum()
	if t.Total != s.Total {
		return nil, fmt.Errorf("snapshot total %d does not match entries (%d)", s.Total, t.Total)
	}
	t.Finish()
	return t, nil
}

func restore(t *freq.Tally, bucket model.Bucket, entries []Entry) error {
	tbl := t.Table(bucket)
	for _, e := range entries {
		r, err := safecast.Conv[rune](e.CodePoint)
		if err != nil {
			return fmt.Errorf("invalid code point %d: %w", e.CodePoint, err)
		}
		if freq.Classify(r) != bucket {
			return fmt.Errorf("code point %U stored in the %s table", r, bucket)
		}
		if _, dup := tbl.Get(r); dup {
			return fmt.Errorf("duplicate entry for %U", r)
		}
		if e.Count <= 0 {
			return fmt.Errorf("non-positive count for %U", r)
		}
		tbl.AddCount(r, e.Count)
	}
	return nil
}

// Elapsed returns the recorded processing time.
func (s Snapshot) Elapsed() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

// Encode writes s to w.
func Encode(w io.Writer, s Snapshot) error {
	return msgpack.NewEncoder(w).Encode(&s)
}

// Decode reads a snapshot from r and checks its schema.
func Decode(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Schema != schemaVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot schema %d", s.Schema)
	}
	return s, nil
}

// Save writes s atomically to path.
func Save(path string, s Snapshot) error {
	return textio.WriteFile(path, func(w io.Writer) error {
		return Encode(w, s)
	})
}

// Load reads the snapshot stored at path.
func Load(path string) (Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return Snapshot{}, &textio.OpError{Op: textio.OpRead, Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only snapshot.
			_ = cerr
		}
	}()
	s, err := Decode(file)
	if err != nil {
		return Snapshot{}, &textio.OpError{Op: textio.OpRead, Path: path, Err: err}
	}
	return s, nil
}

// IsSnapshotPath reports whether path carries a snapshot extension.
func IsSnapshotPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		return true
	default:
		return false
	}
}
