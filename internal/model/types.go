// Package model defines shared data structures.
package model

import "time"

// Bucket identifies which frequency table a character is routed to.
type Bucket int

const (
	// Designated holds characters inside the burmese block.
	Designated Bucket = iota
	// Other holds every character outside the burmese block.
	Other
)

// String returns the storage name of the bucket.
func (b Bucket) String() string {
	switch b {
	case Designated:
		return "burmese"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// ParseBucket maps a storage name back to a Bucket.
func ParseBucket(s string) (Bucket, bool) {
	switch s {
	case "burmese":
		return Designated, true
	case "other":
		return Other, true
	default:
		return 0, false
	}
}

// FreqEntry is one observed character and its statistics.
type FreqEntry struct {
	Char      rune
	Count     int
	Frequency float64
}

// RunConfig defines options for a single pipeline run.
type RunConfig struct {
	InputPath   string
	OutputPath  string
	Normalize   string
	Record      bool
	Snapshot    string
	MetricsFile string
	Color       string
	LogLevel    string
	Quiet       bool
}

// RunRecord summarizes a finished run for the history store.
type RunRecord struct {
	ID                 int64
	StartedAt          time.Time
	InputPath          string
	OutputPath         string
	Total              int
	DesignatedTotal    int
	OtherTotal         int
	DistinctDesignated int
	DistinctOther      int
	DurationMs         int64
}

// CharCount is a stored per-character tally row.
type CharCount struct {
	Bucket   Bucket
	Char     rune
	Count    int
	Position int
}
