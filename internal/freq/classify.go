// Package freq tallies per-character frequencies split into two buckets.
package freq

import "github.com/verte-zerg/mmfreq/internal/model"

// Inclusive code point bounds of the Myanmar block.
const (
	RangeLow  rune = 0x1000
	RangeHigh rune = 0x109F
)

// Classify reports the bucket a character belongs to.
func Classify(r rune) model.Bucket {
	if r >= RangeLow && r <= RangeHigh {
		return model.Designated
	}
	return model.Other
}

// IsDesignated reports whether r falls inside the designated range.
func IsDesignated(r rune) bool {
	return Classify(r) == model.Designated
}
