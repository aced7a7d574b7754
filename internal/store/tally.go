package store

import (
	"fmt"

	"github.com/verte-zerg/mmfreq/internal/freq"
	"github.com/verte-zerg/mmfreq/internal/model"
)

// CharCounts flattens both tables of a tally into storable rows.
func CharCounts(t *freq.Tally) []model.CharCount {
	out := make([]model.CharCount, 0, t.Designated.Len()+t.Other.Len())
	for _, b := range []model.Bucket{model.Designated, model.Other} {
		for i, e := range t.Table(b).Entries() {
			out = append(out, model.CharCount{Bucket: b, Char: e.Char, Count: e.Count, Position: i})
		}
	}
	return out
}

// RestoreTally rebuilds a tally from stored rows already sorted by position.
func RestoreTally(chars []model.CharCount) (*freq.Tally, error) {
	t := freq.NewTally()
	for _, cc := range chars {
		if freq.Classify(cc.Char) != cc.Bucket {
			return nil, fmt.Errorf("stored char %U does not belong to bucket %s", cc.Char, cc.Bucket)
		}
		t.Table(cc.Bucket).AddCount(cc.Char, cc.Count)
		t.Total += cc.Count
	}
	t.Finish()
	return t, nil
}

// NewRecord summarizes a tally for InsertRun.
func NewRecord(t *freq.Tally, run model.RunConfig) model.RunRecord {
	return model.RunRecord{
		InputPath:          run.InputPath,
		OutputPath:         run.OutputPath,
		Total:              t.Total,
		DesignatedTotal:    t.Designated.Sum(),
		OtherTotal:         t.Other.Sum(),
		DistinctDesignated: t.Designated.Len(),
		DistinctOther:      t.Other.Len(),
	}
}
