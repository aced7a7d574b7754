package freq

import "github.com/verte-zerg/mmfreq/internal/model"

// Table is an insertion-ordered set of character counts.
// Entries are enumerated in first-seen order and each character appears at most once.
type Table struct {
	entries []model.FreqEntry
	index   map[rune]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: map[rune]int{}}
}

// Add records one occurrence of r.
func (t *Table) Add(r rune) {
	t.AddCount(r, 1)
}

// AddCount records n occurrences of r, inserting r at the end when unseen.
// Non-positive n is ignored.
func (t *Table) AddCount(r rune, n int) {
	if n <= 0 {
		return
	}
	if t.index == nil {
		t.index = map[rune]int{}
	}
	if idx, ok := t.index[r]; ok {
		t.entries[idx].Count += n
		return
	}
	t.index[r] = len(t.entries)
	t.entries = append(t.entries, model.FreqEntry{Char: r, Count: n})
}

// Get returns the entry for r.
func (t *Table) Get(r rune) (model.FreqEntry, bool) {
	idx, ok := t.index[r]
	if !ok {
		return model.FreqEntry{}, false
	}
	return t.entries[idx], true
}

// Len returns the number of distinct characters.
func (t *Table) Len() int {
	return len(t.entries)
}

// Sum returns the total of all counts.
func (t *Table) Sum() int {
	sum := 0
	for _, e := range t.entries {
		sum += e.Count
	}
	return sum
}

// Entries returns a copy of the entries in first-seen order.
func (t *Table) Entries() []model.FreqEntry {
	out := make([]model.FreqEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ApplyPercentages recomputes every frequency as count/total*100.
// When total is not positive the pass is skipped and frequencies are reset to zero.
func (t *Table) ApplyPercentages(total int) {
	for i := range t.entries {
		if total <= 0 {
			t.entries[i].Frequency = 0
			continue
		}
		t.entries[i].Frequency = float64(t.entries[i].Count) / float64(total) * 100
	}
}

// Busiest returns the entry with the strictly greatest count; the earliest entry wins ties.
// The second result is false when the table is empty.
func (t *Table) Busiest() (model.FreqEntry, bool) {
	var best model.FreqEntry
	found := false
	for _, e := range t.entries {
		if e.Count > best.Count {
			best = e
			found = true
		}
	}
	return best, found
}
