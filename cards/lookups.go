package cards

import (
	"cmp"
	"slices"
)

// KeyLookups are the distinct-input-counts of one key's labels.
type KeyLookups struct {
	Key string
	// Counts in descending order
	Counts []int
	Sum    int
}

// Summary is the unique lookup distribution of a model, keys ordered by
// their sum descending.
type Summary []KeyLookups

// Total is the sum over all keys.
func (s Summary) Total() (o int) {
	for _, k := range s {
		o += k.Sum
	}
	return
}

// Lookups summarizes how many distinct inputs each key of the model
// memorized per label.
func Lookups(model *PerLabel) Summary {
	if model.Empty() {
		return nil
	}
	var out = make(Summary, 0, len(model.keys))
	for _, key := range model.keys {
		t := model.tables[key]
		k := KeyLookups{Key: key}
		for _, label := range t.labels {
			n := t.stats[label].Len()
			k.Counts = append(k.Counts, n)
			k.Sum += n
		}
		slices.SortFunc(k.Counts, func(a, b int) int { return cmp.Compare(b, a) })
		out = append(out, k)
	}
	return rankTop(out, len(out), func(k KeyLookups) int { return k.Sum })
}
