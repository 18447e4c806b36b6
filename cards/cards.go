// Package cards aggregates punched training data into per-key, per-label
// frequency tables and selects the most diverse card of every label.
//
// The tables are nested key -> label -> entries. Every level remembers the
// order in which its members were first encountered, since that order
// breaks ties in both sorting and selection. All exported types are read
// only; they are assembled by the unexported builders of this package.
package cards

// Entry is one distinct quantized input observed for a (key, label) pair.
type Entry struct {
	Input string
	Count int
}

// Stats is the sequence of distinct inputs of one (key, label) pair,
// ordered by count descending. Equal counts keep first encounter order.
type Stats struct {
	entries []Entry
}

// Len is the distinct-input-count.
func (s Stats) Len() int {
	return len(s.entries)
}

// Total sums the counts of all entries.
func (s Stats) Total() (o int) {
	for _, e := range s.entries {
		o += e.Count
	}
	return
}

// At returns the i-th entry.
func (s Stats) At(i int) Entry {
	return s.entries[i]
}

// Entries returns a copy of the entries.
func (s Stats) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// LabelTable maps labels to their Stats for one key.
type LabelTable struct {
	labels []string
	stats  map[string]Stats
}

// Labels lists the labels present, in insertion order.
func (t LabelTable) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Get returns the Stats of label.
func (t LabelTable) Get(label string) (Stats, bool) {
	s, ok := t.stats[label]
	return s, ok
}

// Len is the number of labels present.
func (t LabelTable) Len() int {
	return len(t.labels)
}

// Diversity sums the distinct-input-counts of all labels.
func (t LabelTable) Diversity() (o int) {
	for _, label := range t.labels {
		o += t.stats[label].Len()
	}
	return
}

func (t *LabelTable) put(label string, s Stats) {
	if t.stats == nil {
		t.stats = make(map[string]Stats)
	}
	if _, ok := t.stats[label]; !ok {
		t.labels = append(t.labels, label)
	}
	t.stats[label] = s
}

// PerLabel maps keys to label tables. It is the product of Build, and in
// its restricted form the trained model produced by Select.
type PerLabel struct {
	keys   []string
	tables map[string]LabelTable
}

// Keys lists the keys present, in insertion order.
func (p *PerLabel) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Table returns the label table of key.
func (p *PerLabel) Table(key string) (LabelTable, bool) {
	t, ok := p.tables[key]
	return t, ok
}

// Stats returns the entries of a (key, label) pair.
func (p *PerLabel) Stats(key, label string) (Stats, bool) {
	t, ok := p.tables[key]
	if !ok {
		return Stats{}, false
	}
	return t.Get(label)
}

// Len is the number of keys.
func (p *PerLabel) Len() int {
	return len(p.keys)
}

// Empty reports whether there are no keys.
func (p *PerLabel) Empty() bool {
	return p == nil || len(p.keys) == 0
}

func (p *PerLabel) put(key, label string, s Stats) {
	if p.tables == nil {
		p.tables = make(map[string]LabelTable)
	}
	t, ok := p.tables[key]
	if !ok {
		p.keys = append(p.keys, key)
	}
	t.put(label, s)
	p.tables[key] = t
}
