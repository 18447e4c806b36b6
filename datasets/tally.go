package datasets

import "sync"

// Tally counts votes per label. It is safe for concurrent use.
type Tally struct {
	// labels in the order they were first seen
	order  []string
	counts map[string]int

	mut sync.Mutex
}

// Init initializes the tally, registering labels with a zero count
func (t *Tally) Init(labels ...string) {
	t.order = nil
	t.counts = make(map[string]int)
	for _, label := range labels {
		t.register(label)
	}
}

func (t *Tally) register(label string) {
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
		t.counts[label] = 0
	}
}

// Add votes once for label
func (t *Tally) Add(label string) {
	t.mut.Lock()
	t.register(label)
	t.counts[label]++
	t.mut.Unlock()
}

// Get reads the votes of label
func (t *Tally) Get(label string) int {
	t.mut.Lock()
	defer t.mut.Unlock()
	return t.counts[label]
}

// Len is the number of labels in the tally
func (t *Tally) Len() int {
	t.mut.Lock()
	defer t.mut.Unlock()
	return len(t.order)
}

// Total sums the votes of all labels
func (t *Tally) Total() (o int) {
	t.mut.Lock()
	for _, n := range t.counts {
		o += n
	}
	t.mut.Unlock()
	return
}

// Labels lists labels in first seen order
func (t *Tally) Labels() []string {
	t.mut.Lock()
	defer t.mut.Unlock()
	return append([]string(nil), t.order...)
}

// Map copies the tally into a map
func (t *Tally) Map() map[string]int {
	t.mut.Lock()
	defer t.mut.Unlock()
	var out = make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}
