// Package recognize classifies punched inputs against a selected card model
// by nearest memorized input.
package recognize

import (
	"context"

	"github.com/neurlang/punchedcards/cards"
	"github.com/neurlang/punchedcards/datasets"
	"github.com/neurlang/punchedcards/parallel"
	"github.com/neurlang/punchedcards/punch"
)

// Recognizer predicts labels from a model produced by cards.Select.
type Recognizer struct {
	// memorized stats per key, in label order of the model
	memory map[string][]memorized
	labels []string
	// label rank in canonical order, for tie breaks
	rank map[string]int

	// Workers bounds the goroutines of CountCorrect
	Workers int
}

// New creates a recognizer over model. labels is the canonical label order.
func New(model *cards.PerLabel, labels []string) *Recognizer {
	r := &Recognizer{
		memory:  make(map[string][]memorized, model.Len()),
		rank:    make(map[string]int, len(labels)),
		Workers: 1,
	}
	for _, label := range labels {
		if _, dup := r.rank[label]; !dup {
			r.rank[label] = len(r.labels)
			r.labels = append(r.labels, label)
		}
	}
	for _, key := range model.Keys() {
		table, _ := model.Table(key)
		for _, label := range table.Labels() {
			if s, _ := table.Get(label); s.Len() > 0 {
				r.memory[key] = append(r.memory[key], memorized{label: label, stats: s})
			}
		}
	}
	return r
}

type memorized struct {
	label string
	stats cards.Stats
}

// match is the best memorized entry found for one label.
type match struct {
	label    string
	distance int
	count    int
}

func (r *Recognizer) better(a, b match) bool {
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.count != b.count {
		return a.count > b.count
	}
	return r.order(a.label) < r.order(b.label)
}

func (r *Recognizer) order(label string) int {
	if i, ok := r.rank[label]; ok {
		return i
	}
	return len(r.rank)
}

// Distance is the Hamming distance of two bit strings. The shorter string is
// compared with the prefix of the longer one and every excess character
// counts as a mismatch.
func Distance(a, b string) (d int) {
	if len(a) > len(b) {
		a, b = b, a
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d + len(b) - len(a)
}

// nearest finds the entry of s closest to input. Entries are ordered by
// count descending, so the first closest one is also the most frequent.
func nearest(s cards.Stats, input string) (distance, count int) {
	distance = -1
	for i := 0; i < s.Len(); i++ {
		e := s.At(i)
		d := Distance(e.Input, input)
		if distance < 0 || d < distance {
			distance, count = d, e.Count
			if d == 0 {
				break
			}
		}
	}
	return
}

// Predict returns the label whose memorized inputs match the punched cards
// best: smallest distance first, then larger count, then canonical order.
// ok is false when no card key is in the model.
func (r *Recognizer) Predict(punched []punch.Card) (label string, ok bool) {
	var best match
	for _, card := range punched {
		for _, mem := range r.memory[card.Key] {
			d, c := nearest(mem.stats, card.Input)
			m := match{label: mem.label, distance: d, count: c}
			if !ok || r.better(m, best) {
				best, ok = m, true
			}
		}
	}
	return best.label, ok
}

// CountCorrect punches every item, predicts its label and tallies the
// correct predictions per label. Every label of the recognizer is present.
func (r *Recognizer) CountCorrect(items []datasets.Item, puncher punch.Puncher) map[string]int {
	correct, _ := r.CountCorrectContext(context.Background(), items, puncher)
	return correct
}

// CountCorrectContext is CountCorrect that stops predicting once ctx is
// done. The tally is then partial and ctx.Err() is returned with it.
func (r *Recognizer) CountCorrectContext(ctx context.Context, items []datasets.Item, puncher punch.Puncher) (map[string]int, error) {
	var tally datasets.Tally
	tally.Init(r.labels...)

	parallel.ForEach(len(items), r.Workers, func(i int) {
		if ctx.Err() != nil {
			return
		}
		predicted, ok := r.Predict(puncher.Punch(items[i].Input))
		if ok && predicted == items[i].Label {
			tally.Add(predicted)
		}
	})
	return tally.Map(), ctx.Err()
}

// CountCorrectRecognitions is CountCorrect with a fresh single worker recognizer.
func CountCorrectRecognitions(items []datasets.Item, model *cards.PerLabel, labels []string, puncher punch.Puncher) map[string]int {
	return New(model, labels).CountCorrect(items, puncher)
}

// Total sums a per label tally.
func Total(correct map[string]int) (o int) {
	for _, n := range correct {
		o += n
	}
	return
}
