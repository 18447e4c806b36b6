package cards

import (
	"cmp"
	"slices"
	"time"

	"github.com/neurlang/punchedcards/datasets"
	"github.com/neurlang/punchedcards/logger"
	"github.com/neurlang/punchedcards/parallel"
	"github.com/neurlang/punchedcards/punch"
)

// Build punches every training item and groups the cards by key, then by
// label, then by distinct input, counting occurrences.
func Build(items []datasets.Item, puncher punch.Puncher) *PerLabel {
	return BuildParallel(items, puncher, 1)
}

// BuildParallel is Build on up to workers goroutines. Items are split into
// contiguous chunks whose groupings are merged in chunk order, which yields
// exactly the result of Build. The puncher must allow concurrent Punch calls.
func BuildParallel(items []datasets.Item, puncher punch.Puncher, workers int) *PerLabel {
	var start = time.Now()
	var chunks = parallel.Chunks(len(items), workers)
	var partials = make([]*grouping, len(chunks))

	parallel.ForEach(len(chunks), workers, func(i int) {
		g := newGrouping()
		for _, item := range items[chunks[i][0]:chunks[i][1]] {
			for _, card := range puncher.Punch(item.Input) {
				g.add(card.Key, item.Label, card.Input)
			}
		}
		partials[i] = g
	})

	var total = newGrouping()
	for _, g := range partials {
		total.merge(g)
	}
	out := total.freeze()

	logger.ComponentLogger("cards").Debugw("Built punched cards per label",
		logger.FieldCount, len(items),
		logger.FieldKeys, out.Len(),
		logger.FieldWorkers, len(chunks),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return out
}

// counter counts distinct inputs, remembering first encounter order.
type counter struct {
	order  []string
	counts map[string]int
}

// labelGroup holds the counters of one key.
type labelGroup struct {
	order    []string
	counters map[string]*counter
}

// grouping is the mutable fold state of the aggregation.
type grouping struct {
	order  []string
	groups map[string]*labelGroup
}

func newGrouping() *grouping {
	return &grouping{groups: make(map[string]*labelGroup)}
}

func (g *grouping) counter(key, label string) *counter {
	lg, ok := g.groups[key]
	if !ok {
		lg = &labelGroup{counters: make(map[string]*counter)}
		g.groups[key] = lg
		g.order = append(g.order, key)
	}
	c, ok := lg.counters[label]
	if !ok {
		c = &counter{counts: make(map[string]int)}
		lg.counters[label] = c
		lg.order = append(lg.order, label)
	}
	return c
}

func (c *counter) add(input string, n int) {
	if _, ok := c.counts[input]; !ok {
		c.order = append(c.order, input)
	}
	c.counts[input] += n
}

func (g *grouping) add(key, label, input string) {
	g.counter(key, label).add(input, 1)
}

// merge folds o into g. Members new to g are appended in o's order, so
// merging chunk groupings in chunk order preserves first encounter order.
func (g *grouping) merge(o *grouping) {
	for _, key := range o.order {
		lg := o.groups[key]
		for _, label := range lg.order {
			src := lg.counters[label]
			dst := g.counter(key, label)
			for _, input := range src.order {
				dst.add(input, src.counts[input])
			}
		}
	}
}

// freeze sorts every (key, label) sequence by count descending, stable.
func (g *grouping) freeze() *PerLabel {
	var out = &PerLabel{tables: make(map[string]LabelTable, len(g.order))}
	for _, key := range g.order {
		lg := g.groups[key]
		for _, label := range lg.order {
			c := lg.counters[label]
			entries := make([]Entry, len(c.order))
			for i, input := range c.order {
				entries[i] = Entry{Input: input, Count: c.counts[input]}
			}
			slices.SortStableFunc(entries, func(a, b Entry) int {
				return cmp.Compare(b.Count, a.Count)
			})
			out.put(key, label, Stats{entries: entries})
		}
	}
	return out
}
