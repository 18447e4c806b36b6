package cards

import (
	"cmp"
	"slices"

	"github.com/neurlang/punchedcards/errors"
	"github.com/neurlang/punchedcards/logger"
)

// rankTop orders candidates by score descending and keeps the first n.
// Equal scores keep the candidates' relative order.
func rankTop[T any](candidates []T, n int, score func(T) int) []T {
	var ranked = slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b T) int {
		return cmp.Compare(score(b), score(a))
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Select picks, for every label in canonical order, the topCount keys with
// the most distinct inputs for that label, and returns the model holding
// only those (key, label) tables. Keys tie in the order of p.
func Select(p *PerLabel, labels []string, topCount int) (*PerLabel, error) {
	if topCount < 1 {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "top punched cards per label count %d", topCount),
			"the count must be at least 1")
	}
	if p.Empty() {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrNoData, "no punched cards to select from"),
			"the training set is empty")
	}

	var log = logger.ComponentLogger("cards")
	var top = &PerLabel{tables: make(map[string]LabelTable)}

	for _, label := range labels {
		var candidates []string
		for _, key := range p.keys {
			if _, ok := p.tables[key].stats[label]; ok {
				candidates = append(candidates, key)
			}
		}

		chosen := rankTop(candidates, topCount, func(key string) int {
			return p.tables[key].stats[label].Len()
		})
		for _, key := range chosen {
			top.put(key, label, p.tables[key].stats[label])
		}

		log.Debugw("Selected punched cards",
			logger.FieldOperation, "select",
			"label", label,
			logger.FieldKeys, chosen)
	}
	if top.Empty() {
		return nil, errors.WithHintf(
			errors.Wrap(errors.ErrNoData, "no punched cards for any label"),
			"none of the labels %v occur in the training set", labels)
	}
	return top, nil
}

// GlobalTop returns the single key whose label tables hold the most distinct
// inputs summed over all labels, with its full label table. The first key
// wins a tie.
func GlobalTop(p *PerLabel) (*PerLabel, error) {
	if p.Empty() {
		return nil, errors.Wrap(errors.ErrNoData, "no punched cards to rank")
	}
	best := rankTop(p.keys, 1, func(key string) int {
		return p.tables[key].Diversity()
	})[0]

	var out = &PerLabel{tables: make(map[string]LabelTable, 1)}
	out.keys = []string{best}
	out.tables[best] = p.tables[best]
	return out, nil
}
