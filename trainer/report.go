package trainer

import (
	"fmt"
	"strings"
	"time"

	"github.com/neurlang/punchedcards/cards"
)

// Report is the outcome of one bit length.
type Report struct {
	BitLength int
	// Keys is the number of cards the puncher produces per input
	Keys int

	Lookups            cards.Summary
	GlobalTopKey       string
	GlobalTopDiversity int

	TrainCorrect, TrainTotal int
	TestCorrect, TestTotal   int
	TrainPerLabel            map[string]int
	TestPerLabel             map[string]int

	FilterBytes int
	Fingerprint [32]byte
	Duration    time.Duration

	// Err is set when the experiment failed
	Err error
}

// LookupsString renders the unique lookup distribution, for example
// "{12, 7: sum 19}, {5}: total sum 24".
func LookupsString(summary cards.Summary) string {
	var parts = make([]string, len(summary))
	for i, k := range summary {
		values := make([]string, len(k.Counts))
		for j, c := range k.Counts {
			values[j] = fmt.Sprint(c)
		}
		s := strings.Join(values, ", ")
		if len(k.Counts) > 1 {
			s += fmt.Sprintf(": sum %d", k.Sum)
		}
		parts[i] = "{" + s + "}"
	}
	return strings.Join(parts, ", ") + fmt.Sprintf(": total sum %d", summary.Total())
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Punched card bit length: %d\n", r.BitLength)
	if r.Err != nil {
		fmt.Fprintf(&b, "Failed: %v\n", r.Err)
		return b.String()
	}
	fmt.Fprintf(&b, "Unique lookup combinations per punched card (descending): %s\n", LookupsString(r.Lookups))
	fmt.Fprintf(&b, "Training results: %d correct recognitions of %d\n", r.TrainCorrect, r.TrainTotal)
	fmt.Fprintf(&b, "Test results: %d correct recognitions of %d\n", r.TestCorrect, r.TestTotal)
	return b.String()
}
