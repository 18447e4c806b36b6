package trainer

import (
	"context"

	"github.com/neurlang/punchedcards/errors"
	"github.com/neurlang/punchedcards/logger"
	"github.com/neurlang/punchedcards/parallel"
)

// Sweep evaluates every bit length of opts. A failed bit length keeps its
// error in its report and does not stop the others; the returned error
// combines all failures. Reports are in sweep order.
func Sweep(ctx context.Context, data *Data, opts Options) ([]Report, error) {
	var bitLengths = opts.BitLengths
	if len(bitLengths) == 0 {
		bitLengths = DefaultBitLengths
	}
	if opts.TopCount < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "top count %d", opts.TopCount)
	}

	var log = logger.ComponentLogger("trainer")
	var reports = make([]Report, len(bitLengths))

	var limit = 1
	if opts.Parallel {
		limit = len(bitLengths)
	}

	parallel.ForEach(len(bitLengths), limit, func(i int) {
		if err := ctx.Err(); err != nil {
			reports[i] = Report{BitLength: bitLengths[i], Err: err}
			return
		}
		rep, err := Evaluate(ctx, data, bitLengths[i], opts)
		if err != nil {
			log.Warnw("Experiment failed", logger.FieldBitLength, bitLengths[i], logger.FieldError, err)
		}
		reports[i] = rep
	})

	var err error
	for _, rep := range reports {
		err = errors.CombineErrors(err, rep.Err)
	}
	return reports, err
}
