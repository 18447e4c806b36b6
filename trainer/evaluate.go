package trainer

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/neurlang/quaternary"

	"github.com/neurlang/punchedcards/cards"
	"github.com/neurlang/punchedcards/datasets"
	"github.com/neurlang/punchedcards/errors"
	"github.com/neurlang/punchedcards/hash"
	"github.com/neurlang/punchedcards/logger"
	"github.com/neurlang/punchedcards/parallel"
	"github.com/neurlang/punchedcards/punch"
	"github.com/neurlang/punchedcards/recognize"
)

// DefaultBitLengths is the sweep of key-space bit lengths.
var DefaultBitLengths = []int{32, 64, 128, 256, 512}

// Options configure an experiment.
type Options struct {
	BitLengths []int
	// TopCount is the number of cards kept per label
	TopCount int
	Seed     int
	// Workers bounds the goroutines of aggregation and recognition
	Workers int
	// Parallel runs the bit lengths of a sweep concurrently
	Parallel bool
}

// Data is a loaded dataset.
type Data struct {
	Training []datasets.Item
	Test     []datasets.Item
	// Labels in canonical order
	Labels []string
}

// Load reads both sets of a source.
func Load(src datasets.Source) (*Data, error) {
	training, err := src.ReadTrainingData()
	if err != nil {
		return nil, errors.Wrap(err, "reading training data")
	}
	test, err := src.ReadTestData()
	if err != nil {
		return nil, errors.Wrap(err, "reading test data")
	}
	return &Data{
		Training: training,
		Test:     test,
		Labels:   datasets.Labels(src),
	}, nil
}

// Evaluate runs one experiment at bitLength. Cancelling ctx stops the
// recognition passes and fails the experiment with ctx.Err().
func Evaluate(ctx context.Context, data *Data, bitLength int, opts Options) (rep Report, err error) {
	var start = time.Now()
	var log = logger.ComponentLogger("trainer").With(logger.FieldBitLength, bitLength)
	rep.BitLength = bitLength
	defer func() {
		rep.Duration = time.Since(start)
		rep.Err = err
	}()

	inputSize := datasets.InputSize(data.Training, data.Test)
	if inputSize == 0 {
		inputSize = 1
	}
	puncher, err := punch.NewRandom(bitLength, inputSize, opts.Seed)
	if err != nil {
		return rep, err
	}
	rep.Keys = len(puncher.Keys())

	perLabel := cards.BuildParallel(data.Training, puncher, opts.Workers)
	model, err := cards.Select(perLabel, data.Labels, opts.TopCount)
	if err != nil {
		return rep, errors.Wrapf(err, "bit length %d", bitLength)
	}
	global, err := cards.GlobalTop(perLabel)
	if err != nil {
		return rep, errors.Wrapf(err, "bit length %d", bitLength)
	}
	rep.GlobalTopKey = global.Keys()[0]
	table, _ := global.Table(rep.GlobalTopKey)
	rep.GlobalTopDiversity = table.Diversity()

	rep.Lookups = cards.Lookups(model)
	rep.Fingerprint = Fingerprint(model, opts.Workers)
	rep.FilterBytes = FilterBytes(model, puncher.Salt())

	log.Debugw("Selected model",
		logger.FieldKeys, model.Len(),
		logger.FieldTotalCount, rep.Lookups.Total())

	if err := ctx.Err(); err != nil {
		return rep, errors.Wrapf(err, "bit length %d", bitLength)
	}

	recognizer := recognize.New(model, data.Labels)
	recognizer.Workers = opts.Workers

	rep.TrainPerLabel, err = recognizer.CountCorrectContext(ctx, data.Training, puncher)
	if err != nil {
		return rep, errors.Wrapf(err, "bit length %d: training recognitions", bitLength)
	}
	rep.TrainCorrect = recognize.Total(rep.TrainPerLabel)
	rep.TrainTotal = len(data.Training)

	rep.TestPerLabel, err = recognizer.CountCorrectContext(ctx, data.Test, puncher)
	if err != nil {
		return rep, errors.Wrapf(err, "bit length %d: test recognitions", bitLength)
	}
	rep.TestCorrect = recognize.Total(rep.TestPerLabel)
	rep.TestTotal = len(data.Test)

	log.Infow("Evaluated punched cards",
		"train_correct", rep.TrainCorrect,
		"test_correct", rep.TestCorrect,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return rep, nil
}

// Fingerprint digests the model in key order. Equal models have equal fingerprints.
func Fingerprint(model *cards.PerLabel, workers int) [32]byte {
	var keys = model.Keys()
	var d = parallel.NewDigest(len(keys))
	parallel.ForEach(len(keys), workers, func(i int) {
		h := sha256.New()
		var n [8]byte
		write := func(s string) {
			binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
			h.Write(n[:])
			h.Write([]byte(s))
		}
		write(keys[i])
		table, _ := model.Table(keys[i])
		for _, label := range table.Labels() {
			write(label)
			s, _ := table.Get(label)
			for _, e := range s.Entries() {
				write(e.Input)
				binary.LittleEndian.PutUint64(n[:], uint64(e.Count))
				h.Write(n[:])
			}
		}
		var block [32]byte
		copy(block[:], h.Sum(nil))
		d.MustPut(i, block)
	})
	return d.Sum()
}

// FilterBytes is the size of the model's memorized inputs stored as
// quaternary filters, one per (key, label), answering whether an input was
// seen more than once.
func FilterBytes(model *cards.PerLabel, salt uint32) (size int) {
	for _, key := range model.Keys() {
		table, _ := model.Table(key)
		for _, label := range table.Labels() {
			s, _ := table.Get(label)
			var set = make(map[uint32]bool, s.Len())
			for i := 0; i < s.Len(); i++ {
				set[hash.String(s.At(i).Input, salt)] = s.At(i).Count > 1
			}
			size += len(quaternary.Make(set))
		}
	}
	return
}
