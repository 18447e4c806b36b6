package punch

import (
	"strconv"

	"github.com/jbarham/primegen"

	"github.com/neurlang/punchedcards/errors"
	"github.com/neurlang/punchedcards/hash"
)

// Random punches inputs by scattering pixel positions with a salted
// permutation and cutting it into chunks of BitLength positions.
// Chunk i is the card with key strconv.Itoa(i).
type Random struct {
	bitLength int
	inputSize int
	salt      uint32
	keys      []string
	positions [][]int
}

// NewRandom creates a puncher over inputs of inputSize bits. The salt is the
// (seed+bitLength)-th prime, so every bit length gets its own projection.
func NewRandom(bitLength, inputSize, seed int) (*Random, error) {
	if bitLength < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "punched card bit length %d", bitLength)
	}
	if inputSize < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "input size %d", inputSize)
	}
	if seed < 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "puncher seed %d", seed)
	}

	r := &Random{
		bitLength: bitLength,
		inputSize: inputSize,
		salt:      nthPrime(seed + bitLength),
	}

	perm := hash.Permutation(inputSize, r.salt)
	for begin := 0; begin < inputSize; begin += bitLength {
		end := begin + bitLength
		if end > inputSize {
			end = inputSize
		}
		r.keys = append(r.keys, strconv.Itoa(len(r.positions)))
		r.positions = append(r.positions, perm[begin:end])
	}
	return r, nil
}

func nthPrime(n int) uint32 {
	p := primegen.New()
	var prime uint64
	for i := 0; i <= n; i++ {
		prime = p.Next()
	}
	return uint32(prime)
}

// Punch gathers the input bits of every chunk. Positions past the end of a
// short input read as '0'.
func (r *Random) Punch(input string) []Card {
	var cards = make([]Card, len(r.positions))
	var buf = make([]byte, 0, r.bitLength)
	for i, chunk := range r.positions {
		buf = buf[:0]
		for _, pos := range chunk {
			if pos < len(input) {
				buf = append(buf, input[pos])
			} else {
				buf = append(buf, '0')
			}
		}
		cards[i] = Card{Key: r.keys[i], Input: string(buf)}
	}
	return cards
}

// Keys returns a copy of the key set.
func (r *Random) Keys() []string {
	return append([]string(nil), r.keys...)
}

// BitLength is the configured key-space bit length.
func (r *Random) BitLength() int {
	return r.bitLength
}

// Salt is the prime salt of the permutation.
func (r *Random) Salt() uint32 {
	return r.salt
}
