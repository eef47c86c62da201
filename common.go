package bloom

import (
	"math"

	"github.com/pkg/errors"
)

// Params are the two values needed to interpret a persisted payload.
// They travel separately from the bits, see ReadParams and WriteParams.
type Params struct {
	HashRounds uint `json:"hash_round_count" yaml:"hash_round_count"`
	Bits       uint `json:"bit_count" yaml:"bit_count"`
}

// OptimalParameters derives the filter size and number of hash rounds for
// expectedElements items at the targeted false-positive rate.
func OptimalParameters(expectedElements uint64, falsePositiveRate float64) (Params, error) {
	if expectedElements == 0 {
		return Params{}, errors.Wrap(ErrInvalidParameter, "expected elements count must be positive")
	}
	if !(falsePositiveRate > 0 && falsePositiveRate < 1) {
		return Params{}, errors.Wrapf(ErrInvalidParameter, "false-positive rate %v is outside of (0, 1)", falsePositiveRate)
	}
	n := float64(expectedElements)
	bits := math.Ceil(-n * math.Log(falsePositiveRate) / (math.Ln2 * math.Ln2))
	if bits > float64(math.MaxUint32)*8 {
		return Params{}, errors.Wrapf(ErrInvalidParameter, "%v bits do not fit into memory", bits)
	}
	hashRounds := math.Max(1, math.Round(math.Ln2*bits/n))
	return Params{HashRounds: uint(hashRounds), Bits: uint(bits)}, nil
}

func (p Params) Validate() error {
	if p.HashRounds < 1 {
		return errors.Wrap(ErrInvalidParameter, "hash round count must be positive")
	}
	if p.Bits < 1 {
		return errors.Wrap(ErrInvalidParameter, "bit count must be positive")
	}
	return nil
}

// ByteLen is the packed payload length, ceil(Bits/8).
func (p Params) ByteLen() uint {
	return (p.Bits + 7) / 8
}

// FalsePositiveRate is the theoretical rate after n distinct insertions.
func (p Params) FalsePositiveRate(n uint64) float64 {
	if p.Bits == 0 {
		return 1
	}
	k := float64(p.HashRounds)
	return math.Pow(1-math.Exp(-k*float64(n)/float64(p.Bits)), k)
}

// Checker answers membership queries for a single word.
type Checker interface {
	Contains(item string) bool
}

// Missing returns the words the checker does not know, keeping their order.
func Missing(c Checker, words []string) []string {
	var missing []string
	for _, w := range words {
		if !c.Contains(w) {
			missing = append(missing, w)
		}
	}
	return missing
}
