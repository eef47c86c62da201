package bloom

import (
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"github.com/spaolacci/murmur3"
)

// Filter is a Bloom filter over case-insensitive words.
//
// Bit i of the filter is stored in byte i/8 of the payload under mask 0x80>>(i%8),
// so the most significant bit of a byte comes first. Redis SETBIT and BITFIELD
// use the same order, which lets RemoteFilter query a payload in place.
//
// A Filter is not safe for concurrent Add calls. Once it is built any number of
// goroutines may call Contains.
type Filter struct {
	params Params
	// holds ByteLen()*8 bits, the tail past params.Bits is padding
	bits *bitset.BitSet
}

// New returns an empty filter.
func New(hashRounds, bitCount uint) (*Filter, error) {
	params := Params{HashRounds: hashRounds, Bits: bitCount}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Filter{
		params: params,
		bits:   bitset.New(params.ByteLen() * 8),
	}, nil
}

// NewFromBytes restores a filter from a payload produced by Bytes.
// Bytes after the first ceil(bitCount/8) are ignored.
func NewFromBytes(hashRounds, bitCount uint, data []byte) (*Filter, error) {
	if err := (Params{HashRounds: hashRounds, Bits: bitCount}).Validate(); err != nil {
		return nil, err
	}
	if uint64(len(data))*8 < uint64(bitCount) {
		return nil, errors.Wrapf(ErrTruncatedData, "%d bytes can't hold %d bits", len(data), bitCount)
	}
	f, err := New(hashRounds, bitCount)
	if err != nil {
		return nil, err
	}
	for idx, b := range data[:f.params.ByteLen()] {
		if b == 0 {
			continue
		}
		for shift := uint(0); shift < 8; shift++ {
			if b&(0x80>>shift) != 0 {
				f.bits.Set(uint(idx)*8 + shift)
			}
		}
	}
	return f, nil
}

func (f *Filter) Params() Params {
	return f.params
}

func (f *Filter) HashRounds() uint {
	return f.params.HashRounds
}

func (f *Filter) BitCount() uint {
	return f.params.Bits
}

// IndexFor maps an item and a hash round to a bit position.
func (f *Filter) IndexFor(item string, round uint) uint {
	return f.params.indexFor(normalize(item), round)
}

// indexFor reduces the hash as a signed 32-bit value with a non-negative
// modulo, the way the word-list tooling does.
func (p Params) indexFor(normalized []byte, round uint) uint {
	h := int64(int32(murmur3.Sum32WithSeed(normalized, uint32(round))))
	idx := h % int64(p.Bits)
	if idx < 0 {
		idx += int64(p.Bits)
	}
	return uint(idx)
}

// offsets returns every bit position of an item, one per hash round
func (p Params) offsets(item string) []uint64 {
	normalized := normalize(item)
	offsets := make([]uint64, p.HashRounds)
	for round := uint(0); round < p.HashRounds; round++ {
		offsets[round] = uint64(p.indexFor(normalized, round))
	}
	return offsets
}

func normalize(item string) []byte {
	return []byte(strings.ToLower(item))
}

func (f *Filter) Add(item string) {
	normalized := normalize(item)
	for round := uint(0); round < f.params.HashRounds; round++ {
		f.bits.Set(f.params.indexFor(normalized, round))
	}
}

// Contains reports whether item may have been added.
// False positives are possible, false negatives are not.
func (f *Filter) Contains(item string) bool {
	normalized := normalize(item)
	for round := uint(0); round < f.params.HashRounds; round++ {
		if !f.bits.Test(f.params.indexFor(normalized, round)) {
			return false
		}
	}
	return true
}

// Bytes returns the packed bit array, exactly ceil(BitCount/8) bytes long.
func (f *Filter) Bytes() []byte {
	out := make([]byte, f.params.ByteLen())
	for i, ok := f.bits.NextSet(0); ok; i, ok = f.bits.NextSet(i + 1) {
		out[i>>3] |= 0x80 >> (i & 7)
	}
	return out
}

// WriteTo writes the packed bit array to stream.
func (f *Filter) WriteTo(stream io.Writer) (int64, error) {
	n, err := stream.Write(f.Bytes())
	return int64(n), err
}

// SetBits counts the addressable bits that are set.
func (f *Filter) SetBits() uint {
	var count uint
	for i, ok := f.bits.NextSet(0); ok && i < f.params.Bits; i, ok = f.bits.NextSet(i + 1) {
		count++
	}
	return count
}

// EstimatedFalsePositiveRate is the chance that a word never added is reported
// as present, given the current fill ratio.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	fill := float64(f.SetBits()) / float64(f.params.Bits)
	rate := 1.0
	for round := uint(0); round < f.params.HashRounds; round++ {
		rate *= fill
	}
	return rate
}
