package bloom

import (
	"math"
	"testing"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/pkg/errors"
	requireLib "github.com/stretchr/testify/require"
)

func TestOptimalParameters(t *testing.T) {
	cases := []struct {
		name     string
		expected uint64
		rate     float64
		params   Params
	}{
		{name: "thousand at 1%", expected: 1000, rate: 0.01, params: Params{HashRounds: 7, Bits: 9586}},
		{name: "two at 25%", expected: 2, rate: 0.25, params: Params{HashRounds: 2, Bits: 6}},
		{name: "two at 50%", expected: 2, rate: 0.5, params: Params{HashRounds: 1, Bits: 3}},
		{name: "single element", expected: 1, rate: 0.9, params: Params{HashRounds: 1, Bits: 1}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			params, err := OptimalParameters(tc.expected, tc.rate)
			requireLib.NoError(t, err)
			requireLib.Equal(t, tc.params, params)
		})
	}
}

func TestOptimalParametersMatchReferenceSizing(t *testing.T) {
	require := requireLib.New(t)
	for _, n := range []uint64{1, 10, 1000, 123456} {
		for _, p := range []float64{0.3, 0.01, 0.001, 0.0001} {
			params, err := OptimalParameters(n, p)
			require.NoError(err)

			m, k := bloom.EstimateParameters(uint(n), p)
			require.Equalf(m, params.Bits, "bits for n=%d p=%v", n, p)
			// reference rounds the hash count up, we round to nearest
			require.LessOrEqualf(params.HashRounds, k, "hash rounds for n=%d p=%v", n, p)
			require.GreaterOrEqualf(params.HashRounds+1, k, "hash rounds for n=%d p=%v", n, p)
		}
	}
}

func TestOptimalParametersValidation(t *testing.T) {
	for _, tc := range []struct {
		expected uint64
		rate     float64
	}{
		{0, 0.01},
		{10, 0},
		{10, 1},
		{10, -0.5},
		{10, 1.5},
		{10, math.NaN()},
	} {
		_, err := OptimalParameters(tc.expected, tc.rate)
		requireLib.Truef(t, errors.Is(err, ErrInvalidParameter), "n=%d p=%v: unexpected error %v", tc.expected, tc.rate, err)
	}
}

func TestParams(t *testing.T) {
	require := requireLib.New(t)
	require.Equal(uint(1), Params{Bits: 1}.ByteLen())
	require.Equal(uint(1), Params{Bits: 8}.ByteLen())
	require.Equal(uint(2), Params{Bits: 9}.ByteLen())

	require.True(errors.Is(Params{Bits: 8}.Validate(), ErrInvalidParameter))
	require.True(errors.Is(Params{HashRounds: 1}.Validate(), ErrInvalidParameter))
	require.NoError(Params{HashRounds: 1, Bits: 1}.Validate())

	params, err := OptimalParameters(1000, 0.01)
	require.NoError(err)
	require.InDelta(0.01, params.FalsePositiveRate(1000), 0.001)
	require.Less(params.FalsePositiveRate(100), params.FalsePositiveRate(1000))
}
