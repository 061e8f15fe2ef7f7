// Package stats holds the statistical checks used to sanity test generator
// output: a chi-squared goodness of fit against the uniform distribution and
// plain sample summaries.
package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// MaxBuckets caps the bucket count of a uniformity check.
const MaxBuckets = 1 << 20

var (
	// ErrBuckets is returned for a bucket count outside 2..MaxBuckets.
	ErrBuckets = fmt.Errorf("stats: bucket count must be in 2..%d", MaxBuckets)

	// ErrSamples is returned for a non-positive sample count.
	ErrSamples = errors.New("stats: sample count must be > 0")
)

// Sampler draws a uniform integer in [0, n).
type Sampler interface {
	Uint64n(n uint64) (uint64, error)
}

// Uniformity is the outcome of a chi-squared test against the uniform
// distribution over K buckets.
type Uniformity struct {
	K         uint64   `json:"k"`
	N         int      `json:"n"`
	Counts    []uint64 `json:"counts,omitempty"`
	Statistic float64  `json:"statistic"`
	DF        int      `json:"df"`
	PValue    float64  `json:"p_value"`
}

// Reject reports whether uniformity is rejected at significance alpha.
func (u Uniformity) Reject(alpha float64) bool {
	return u.PValue < alpha
}

// ChiSquare tests counts against equal expected frequencies and returns the
// statistic, degrees of freedom and upper-tail p-value.
func ChiSquare(counts []uint64) (statistic float64, df int, p float64, err error) {
	if len(counts) < 2 || len(counts) > MaxBuckets {
		return 0, 0, 0, ErrBuckets
	}
	var total uint64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0, 0, 0, ErrSamples
	}
	expected := float64(total) / float64(len(counts))
	for _, c := range counts {
		d := float64(c) - expected
		statistic += d * d / expected
	}
	df = len(counts) - 1
	p = distuv.ChiSquared{K: float64(df)}.Survival(statistic)
	return statistic, df, p, nil
}

// CheckUniform draws n values in [0, k) from s and tests them for uniformity.
func CheckUniform(s Sampler, k uint64, n int) (Uniformity, error) {
	if k < 2 || k > MaxBuckets {
		return Uniformity{}, ErrBuckets
	}
	if n <= 0 {
		return Uniformity{}, ErrSamples
	}
	counts := make([]uint64, k)
	for i := 0; i < n; i++ {
		v, err := s.Uint64n(k)
		if err != nil {
			return Uniformity{}, fmt.Errorf("draw %d: %w", i, err)
		}
		if v >= k {
			return Uniformity{}, fmt.Errorf("draw %d: value %d out of range [0, %d)", i, v, k)
		}
		counts[v]++
	}
	statistic, df, p, err := ChiSquare(counts)
	if err != nil {
		return Uniformity{}, err
	}
	return Uniformity{K: k, N: n, Counts: counts, Statistic: statistic, DF: df, PValue: p}, nil
}
