package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a batch of samples.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// Summarize computes population mean/variance and empirical percentiles.
// xs is not modified.
func Summarize(xs []float64) Summary {
	n := len(xs)
	if n == 0 {
		return Summary{}
	}
	mean, variance := stat.PopMeanVariance(xs, nil)

	cp := slices.Clone(xs)
	slices.Sort(cp)
	q := func(p float64) float64 {
		return stat.Quantile(p, stat.Empirical, cp, nil)
	}
	return Summary{
		N:      n,
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		Min:    cp[0],
		Max:    cp[n-1],
		P50:    q(0.50),
		P90:    q(0.90),
		P99:    q(0.99),
	}
}
