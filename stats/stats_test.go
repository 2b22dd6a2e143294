package stats_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ZombieAlex/za-utils/stats"
)

const epsilon = 1e-9

func TestMean(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		xs   []float64
		want float64
	}{
		{"Single", []float64{5}, 5},
		{"Several", []float64{1, 2, 3, 4}, 2.5},
		{"Negative", []float64{-2, 2}, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := stats.Mean(tt.xs); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Mean(%v) = %v, want %v", tt.xs, got, tt.want)
			}
		})
	}

	if got := stats.Mean(nil); !math.IsNaN(got) {
		t.Errorf("Mean(nil) = %v, want NaN", got)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	xs := []float64{15, 20, 35, 40, 50}
	for _, tt := range []struct {
		name string
		p    float64
		want float64
	}{
		{"P0", 0, 15},
		{"P25", 25, 20},
		{"P50", 50, 35},
		{"P100", 100, 50},
		{"Interpolated", 40, 29}, // rank 1.6 between 20 and 35
		{"ClampedLow", -10, 15},
		{"ClampedHigh", 200, 50},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := stats.Percentile(xs, tt.p); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Percentile(%v, %v) = %v, want %v", xs, tt.p, got, tt.want)
			}
		})
	}

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		t.Parallel()

		unsorted := []float64{3, 1, 2}
		stats.Percentile(unsorted, 50)
		if df := cmp.Diff([]float64{3, 1, 2}, unsorted); df != "" {
			t.Errorf("input mutated (-want +got):\n%s", df)
		}
	})

	if got := stats.Percentile(nil, 50); !math.IsNaN(got) {
		t.Errorf("Percentile(nil) = %v, want NaN", got)
	}
}

func TestMedian(t *testing.T) {
	t.Parallel()

	if got := stats.Median([]float64{9, 1, 5}); got != 5 {
		t.Errorf("Median(odd) = %v, want 5", got)
	}
	if got := stats.Median([]float64{1, 2, 3, 4}); math.Abs(got-2.5) > epsilon {
		t.Errorf("Median(even) = %v, want 2.5", got)
	}
}

func TestStdDev(t *testing.T) {
	t.Parallel()

	// Population stddev of 2,4,4,4,5,5,7,9 is exactly 2.
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := stats.StdDev(xs); math.Abs(got-2) > epsilon {
		t.Errorf("StdDev(%v) = %v, want 2", xs, got)
	}
	if got := stats.Variance(xs); math.Abs(got-4) > epsilon {
		t.Errorf("Variance(%v) = %v, want 4", xs, got)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	xs := []float64{15, 20, 35, 40, 50}
	got := stats.Summarize(xs)
	want := stats.Summary{
		Count:  5,
		Min:    15,
		Max:    50,
		Mean:   32,
		Median: 35,
		P90:    46,
		P95:    48,
		P99:    49.6,
		StdDev: stats.StdDev(xs),
	}
	if df := cmp.Diff(want, got, cmpopts.EquateApprox(0, epsilon)); df != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", df)
	}

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()

		empty := stats.Summarize(nil)
		if empty.Count != 0 {
			t.Errorf("Count = %d, want 0", empty.Count)
		}
		for name, v := range map[string]float64{
			"Min": empty.Min, "Max": empty.Max, "Mean": empty.Mean,
			"Median": empty.Median, "P90": empty.P90, "P95": empty.P95,
			"P99": empty.P99, "StdDev": empty.StdDev,
		} {
			if !math.IsNaN(v) {
				t.Errorf("%s = %v for empty input, want NaN", name, v)
			}
		}
	})
}
