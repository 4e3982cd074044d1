package absorb_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/cdpwalk/absorb"
	"github.com/katalvlaran/cdpwalk/walk"
)

// benchmarkEstimate runs EstimatePj with a fixed ensemble and the given worker count.
func benchmarkEstimate(b *testing.B, workers int) {
	p := walk.Params{Start: 10, Lower: 0, Upper: 20, Right: 0.5}
	opts := absorb.Options{Walkers: 2000, Workers: workers, Seed: 1}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := absorb.EstimatePj(ctx, p, opts); err != nil {
			b.Fatalf("EstimatePj failed: %v", err)
		}
	}
}

// BenchmarkEstimatePj_OneWorker benchmarks the serial path.
func BenchmarkEstimatePj_OneWorker(b *testing.B) { benchmarkEstimate(b, 1) }

// BenchmarkEstimatePj_AllCPUs benchmarks the default fan-out.
func BenchmarkEstimatePj_AllCPUs(b *testing.B) { benchmarkEstimate(b, 0) }
