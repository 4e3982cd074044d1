package absorb_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/cdpwalk/absorb"
	"github.com/katalvlaran/cdpwalk/walk"
)

// ExampleSweep estimates the profile of a walker that always steps right:
// only a walker born on the lower barrier can be absorbed there.
func ExampleSweep() {
	opts := absorb.Options{Walkers: 100, Workers: 2, Seed: 1}
	prof, err := absorb.Sweep(context.Background(), 1, 5, 1, opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(prof.Sites)
	fmt.Println(prof.Pj)
	// Output:
	// [1 2 3 4 5]
	// [1 0 0 0 0]
}

// ExampleEstimatePj shows the barrier shortcut.
func ExampleEstimatePj() {
	est, err := absorb.EstimatePj(context.Background(), walk.Params{Start: 0, Lower: 0, Upper: 4, Right: 0.5}, absorb.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("pj=%.1f lower=%d upper=%d\n", est.Pj, est.AtLower, est.AtUpper)
	// Output:
	// pj=1.0 lower=1000 upper=0
}
