// SPDX-License-Identifier: MIT

package absorb

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/cdpwalk/walk"
)

// ctxCheckEvery is how many walkers a worker simulates between context checks.
const ctxCheckEvery = 64

// tally is the per-worker accumulator; workers never share one.
type tally struct {
	lower int
	steps int64
}

// EstimatePj estimates the probability that a walker starting at p.Start is
// absorbed at p.Lower.
//
// Implementation:
//   - Stage 1 (Validate): walk.Validate(p), then options.
//   - Stage 2 (Shortcut): Start == Lower ⇒ Pj = 1, Start == Upper ⇒ Pj = 0; nothing is simulated.
//   - Stage 3 (Execute): split [0, Walkers) into contiguous chunks, one per worker;
//     walker i draws from walk.DeriveSeed(opts.Seed, i).
//   - Stage 4 (Finalize): merge tallies in worker order and derive Pj, StdErr, MeanSteps.
//
// Errors:
//   - walk sentinels, ErrNoWalkers, ErrWorkers.
//   - walk.ErrStepLimit (wrapped with the walker index) when MaxSteps is hit.
//   - ctx.Err() on cancellation.
func EstimatePj(ctx context.Context, p walk.Params, opts Options) (Estimate, error) {
	if err := walk.Validate(p); err != nil {
		return Estimate{}, err
	}
	if err := opts.validate(); err != nil {
		return Estimate{}, err
	}
	if err := ctx.Err(); err != nil {
		return Estimate{}, err
	}

	n := opts.Walkers
	switch p.Start {
	case p.Lower:
		return finalize(p, n, tally{lower: n}), nil
	case p.Upper:
		return finalize(p, n, tally{}), nil
	}

	workers := opts.Workers
	if workers == 0 {
		workers = DefaultOptions().Workers
	}
	if workers > n {
		workers = n
	}

	tallies := make([]tally, workers)
	chunk := (n + workers - 1) / workers
	wopts := walk.Options{MaxSteps: opts.MaxSteps}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		from, to := w*chunk, min((w+1)*chunk, n)
		if from >= to {
			break
		}
		slot := &tallies[w]
		g.Go(func() error {
			return simulate(gctx, p, opts.Seed, from, to, wopts, slot)
		})
	}
	if err := g.Wait(); err != nil {
		return Estimate{}, err
	}

	var total tally
	for _, t := range tallies {
		total.lower += t.lower
		total.steps += t.steps
	}

	return finalize(p, n, total), nil
}

// simulate runs walkers [from, to) and accumulates into out.
func simulate(ctx context.Context, p walk.Params, seed int64, from, to int, opts walk.Options, out *tally) error {
	for i := from; i < to; i++ {
		if (i-from)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		res, err := walk.Absorb(p, walk.NewRNG(walk.DeriveSeed(seed, uint64(i))), opts)
		if err != nil {
			return fmt.Errorf("walker %d: %w", i, err)
		}
		if res.AtLower() {
			out.lower++
		}
		out.steps += int64(res.Steps)
	}

	return nil
}

func finalize(p walk.Params, n int, t tally) Estimate {
	pj := float64(t.lower) / float64(n)

	return Estimate{
		Params:    p,
		Walkers:   n,
		AtLower:   t.lower,
		AtUpper:   n - t.lower,
		Pj:        pj,
		StdErr:    math.Sqrt(pj * (1 - pj) / float64(n)),
		MeanSteps: float64(t.steps) / float64(n),
	}
}

// Sweep estimates p_j for every j in [lower, upper], in increasing order.
// Site k (j = lower + k) uses walk.DeriveSeed(opts.Seed, k) as its base seed,
// so each site draws an independent ensemble.
//
// Errors: walk sentinels, ErrLatticeTooWide, and anything EstimatePj returns.
//
// Complexity: (upper−lower+1) EstimatePj calls.
func Sweep(ctx context.Context, lower, upper int, right float64, opts Options) (Profile, error) {
	if err := walk.Validate(walk.Params{Start: lower, Lower: lower, Upper: upper, Right: right}); err != nil {
		return Profile{}, err
	}
	if w := upper - lower; w <= 0 || w >= MaxSites {
		return Profile{}, fmt.Errorf("%w: lower=%d upper=%d", ErrLatticeTooWide, lower, upper)
	}

	size := upper - lower + 1
	prof := Profile{
		Lower:     lower,
		Upper:     upper,
		Right:     right,
		Sites:     make([]int, size),
		Pj:        make([]float64, size),
		Estimates: make([]Estimate, size),
	}
	for k := 0; k < size; k++ {
		siteOpts := opts
		siteOpts.Seed = walk.DeriveSeed(opts.Seed, uint64(k))
		est, err := EstimatePj(ctx, walk.Params{Start: lower + k, Lower: lower, Upper: upper, Right: right}, siteOpts)
		if err != nil {
			return Profile{}, fmt.Errorf("site %d: %w", lower+k, err)
		}
		prof.Sites[k] = lower + k
		prof.Pj[k] = est.Pj
		prof.Estimates[k] = est
	}

	return prof, nil
}
