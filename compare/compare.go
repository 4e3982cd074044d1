// Package compare confronts Monte Carlo absorption profiles with the
// closed-form predictions of package theory.
//
// Run reproduces the classic two-panel check on the lattice [1, N]:
//
//	panel 1: asymmetric walk at r,   prediction theory.Asymmetric(r, N)
//	panel 2: symmetric walk at 1/2,  prediction theory.Symmetric(N)
//
// Each Panel carries per-site residuals plus the max-abs and RMS errors.
package compare

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/cdpwalk/absorb"
	"github.com/katalvlaran/cdpwalk/theory"
)

// ErrLength indicates mismatched input slices.
var ErrLength = errors.New("compare: sites, simulated and predicted must have equal non-zero length")

// Panel is one simulation-vs-prediction comparison.
type Panel struct {
	Right     float64   `json:"r"`
	N         int       `json:"n_sites"`
	Walkers   int       `json:"walkers"`
	Sites     []int     `json:"sites"`
	Simulated []float64 `json:"simulated"`
	Predicted []float64 `json:"predicted"`
	AbsErr    []float64 `json:"abs_err"`
	MaxAbsErr float64   `json:"max_abs_err"`
	RMSE      float64   `json:"rmse"`
}

// Report holds both panels of a comparison run.
type Report struct {
	Asymmetric Panel `json:"asymmetric"`
	Symmetric  Panel `json:"symmetric"`
}

// NewPanel computes residuals for aligned sites / simulated / predicted slices.
func NewPanel(sites []int, simulated, predicted []float64, right float64, walkers int) (Panel, error) {
	n := len(sites)
	if n == 0 || len(simulated) != n || len(predicted) != n {
		return Panel{}, ErrLength
	}

	p := Panel{
		Right:     right,
		N:         n,
		Walkers:   walkers,
		Sites:     append([]int(nil), sites...),
		Simulated: append([]float64(nil), simulated...),
		Predicted: append([]float64(nil), predicted...),
		AbsErr:    make([]float64, n),
	}
	var sq float64
	for i := range sites {
		d := math.Abs(simulated[i] - predicted[i])
		p.AbsErr[i] = d
		p.MaxAbsErr = math.Max(p.MaxAbsErr, d)
		sq += d * d
	}
	p.RMSE = math.Sqrt(sq / float64(n))

	return p, nil
}

// Run simulates and predicts both panels on [1, n].
//
// When r is exactly 1/2 the asymmetric prediction is undefined
// (theory.ErrSymmetric); the first panel then falls back to the symmetric
// prediction instead of failing.
//
// Errors: theory.ErrLattice, theory.ErrProbability, absorb/walk errors, ctx.Err().
func Run(ctx context.Context, r float64, n int, opts absorb.Options) (Report, error) {
	asymPred, err := theory.Asymmetric(r, n)
	if errors.Is(err, theory.ErrSymmetric) {
		asymPred, err = theory.Symmetric(n)
	}
	if err != nil {
		return Report{}, err
	}
	symPred, err := theory.Symmetric(n)
	if err != nil {
		return Report{}, err
	}

	asym, err := panel(ctx, r, n, asymPred, opts)
	if err != nil {
		return Report{}, fmt.Errorf("asymmetric panel: %w", err)
	}
	sym, err := panel(ctx, theory.Half, n, symPred, opts)
	if err != nil {
		return Report{}, fmt.Errorf("symmetric panel: %w", err)
	}

	return Report{Asymmetric: asym, Symmetric: sym}, nil
}

func panel(ctx context.Context, r float64, n int, pred []float64, opts absorb.Options) (Panel, error) {
	prof, err := absorb.Sweep(ctx, 1, n, r, opts)
	if err != nil {
		return Panel{}, err
	}

	return NewPanel(prof.Sites, prof.Pj, pred, r, opts.Walkers)
}
