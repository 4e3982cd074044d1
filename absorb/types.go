// SPDX-License-Identifier: MIT

package absorb

import (
	"errors"
	"runtime"

	"github.com/katalvlaran/cdpwalk/walk"
)

var (
	// ErrNoWalkers indicates a non-positive walker count.
	ErrNoWalkers = errors.New("absorb: walkers must be > 0")

	// ErrWorkers indicates a negative worker count.
	ErrWorkers = errors.New("absorb: workers must be >= 0")

	// ErrLatticeTooWide indicates a Sweep over more than MaxSites sites,
	// including widths that overflow int.
	ErrLatticeTooWide = errors.New("absorb: lattice too wide to sweep")
)

const (
	// DefaultWalkers is the ensemble size used by DefaultOptions.
	DefaultWalkers = 1000

	// MaxSites caps the number of starting sites in one Sweep.
	MaxSites = 1 << 20
)

// Options configures an ensemble run.
//
// Fields:
//   - Walkers:  number of independent walkers n (> 0).
//   - Workers:  goroutines sharing the walkers; 0 means runtime.GOMAXPROCS(0).
//   - Seed:     base seed; walker i uses walk.DeriveSeed(Seed, i).
//   - MaxSteps: per-walker step cap forwarded to walk.Options (0 = unbounded).
type Options struct {
	Walkers  int   `json:"walkers" yaml:"walkers"`
	Workers  int   `json:"workers" yaml:"workers"`
	Seed     int64 `json:"seed" yaml:"seed"`
	MaxSteps int   `json:"max_steps" yaml:"max_steps"`
}

// DefaultOptions returns DefaultWalkers walkers spread over all CPUs with seed 0.
func DefaultOptions() Options {
	return Options{
		Walkers: DefaultWalkers,
		Workers: runtime.GOMAXPROCS(0),
	}
}

func (o Options) validate() error {
	if o.Walkers <= 0 {
		return ErrNoWalkers
	}
	if o.Workers < 0 {
		return ErrWorkers
	}

	return nil
}

// Estimate is the Monte Carlo result for one starting site.
//
//   - Pj:        AtLower / Walkers.
//   - StdErr:    binomial standard error sqrt(Pj·(1−Pj)/Walkers).
//   - MeanSteps: mean absorption time over all walkers.
type Estimate struct {
	Params    walk.Params `json:"params"`
	Walkers   int         `json:"walkers"`
	AtLower   int         `json:"at_lower"`
	AtUpper   int         `json:"at_upper"`
	Pj        float64     `json:"pj"`
	StdErr    float64     `json:"std_err"`
	MeanSteps float64     `json:"mean_steps"`
}

// Profile is the absorption profile over every site of [Lower, Upper].
// Sites[k] = Lower + k and Pj[k] = Estimates[k].Pj.
type Profile struct {
	Lower     int        `json:"lower"`
	Upper     int        `json:"upper"`
	Right     float64    `json:"right"`
	Sites     []int      `json:"sites"`
	Pj        []float64  `json:"pj"`
	Estimates []Estimate `json:"estimates"`
}
