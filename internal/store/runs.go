package store

import (
	"math"

	"github.com/katalvlaran/cdpwalk/absorb"
	"github.com/katalvlaran/cdpwalk/compare"
	"github.com/katalvlaran/cdpwalk/report"
)

// PanelSweep labels the rows of a sweep run.
const PanelSweep = "sweep"

// FromReport converts a comparison report into a Run. Run-level errors are
// the worse of the two panels.
func FromReport(rep compare.Report, seed int64) Run {
	a, s := rep.Asymmetric, rep.Symmetric
	run := Run{
		Kind:      KindCompare,
		Right:     a.Right,
		Walkers:   a.Walkers,
		Seed:      seed,
		MaxAbsErr: math.Max(a.MaxAbsErr, s.MaxAbsErr),
		RMSE:      math.Max(a.RMSE, s.RMSE),
	}
	if len(a.Sites) > 0 {
		run.Lower, run.Upper = a.Sites[0], a.Sites[len(a.Sites)-1]
	}
	run.Sites = appendPanel(run.Sites, report.LabelAsymmetric, a)
	run.Sites = appendPanel(run.Sites, report.LabelSymmetric, s)

	return run
}

func appendPanel(dst []Site, label string, p compare.Panel) []Site {
	for i, site := range p.Sites {
		dst = append(dst, Site{Panel: label, Site: site, Simulated: p.Simulated[i], Predicted: p.Predicted[i]})
	}

	return dst
}

// FromProfile converts a sweep profile and its aligned prediction into a Run.
func FromProfile(prof absorb.Profile, predicted []float64, walkers int, seed int64) (Run, error) {
	panel, err := compare.NewPanel(prof.Sites, prof.Pj, predicted, prof.Right, walkers)
	if err != nil {
		return Run{}, err
	}

	return Run{
		Kind:      KindSweep,
		Lower:     prof.Lower,
		Upper:     prof.Upper,
		Right:     prof.Right,
		Walkers:   walkers,
		Seed:      seed,
		MaxAbsErr: panel.MaxAbsErr,
		RMSE:      panel.RMSE,
		Sites:     appendPanel(nil, PanelSweep, panel),
	}, nil
}
