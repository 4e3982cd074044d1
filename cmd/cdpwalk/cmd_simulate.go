package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/cdpwalk/absorb"
	"github.com/katalvlaran/cdpwalk/compare"
	"github.com/katalvlaran/cdpwalk/internal/config"
	"github.com/katalvlaran/cdpwalk/internal/store"
	"github.com/katalvlaran/cdpwalk/markov"
	"github.com/katalvlaran/cdpwalk/report"
	"github.com/katalvlaran/cdpwalk/theory"
	"github.com/katalvlaran/cdpwalk/walk"
)

// startFlag resolves --start, defaulting to the lattice midpoint.
func (a *app) startFlag(cmd *cobra.Command, start int) int {
	if cmd.Flags().Changed("start") {
		return start
	}

	return a.cfg.Lower + (a.cfg.Upper-a.cfg.Lower)/2
}

type walkResult struct {
	Params  walk.Params `json:"params"`
	Seed    int64       `json:"seed"`
	Site    int         `json:"site"`
	Steps   int         `json:"steps"`
	Barrier string      `json:"barrier"`
	Path    []int       `json:"path,omitempty"`
}

func newWalkCmd(a *app) *cobra.Command {
	var (
		start int
		trace bool
	)
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Run a single walker until it is absorbed",
		Long: `Runs one walker from --start (default: the lattice midpoint) and reports the
absorbing barrier and the number of steps. --trace also prints every visited site.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := walk.Params{
				Start: a.startFlag(cmd, start),
				Lower: a.cfg.Lower,
				Upper: a.cfg.Upper,
				Right: a.cfg.Right,
			}
			opts := walk.Options{MaxSteps: a.cfg.MaxSteps}
			rng := walk.NewRNG(a.cfg.Seed)

			res := walkResult{Params: p, Seed: a.cfg.Seed}
			if trace {
				path, err := walk.Trajectory(p, rng, opts)
				if err != nil {
					return err
				}
				res.Path = path
				res.Site = path[len(path)-1]
				res.Steps = len(path) - 1
			} else {
				out, err := walk.Absorb(p, rng, opts)
				if err != nil {
					return err
				}
				res.Site, res.Steps = out.Site, out.Steps
			}
			res.Barrier = "upper"
			if res.Site == p.Lower {
				res.Barrier = "lower"
			}
			a.logger.Debug("walk absorbed", zap.Int("site", res.Site), zap.Int("steps", res.Steps))

			rows := [][]string{
				{"start", fmtInt(p.Start)},
				{"site", fmtInt(res.Site)},
				{"barrier", res.Barrier},
				{"steps", fmtInt(res.Steps)},
			}
			if trace {
				rows = append(rows, []string{"path", fmt.Sprint(res.Path)})
			}

			return emit(cmd.OutOrStdout(), a.cfg.Format, res, []string{"field", "value"}, rows)
		},
	}
	cmd.Flags().IntVarP(&start, "start", "j", 0, "Starting site")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print the full trajectory")

	return cmd
}

type estimateResult struct {
	absorb.Estimate
	Predicted     float64 `json:"predicted"`
	ExpectedSteps float64 `json:"expected_steps"`
}

func newEstimateCmd(a *app) *cobra.Command {
	var start int
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate p_j for one starting site",
		Long: `Releases --walkers walkers from --start and reports the fraction absorbed at
the lower barrier, its standard error and the mean absorption time next to the
closed-form values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.runContext(cmd)
			defer cancel()

			p := walk.Params{
				Start: a.startFlag(cmd, start),
				Lower: a.cfg.Lower,
				Upper: a.cfg.Upper,
				Right: a.cfg.Right,
			}
			est, err := absorb.EstimatePj(ctx, p, a.absorbOptions())
			if err != nil {
				return err
			}
			pred, err := theory.AbsorptionAt(p.Start, p.Lower, p.Upper, p.Right)
			if err != nil {
				return err
			}
			dur, err := theory.MeanDuration(p.Start, p.Lower, p.Upper, p.Right)
			if err != nil {
				return err
			}
			a.logger.Info("estimate complete",
				zap.Int("start", p.Start),
				zap.Int("walkers", est.Walkers),
				zap.Float64("pj", est.Pj),
			)

			res := estimateResult{Estimate: est, Predicted: pred, ExpectedSteps: dur}
			rows := [][]string{
				{"start", fmtInt(p.Start)},
				{"walkers", fmtInt(est.Walkers)},
				{"at_lower", fmtInt(est.AtLower)},
				{"at_upper", fmtInt(est.AtUpper)},
				{"pj", fmtFloat(est.Pj)},
				{"std_err", fmtFloat(est.StdErr)},
				{"predicted", fmtFloat(pred)},
				{"mean_steps", fmtFloat(est.MeanSteps)},
				{"expected_steps", fmtFloat(dur)},
			}

			return emit(cmd.OutOrStdout(), a.cfg.Format, res, []string{"field", "value"}, rows)
		},
	}
	cmd.Flags().IntVarP(&start, "start", "j", 0, "Starting site")

	return cmd
}

type sweepResult struct {
	Profile       absorb.Profile `json:"profile"`
	Predicted     []float64      `json:"predicted"`
	Exact         []float64      `json:"exact"`
	ExpectedSteps []float64      `json:"expected_steps"`
	MaxAbsErr     float64        `json:"max_abs_err"`
	RMSE          float64        `json:"rmse"`
}

func newSweepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Estimate p_j for every site of the lattice",
		Long: `Estimates the whole absorption profile on [lower, upper] and lines it up with
the closed form and the absorbing-chain solution. The run is recorded in the
ledger unless --no-store is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.runContext(cmd)
			defer cancel()

			lower, upper, r := a.cfg.Lower, a.cfg.Upper, a.cfg.Right
			prof, err := absorb.Sweep(ctx, lower, upper, r, a.absorbOptions())
			if err != nil {
				return err
			}
			pred, err := theory.Profile(lower, upper, r)
			if err != nil {
				return err
			}
			chain := markov.Chain{Lower: lower, Upper: upper, Right: r}
			exact, err := chain.Absorption()
			if err != nil {
				return err
			}
			steps, err := chain.ExpectedSteps()
			if err != nil {
				return err
			}
			panel, err := compare.NewPanel(prof.Sites, prof.Pj, pred, r, a.cfg.Walkers)
			if err != nil {
				return err
			}
			a.logger.Info("sweep complete",
				zap.Int("sites", len(prof.Sites)),
				zap.Float64("max_abs_err", panel.MaxAbsErr),
				zap.Float64("rmse", panel.RMSE),
			)

			run, err := store.FromProfile(prof, pred, a.cfg.Walkers, a.cfg.Seed)
			if err != nil {
				return err
			}
			a.record(ctx, run)

			w := cmd.OutOrStdout()
			if a.cfg.Format == config.FormatCSV {
				return report.WritePanelCSV(w, store.PanelSweep, panel)
			}

			res := sweepResult{
				Profile:       prof,
				Predicted:     pred,
				Exact:         exact,
				ExpectedSteps: steps,
				MaxAbsErr:     panel.MaxAbsErr,
				RMSE:          panel.RMSE,
			}
			rows := make([][]string, len(prof.Sites))
			for i, est := range prof.Estimates {
				rows[i] = []string{
					fmtInt(prof.Sites[i]),
					fmtFloat(est.Pj),
					fmtFloat(est.StdErr),
					fmtFloat(pred[i]),
					fmtFloat(exact[i]),
					fmtFloat(est.MeanSteps),
					fmtFloat(steps[i]),
				}
			}
			headers := []string{"site", "simulated", "std_err", "predicted", "exact", "mean_steps", "expected_steps"}

			return emit(w, a.cfg.Format, res, headers, rows)
		},
	}
}
