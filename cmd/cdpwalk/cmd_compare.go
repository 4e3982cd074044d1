package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/cdpwalk/compare"
	"github.com/katalvlaran/cdpwalk/internal/config"
	"github.com/katalvlaran/cdpwalk/internal/store"
	"github.com/katalvlaran/cdpwalk/report"
)

func newCompareCmd(a *app) *cobra.Command {
	var sites int
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare simulation and theory for r and for r = 1/2",
		Long: `Sweeps every start j = 1..N twice, once with the configured r and once with
r = 1/2, and compares each profile with its closed-form prediction.

--format table prints both panels. csv, json and svg write
comparison_r_<r>_n_<walkers>_N_<N>.<ext> into --out and print its path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.runContext(cmd)
			defer cancel()

			n := a.cfg.Upper - a.cfg.Lower + 1
			if cmd.Flags().Changed("sites") {
				n = sites
			}
			rep, err := compare.Run(ctx, a.cfg.Right, n, a.absorbOptions())
			if err != nil {
				return err
			}
			a.logger.Info("comparison complete",
				zap.Int("sites", n),
				zap.Float64("r", a.cfg.Right),
				zap.Float64("asymmetric_max_abs_err", rep.Asymmetric.MaxAbsErr),
				zap.Float64("symmetric_max_abs_err", rep.Symmetric.MaxAbsErr),
			)
			a.record(ctx, store.FromReport(rep, a.cfg.Seed))

			w := cmd.OutOrStdout()
			if a.cfg.Format == config.FormatTable {
				return printPanels(w, rep)
			}

			path, err := a.writeArtifact(rep, n)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, path)

			return err
		},
	}
	cmd.Flags().IntVarP(&sites, "sites", "N", 0, "Lattice size N (default upper-lower+1)")

	return cmd
}

// writeArtifact writes rep in the configured format and returns the file path.
func (a *app) writeArtifact(rep compare.Report, n int) (path string, err error) {
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path = filepath.Join(a.cfg.OutputDir, report.FileName(a.cfg.Right, a.cfg.Walkers, n, a.cfg.Format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	switch a.cfg.Format {
	case config.FormatCSV:
		err = report.WriteCSV(f, rep)
	case config.FormatJSON:
		err = report.WriteJSON(f, rep)
	case config.FormatSVG:
		err = report.WriteSVG(f, rep)
	default:
		err = fmt.Errorf("format %q is not supported by this command", a.cfg.Format)
	}
	if err != nil {
		return "", err
	}
	a.logger.Debug("artifact written", zap.String("path", path))

	return path, nil
}

func printPanels(w io.Writer, rep compare.Report) error {
	for _, p := range []struct {
		label string
		panel compare.Panel
	}{
		{report.LabelAsymmetric, rep.Asymmetric},
		{report.LabelSymmetric, rep.Symmetric},
	} {
		if _, err := fmt.Fprintf(w, "%s r=%s walkers=%d max_abs_err=%s rmse=%s\n",
			p.label, fmtFloat(p.panel.Right), p.panel.Walkers,
			fmtFloat(p.panel.MaxAbsErr), fmtFloat(p.panel.RMSE)); err != nil {
			return err
		}
		rows := make([][]string, len(p.panel.Sites))
		for i, site := range p.panel.Sites {
			rows[i] = []string{
				fmtInt(site),
				fmtFloat(p.panel.Simulated[i]),
				fmtFloat(p.panel.Predicted[i]),
				fmtFloat(p.panel.AbsErr[i]),
			}
		}
		if err := renderTable(w, []string{"site", "simulated", "predicted", "abs_err"}, rows); err != nil {
			return err
		}
	}

	return nil
}
