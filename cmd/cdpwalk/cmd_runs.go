package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cdpwalk/internal/config"
	"github.com/katalvlaran/cdpwalk/internal/store"
	"github.com/katalvlaran/cdpwalk/report"
)

func newRunsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the run ledger",
	}
	cmd.AddCommand(newRunsListCmd(a), newRunsShowCmd(a))

	return cmd
}

func (a *app) openStore() (*store.Store, error) {
	s, err := store.Open(a.cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open run ledger %s: %w", a.cfg.StorePath, err)
	}

	return s, nil
}

func newRunsListCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.runContext(cmd)
			defer cancel()

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			runs, err := s.List(ctx, limit)
			if err != nil {
				return err
			}
			if runs == nil {
				runs = []store.Run{}
			}

			rows := make([][]string, len(runs))
			for i, r := range runs {
				rows[i] = []string{
					r.ID,
					r.Kind,
					r.CreatedAt.Format(time.RFC3339),
					fmt.Sprintf("[%d, %d]", r.Lower, r.Upper),
					fmtFloat(r.Right),
					fmtInt(r.Walkers),
					fmtFloat(r.MaxAbsErr),
				}
			}
			headers := []string{"id", "kind", "created", "lattice", "r", "walkers", "max_abs_err"}

			return emit(cmd.OutOrStdout(), a.cfg.Format, runs, headers, rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 = all)")

	return cmd
}

func newRunsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show one run with its per-site rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.runContext(cmd)
			defer cancel()

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			run, err := s.Get(ctx, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.cfg.Format == config.FormatJSON {
				return report.WriteJSON(w, run)
			}
			if a.cfg.Format != config.FormatTable {
				return fmt.Errorf("format %q is not supported by this command", a.cfg.Format)
			}
			if _, err := fmt.Fprintf(w, "%s %s lattice=[%d, %d] r=%s walkers=%d seed=%d max_abs_err=%s rmse=%s\n",
				run.ID, run.Kind, run.Lower, run.Upper, fmtFloat(run.Right), run.Walkers, run.Seed,
				fmtFloat(run.MaxAbsErr), fmtFloat(run.RMSE)); err != nil {
				return err
			}
			rows := make([][]string, len(run.Sites))
			for i, st := range run.Sites {
				rows[i] = []string{st.Panel, fmtInt(st.Site), fmtFloat(st.Simulated), fmtFloat(st.Predicted)}
			}

			return renderTable(w, []string{"panel", "site", "simulated", "predicted"}, rows)
		},
	}
}
