package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cdpwalk/internal/config"
	"github.com/katalvlaran/cdpwalk/markov"
	"github.com/katalvlaran/cdpwalk/matrix"
	"github.com/katalvlaran/cdpwalk/report"
	"github.com/katalvlaran/cdpwalk/theory"
)

type profileResult struct {
	Lower         int       `json:"lower"`
	Upper         int       `json:"upper"`
	Right         float64   `json:"r"`
	Sites         []int     `json:"sites"`
	Pj            []float64 `json:"pj"`
	ExpectedSteps []float64 `json:"expected_steps"`
}

func (p profileResult) rows() [][]string {
	rows := make([][]string, len(p.Sites))
	for i, site := range p.Sites {
		rows[i] = []string{fmtInt(site), fmtFloat(p.Pj[i]), fmtFloat(p.ExpectedSteps[i])}
	}

	return rows
}

var profileHeaders = []string{"site", "pj", "expected_steps"}

func sitesOf(lower, upper int) []int {
	sites := make([]int, upper-lower+1)
	for i := range sites {
		sites[i] = lower + i
	}

	return sites
}

func newTheoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theory",
		Short: "Print the closed-form absorption profile",
		Long: `Prints p_j and the expected absorption time for every site of [lower, upper]
from the gambler's-ruin formulas. No walkers are simulated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lower, upper, r := a.cfg.Lower, a.cfg.Upper, a.cfg.Right
			pj, err := theory.Profile(lower, upper, r)
			if err != nil {
				return err
			}
			res := profileResult{Lower: lower, Upper: upper, Right: r, Sites: sitesOf(lower, upper), Pj: pj}
			res.ExpectedSteps = make([]float64, len(res.Sites))
			for i, site := range res.Sites {
				if res.ExpectedSteps[i], err = theory.MeanDuration(site, lower, upper, r); err != nil {
					return err
				}
			}

			return emit(cmd.OutOrStdout(), a.cfg.Format, res, profileHeaders, res.rows())
		},
	}
}

func newExactCmd(a *app) *cobra.Command {
	var fundamental bool
	cmd := &cobra.Command{
		Use:   "exact",
		Short: "Solve the absorbing Markov chain",
		Long: `Builds the transition matrix of the walk on [lower, upper], inverts I - Q and
prints the absorption probabilities B = N*R and expected times t = N*1.
--fundamental also prints the fundamental matrix N and B = N*R.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := markov.Chain{Lower: a.cfg.Lower, Upper: a.cfg.Upper, Right: a.cfg.Right}
			pj, err := chain.Absorption()
			if err != nil {
				return err
			}
			steps, err := chain.ExpectedSteps()
			if err != nil {
				return err
			}
			res := profileResult{
				Lower:         chain.Lower,
				Upper:         chain.Upper,
				Right:         chain.Right,
				Sites:         sitesOf(chain.Lower, chain.Upper),
				Pj:            pj,
				ExpectedSteps: steps,
			}
			if !fundamental {
				return emit(cmd.OutOrStdout(), a.cfg.Format, res, profileHeaders, res.rows())
			}

			return emitFundamental(cmd.OutOrStdout(), a.cfg.Format, chain, res)
		},
	}
	cmd.Flags().BoolVar(&fundamental, "fundamental", false, "Also print the fundamental matrix and B = N*R")

	return cmd
}

// exactResult adds N and B = N*R to the exact profile. Both are nil when
// the lattice has no interior site.
type exactResult struct {
	profileResult
	Fundamental [][]float64 `json:"fundamental"`
	Absorption  [][]float64 `json:"absorption"`
}

// emitFundamental writes res followed by N and B, as one JSON document or as
// three tables labelled by interior site.
func emitFundamental(w io.Writer, format string, chain markov.Chain, res profileResult) error {
	out := exactResult{profileResult: res}
	n, err := chain.Fundamental()
	switch {
	case errors.Is(err, markov.ErrNoTransient):
		if format == config.FormatJSON {
			return report.WriteJSON(w, out)
		}
		if err := emit(w, format, res, profileHeaders, res.rows()); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, "no transient sites")
		return err
	case err != nil:
		return err
	}
	b, err := chain.AbsorptionMatrix()
	if err != nil {
		return err
	}
	if out.Fundamental, err = rowsOf(n); err != nil {
		return err
	}
	if out.Absorption, err = rowsOf(b); err != nil {
		return err
	}
	if format == config.FormatJSON {
		return report.WriteJSON(w, out)
	}

	if err := emit(w, format, res, profileHeaders, res.rows()); err != nil {
		return err
	}
	sites := sitesOf(chain.Lower+1, chain.Upper-1)
	headers := []string{"N"}
	for _, s := range sites {
		headers = append(headers, fmtInt(s))
	}
	if err := renderMatrix(w, headers, sites, out.Fundamental); err != nil {
		return err
	}

	return renderMatrix(w, []string{"B", fmtInt(chain.Lower), fmtInt(chain.Upper)}, sites, out.Absorption)
}

func rowsOf(m *matrix.Dense) ([][]float64, error) {
	rows := make([][]float64, m.Rows())
	for i := range rows {
		row, err := m.Row(i)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}

	return rows, nil
}

func renderMatrix(w io.Writer, headers []string, sites []int, m [][]float64) error {
	rows := make([][]string, len(m))
	for i, vals := range m {
		rows[i] = append(rows[i], fmtInt(sites[i]))
		for _, v := range vals {
			rows[i] = append(rows[i], fmtFloat(v))
		}
	}

	return renderTable(w, headers, rows)
}
