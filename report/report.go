// Package report exports comparison results as CSV, JSON or an SVG chart.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/cdpwalk/compare"
)

// Panel labels used in CSV rows and SVG titles.
const (
	LabelAsymmetric = "asymmetric"
	LabelSymmetric  = "symmetric"
)

// csvHeader is the first CSV record.
var csvHeader = []string{"panel", "r", "site", "simulated", "predicted", "abs_err"}

// WriteCSV writes one row per site and panel.
func WriteCSV(w io.Writer, rep compare.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("report: csv header: %w", err)
	}
	if err := writePanelRows(cw, LabelAsymmetric, rep.Asymmetric); err != nil {
		return err
	}
	if err := writePanelRows(cw, LabelSymmetric, rep.Symmetric); err != nil {
		return err
	}
	cw.Flush()

	return cw.Error()
}

// WritePanelCSV writes a single panel with the same header as WriteCSV.
func WritePanelCSV(w io.Writer, label string, p compare.Panel) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("report: csv header: %w", err)
	}
	if err := writePanelRows(cw, label, p); err != nil {
		return err
	}
	cw.Flush()

	return cw.Error()
}

func writePanelRows(cw *csv.Writer, label string, p compare.Panel) error {
	for i, site := range p.Sites {
		rec := []string{
			label,
			formatFloat(p.Right),
			strconv.Itoa(site),
			formatFloat(p.Simulated[i]),
			formatFloat(p.Predicted[i]),
			formatFloat(p.AbsErr[i]),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("report: csv row: %w", err)
		}
	}

	return nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: json: %w", err)
	}

	return nil
}

// FileName returns the conventional base name of a comparison artifact,
// e.g. comparison_r_0.6_n_1000_N_10.svg.
func FileName(r float64, walkers, sites int, ext string) string {
	return fmt.Sprintf("comparison_r_%s_n_%d_N_%d.%s", formatFloat(r), walkers, sites, ext)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
