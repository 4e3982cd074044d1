package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/katalvlaran/cdpwalk/internal/config"
	"github.com/katalvlaran/cdpwalk/report"
)

// renderTable writes a bordered plain-text table.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.String())

	return err
}

// emit writes v as JSON or as the given table, depending on format.
// Formats without a meaning for the command are rejected.
func emit(w io.Writer, format string, v any, headers []string, rows [][]string) error {
	switch format {
	case config.FormatJSON:
		return report.WriteJSON(w, v)
	case config.FormatTable:
		return renderTable(w, headers, rows)
	default:
		return fmt.Errorf("format %q is not supported by this command", format)
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func fmtInt(v int) string {
	return strconv.Itoa(v)
}
