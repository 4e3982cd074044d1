package report_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cdpwalk/compare"
	"github.com/katalvlaran/cdpwalk/report"
)

func sampleReport(t *testing.T) compare.Report {
	t.Helper()
	asym, err := compare.NewPanel([]int{1, 2, 3}, []float64{1, 0.45, 0}, []float64{1, 0.4, 0}, 0.6, 100)
	require.NoError(t, err)
	sym, err := compare.NewPanel([]int{1, 2, 3}, []float64{1, 0.52, 0}, []float64{1, 0.5, 0}, 0.5, 100)
	require.NoError(t, err)

	return compare.Report{Asymmetric: asym, Symmetric: sym}
}

// TestWriteCSV checks header, row count and one formatted row.
func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sampleReport(t)))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 7)
	assert.Equal(t, []string{"panel", "r", "site", "simulated", "predicted", "abs_err"}, recs[0])
	assert.Equal(t, []string{"asymmetric", "0.6", "2", "0.45", "0.4"}, recs[2][:5])
	assert.Equal(t, "symmetric", recs[6][0])
	assert.Equal(t, "3", recs[6][2])
}

// TestWriteJSON round-trips the report through encoding/json.
func TestWriteJSON(t *testing.T) {
	rep := sampleReport(t)
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, rep))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	var back compare.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, rep, back)
}

// TestWriteSVG checks that the chart is well-formed XML with one marker pair per site.
func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteSVG(&buf, sampleReport(t)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "Asymmetric case with n = 100 walkers and r = 0.6")
	assert.Contains(t, out, "Symmetric case with n = 100 walkers")
	// 3 sites x 2 panels + 2 legend entries
	assert.Equal(t, 8, strings.Count(out, "<circle"))

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
}

// TestFileName follows the comparison_r_<r>_n_<n>_N_<N> convention.
func TestFileName(t *testing.T) {
	assert.Equal(t, "comparison_r_0.6_n_1000_N_10.svg", report.FileName(0.6, 1000, 10, "svg"))
	assert.Equal(t, "comparison_r_0.5_n_5_N_3.csv", report.FileName(0.5, 5, 3, "csv"))
}

// TestWritePanelCSV writes one labelled panel.
func TestWritePanelCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WritePanelCSV(&buf, "sweep", sampleReport(t).Symmetric))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, []string{"sweep", "0.5", "2", "0.52", "0.5"}, recs[2][:5])
}
