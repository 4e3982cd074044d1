package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cdpwalk/internal/config"
	"github.com/katalvlaran/cdpwalk/internal/store"
)

// execute runs a fresh command tree and returns what it printed on stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "error")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestTheoryCommand_SymmetricJSON(t *testing.T) {
	out, err := execute(t, "theory", "-a", "1", "-b", "5", "-r", "0.5", "-f", "json", "--no-store")
	require.NoError(t, err)

	var res profileResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, res.Sites)
	assert.InDeltaSlice(t, []float64{1, 0.75, 0.5, 0.25, 0}, res.Pj, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 3, 4, 3, 0}, res.ExpectedSteps, 1e-12)
}

func TestExactCommand_MatchesTheory(t *testing.T) {
	args := []string{"-a", "0", "-b", "8", "-r", "0.6", "-f", "json", "--no-store"}
	out, err := execute(t, append([]string{"theory"}, args...)...)
	require.NoError(t, err)
	var th profileResult
	require.NoError(t, json.Unmarshal([]byte(out), &th))

	out, err = execute(t, append([]string{"exact"}, args...)...)
	require.NoError(t, err)
	var ex profileResult
	require.NoError(t, json.Unmarshal([]byte(out), &ex))

	assert.InDeltaSlice(t, th.Pj, ex.Pj, 1e-9)
	assert.InDeltaSlice(t, th.ExpectedSteps, ex.ExpectedSteps, 1e-9)
}

func TestExactCommand_Fundamental(t *testing.T) {
	out, err := execute(t, "exact", "-a", "0", "-b", "4", "-r", "0.5", "--fundamental", "-f", "json", "--no-store")
	require.NoError(t, err)

	var res exactResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, res.Sites)
	// symmetric walk on 0..4: N = [[1.5 1 .5] [1 2 1] [.5 1 1.5]]
	want := [][]float64{{1.5, 1, 0.5}, {1, 2, 1}, {0.5, 1, 1.5}}
	require.Len(t, res.Fundamental, 3)
	for i := range want {
		assert.InDeltaSlice(t, want[i], res.Fundamental[i], 1e-12)
	}
	require.Len(t, res.Absorption, 3)
	for i, row := range res.Absorption {
		assert.InDelta(t, res.Pj[i+1], row[0], 1e-12)
		assert.InDelta(t, 1, row[0]+row[1], 1e-12)
	}
}

func TestExactCommand_FundamentalTable(t *testing.T) {
	out, err := execute(t, "exact", "-a", "0", "-b", "2", "-r", "0.5", "--fundamental", "--no-store")
	require.NoError(t, err)
	// single interior site: N = [1], B = [0.5 0.5]
	assert.Contains(t, out, "1.0000")
	assert.Contains(t, out, "0.5000")
	assert.NotContains(t, out, "no transient sites")
}

func TestExactCommand_FundamentalNoInterior(t *testing.T) {
	out, err := execute(t, "exact", "-a", "3", "-b", "4", "-r", "0.3", "--fundamental", "--no-store")
	require.NoError(t, err)
	assert.Contains(t, out, "no transient sites")

	out, err = execute(t, "exact", "-a", "3", "-b", "4", "-r", "0.3", "--fundamental", "-f", "json", "--no-store")
	require.NoError(t, err)
	var res exactResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{3, 4}, res.Sites)
	assert.Nil(t, res.Fundamental)
	assert.Nil(t, res.Absorption)
}

func TestWalkCommand_TraceDeterministicDrift(t *testing.T) {
	out, err := execute(t, "walk", "-a", "1", "-b", "5", "-r", "1", "-j", "3", "--trace", "-f", "json", "--no-store")
	require.NoError(t, err)

	var res walkResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{3, 4, 5}, res.Path)
	assert.Equal(t, 5, res.Site)
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, "upper", res.Barrier)
}

func TestWalkCommand_TableDefaultsToMidpoint(t *testing.T) {
	out, err := execute(t, "walk", "-a", "0", "-b", "10", "-r", "0", "--no-store")
	require.NoError(t, err)
	assert.Contains(t, out, "lower")
	assert.Contains(t, out, "5")
}

func TestEstimateCommand_AllLeft(t *testing.T) {
	out, err := execute(t, "estimate", "-a", "1", "-b", "6", "-r", "0", "-j", "4", "-n", "50", "-f", "json", "--no-store")
	require.NoError(t, err)

	var res estimateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 50, res.Walkers)
	assert.Equal(t, 50, res.AtLower)
	assert.Equal(t, 1.0, res.Pj)
	assert.Equal(t, 1.0, res.Predicted)
	assert.InDelta(t, 3.0, res.MeanSteps, 1e-12)
	assert.InDelta(t, 3.0, res.ExpectedSteps, 1e-12)
}

func TestSweepCommand_RecordsRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	out, err := execute(t, "sweep", "-a", "1", "-b", "6", "-r", "0.6", "-n", "200", "--seed", "9", "--db", db, "-f", "json")
	require.NoError(t, err)

	var res sweepResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Profile.Sites, 6)
	assert.Equal(t, 1.0, res.Profile.Pj[0])
	assert.Equal(t, 0.0, res.Profile.Pj[5])
	assert.InDeltaSlice(t, res.Predicted, res.Exact, 1e-9)
	assert.Less(t, res.MaxAbsErr, 0.2)

	out, err = execute(t, "runs", "list", "--db", db, "-f", "json")
	require.NoError(t, err)
	var runs []store.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, store.KindSweep, runs[0].Kind)
	assert.Equal(t, int64(9), runs[0].Seed)
	assert.Equal(t, 200, runs[0].Walkers)

	out, err = execute(t, "runs", "show", runs[0].ID, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, runs[0].ID)
	assert.Contains(t, out, store.PanelSweep)
}

func TestSweepCommand_CSV(t *testing.T) {
	out, err := execute(t, "sweep", "-a", "0", "-b", "3", "-r", "0.5", "-n", "20", "-f", "csv", "--no-store")
	require.NoError(t, err)

	recs, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, "panel", recs[0][0])
	assert.Equal(t, store.PanelSweep, recs[1][0])
}

func TestSweepCommand_RejectsSVG(t *testing.T) {
	_, err := execute(t, "sweep", "-a", "0", "-b", "3", "-n", "10", "-f", "svg", "--no-store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestCompareCommand_WritesArtifact(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	out, err := execute(t, "compare", "-N", "4", "-r", "0.7", "-n", "40", "-f", "csv", "-o", dir, "--db", db)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(dir, "comparison_r_0.7_n_40_N_4.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	recs, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, recs, 1+2*4)

	out, err = execute(t, "runs", "list", "--db", db, "-f", "json")
	require.NoError(t, err)
	var runs []store.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, store.KindCompare, runs[0].Kind)
}

func TestCompareCommand_Table(t *testing.T) {
	out, err := execute(t, "compare", "-N", "3", "-r", "0.6", "-n", "10", "--no-store")
	require.NoError(t, err)
	assert.Contains(t, out, "asymmetric r=0.6000")
	assert.Contains(t, out, "symmetric r=0.5000")
}

func TestRunsShow_NotFound(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	_, err := execute(t, "runs", "show", "missing", "--db", db)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRootCommand_InvalidLattice(t *testing.T) {
	_, err := execute(t, "theory", "-a", "5", "-b", "1", "--no-store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lattice.lower")
}

func TestRootCommand_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cdpwalk.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
lattice:
  lower: 0
  upper: 4
  right: 0.5
output:
  format: json
store:
  enabled: false
`), 0o644))

	out, err := execute(t, "theory", "--config", cfgPath)
	require.NoError(t, err)
	var res profileResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 0, res.Lower)
	assert.Equal(t, 4, res.Upper)

	// flags win over the file
	out, err = execute(t, "theory", "--config", cfgPath, "-b", "2")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Upper)
}

func TestRootCommand_FlagsOverrideInvalidEnv(t *testing.T) {
	t.Setenv(config.EnvWalkers, "0")

	_, err := execute(t, "theory", "-a", "0", "-b", "3", "--no-store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walkers")

	out, err := execute(t, "estimate", "-a", "0", "-b", "3", "-r", "0", "-j", "1", "-n", "10", "-f", "json", "--no-store")
	require.NoError(t, err)
	var res estimateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 10, res.Walkers)
}

func TestApp_LogLevel(t *testing.T) {
	a := &app{cfg: &config.Config{LogLevel: "error"}}
	assert.Equal(t, "error", a.logLevel())

	a.flags.verbose = true
	assert.Equal(t, "debug", a.logLevel(), "--verbose wins over the configured level")
}
