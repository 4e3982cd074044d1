// Command cdpwalk simulates biased random walks between two absorbing
// barriers and compares the Monte Carlo absorption profile with the
// closed-form gambler's-ruin prediction.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/cdpwalk/absorb"
	"github.com/katalvlaran/cdpwalk/internal/config"
	"github.com/katalvlaran/cdpwalk/internal/logging"
	"github.com/katalvlaran/cdpwalk/internal/store"
)

// flagValues holds raw command-line values; only flags the user actually set
// override the loaded configuration.
type flagValues struct {
	configPath string
	verbose    bool
	dbPath     string
	noStore    bool
	format     string
	outDir     string
	timeout    time.Duration

	walkers  int
	workers  int
	seed     int64
	maxSteps int

	lower int
	upper int
	right float64
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	flags  flagValues
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "cdpwalk",
		Short: "Random walks with two absorbing barriers",
		Long: `cdpwalk releases independent walkers on the lattice [a, b]. Each step goes
right with probability r and left with probability 1-r, and a walker stops
the moment it reaches a or b.

The fraction of walkers absorbed at a estimates p_j, which is checked against
the gambler's-ruin closed form and against the absorbing Markov chain.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "YAML config file")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&a.flags.dbPath, "db", "", "SQLite run ledger path (or set "+config.EnvDB+")")
	pf.BoolVar(&a.flags.noStore, "no-store", false, "Do not record runs in the ledger")
	pf.StringVarP(&a.flags.format, "format", "f", "", "Output format: table, csv, json or svg")
	pf.StringVarP(&a.flags.outDir, "out", "o", "", "Directory for compare artifacts")
	pf.DurationVar(&a.flags.timeout, "timeout", 0, "Overall timeout (default from config)")
	pf.IntVarP(&a.flags.walkers, "walkers", "n", 0, "Walkers per starting site")
	pf.IntVar(&a.flags.workers, "workers", 0, "Worker goroutines (0 = all CPUs)")
	pf.Int64Var(&a.flags.seed, "seed", 0, "Base seed (0 = default seed)")
	pf.IntVar(&a.flags.maxSteps, "max-steps", 0, "Per-walker step cap (0 = unbounded)")
	pf.IntVarP(&a.flags.lower, "lower", "a", 0, "Lower absorbing barrier")
	pf.IntVarP(&a.flags.upper, "upper", "b", 0, "Upper absorbing barrier")
	pf.Float64VarP(&a.flags.right, "right", "r", 0, "Probability of a right step")

	root.AddCommand(
		newWalkCmd(a),
		newEstimateCmd(a),
		newSweepCmd(a),
		newTheoryCmd(a),
		newExactCmd(a),
		newCompareCmd(a),
		newRunsCmd(a),
	)

	return root
}

// setup loads configuration, applies flag overrides, validates the result
// and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.applyFlags(cmd)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(a.logLevel())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config", a.flags.configPath),
		zap.Int("walkers", a.cfg.Walkers),
		zap.Int("workers", a.cfg.Workers),
		zap.Int64("seed", a.cfg.Seed),
		zap.Int("lower", a.cfg.Lower),
		zap.Int("upper", a.cfg.Upper),
		zap.Float64("right", a.cfg.Right),
		zap.String("format", a.cfg.Format),
	)

	return nil
}

// logLevel resolves the effective level: --verbose wins over the config
// file and CDPWALK_LOG_LEVEL, both already folded into cfg.LogLevel.
func (a *app) logLevel() string {
	if a.flags.verbose {
		return "debug"
	}

	return a.cfg.LogLevel
}

func (a *app) applyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("db") {
		a.cfg.StorePath = a.flags.dbPath
	}
	if a.flags.noStore {
		a.cfg.StoreEnabled = false
	}
	if f.Changed("format") {
		a.cfg.Format = a.flags.format
	}
	if f.Changed("out") {
		a.cfg.OutputDir = a.flags.outDir
	}
	if f.Changed("timeout") && a.flags.timeout > 0 {
		a.cfg.Timeout = a.flags.timeout
	}
	if f.Changed("walkers") {
		a.cfg.Walkers = a.flags.walkers
	}
	if f.Changed("workers") {
		a.cfg.Workers = a.flags.workers
	}
	if f.Changed("seed") {
		a.cfg.Seed = a.flags.seed
	}
	if f.Changed("max-steps") {
		a.cfg.MaxSteps = a.flags.maxSteps
	}
	if f.Changed("lower") {
		a.cfg.Lower = a.flags.lower
	}
	if f.Changed("upper") {
		a.cfg.Upper = a.flags.upper
	}
	if f.Changed("right") {
		a.cfg.Right = a.flags.right
	}
}

// runContext bounds a command by the configured timeout and SIGINT/SIGTERM.
func (a *app) runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)

	return ctx, func() {
		cancel()
		stop()
	}
}

func (a *app) absorbOptions() absorb.Options {
	return absorb.Options{
		Walkers:  a.cfg.Walkers,
		Workers:  a.cfg.Workers,
		Seed:     a.cfg.Seed,
		MaxSteps: a.cfg.MaxSteps,
	}
}

// record saves run in the ledger when the store is enabled. Ledger failures
// are logged, not returned: the computed result has already been printed.
func (a *app) record(ctx context.Context, run store.Run) {
	if !a.cfg.StoreEnabled {
		return
	}
	s, err := store.Open(a.cfg.StorePath)
	if err != nil {
		a.logger.Warn("run ledger unavailable", zap.String("path", a.cfg.StorePath), zap.Error(err))
		return
	}
	defer func() { _ = s.Close() }()

	saved, err := s.Save(ctx, run)
	if err != nil {
		a.logger.Warn("failed to record run", zap.Error(err))
		return
	}
	a.logger.Info("run recorded",
		zap.String("id", saved.ID),
		zap.String("kind", saved.Kind),
		zap.Float64("max_abs_err", saved.MaxAbsErr),
	)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
