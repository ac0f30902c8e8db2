// rts runs deterministic unit-movement scenarios in the terminal.
//
// Usage:
//
//	rts list               - List available scenarios
//	rts run <scenario>     - Run a scenario headless and print its sync hash
//	rts watch <scenario>   - Watch a scenario in the terminal viewer
//	rts menu               - Pick scenarios interactively
//	rts history [scenario] - Show recorded runs
//	rts verify <scenario>  - Re-run a recorded run and compare sync hashes
//	rts serve              - Start SSH server for remote viewing
//
// Global flags:
//
//	--tps <rate>       - Viewer tick rate (default: 25)
//	--seed <value>     - Override the scenario seed
//	--db <path>        - Run database (default: ~/.rts/runs.db)
//	--rules <path>     - Custom rules YAML
//	--scenarios <dir>  - Load extra scenario files from a directory
//	--log-level <lvl>  - debug, info, warn or error
//	--log-file <path>  - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/OpenRA/OpenRA-sub026/internal/config"
	"github.com/OpenRA/OpenRA-sub026/internal/core"
	"github.com/OpenRA/OpenRA-sub026/internal/registry"
	"github.com/OpenRA/OpenRA-sub026/internal/scenario"
	"github.com/OpenRA/OpenRA-sub026/internal/world"
)

var (
	// Global flags
	flagTPS         int
	flagSeed        int64
	flagDBPath      string
	flagRules       string
	flagScenarioDir string
	flagLogLevel    string
	flagLogFile     string
)

// logger is the CLI logger, configured before every command runs.
var logger = world.DiscardLogger()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rts",
	Short: "Deterministic unit movement scenarios in your terminal",
	Long: `rts runs scripted scenarios of units moving over a cell grid with a
lockstep-safe simulation: every run with the same seed produces the same
sync hashes on every machine.

Available commands:
  list     - Show all available scenarios
  run      - Run a scenario headless
  watch    - Watch a scenario in the terminal viewer
  menu     - Interactive scenario picker
  history  - Show recorded runs
  verify   - Replay a recorded run and compare hashes
  serve    - Start SSH server for remote viewing

Examples:
  rts list
  rts run crossing --record
  rts watch detour --tps 50
  rts verify crossing
  rts serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", core.DefaultConfig().TickRate, "Viewer tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = scenario seed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rts/runs.db", "Path to run database")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagScenarioDir, "scenarios", "", "Directory with extra scenario files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup configures logging, rules and extra scenarios for every command.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logger = world.NewLogger(f, level)
	case interactive(cmd):
		// Log lines would corrupt the viewer.
		logger = world.DiscardLogger()
	default:
		logger = world.NewLogger(os.Stderr, level)
	}
	scenario.UseLogger(logger)

	rules, err := config.LoadRules(flagRules)
	if err != nil {
		return err
	}
	scenario.UseRules(rules)
	logger.Debug("rules loaded", "units", rules.UnitTypes())

	if flagScenarioDir != "" {
		defs, err := scenario.NewLoader(flagScenarioDir).LoadAll()
		if err != nil {
			return err
		}
		for _, def := range defs {
			if registry.Exists(def.ID) {
				logger.Warn("scenario already registered, skipping", "id", def.ID, "file", def.FilePath)
				continue
			}
			scenario.Register(def)
			logger.Debug("scenario loaded", "id", def.ID, "file", def.FilePath)
		}
	}
	return nil
}

func interactive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "watch", "menu":
		return true
	}
	return false
}

// runtimeConfig builds the viewer config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagTPS
	cfg.Seed = flagSeed
	return cfg
}

// createRunner looks up a registered scenario.
func createRunner(id string) (*scenario.Runner, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown scenario %q (run 'rts list' to see available scenarios)", id)
	}
	sim, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	r, ok := sim.(*scenario.Runner)
	if !ok {
		return nil, fmt.Errorf("scenario %q cannot run headless", id)
	}
	return r, nil
}
