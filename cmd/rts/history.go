package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/OpenRA/OpenRA-sub026/internal/storage"
)

var (
	flagHistoryLimit int
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show recorded runs",
	Long: `List recorded runs, newest first. Without a scenario a summary of
every scenario is printed before the list.

Examples:
  rts history
  rts history crossing --limit 5
  rts history crossing --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs to list")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the runs of the given scenario")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	scenarioID := ""
	if len(args) == 1 {
		scenarioID = args[0]
	}

	if flagClear {
		if scenarioID == "" {
			return fmt.Errorf("--clear needs a scenario")
		}
		if err := store.ClearRuns(scenarioID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs of %s.\n", scenarioID)
		return nil
	}

	if scenarioID == "" {
		stats, err := store.AllScenarioStats()
		if err != nil {
			return err
		}
		if len(stats) > 0 {
			fmt.Printf("  %-12s  %5s  %5s  %9s  %s\n", "Scenario", "Runs", "Seeds", "Max ticks", "Last run")
			fmt.Printf("  %-12s  %5s  %5s  %9s  %s\n", "--------", "----", "-----", "---------", "--------")
			for _, id := range sortedKeys(stats) {
				s := stats[id]
				fmt.Printf("  %-12s  %5d  %5d  %9d  %s\n", id, s.Runs, s.Seeds, s.MaxTicks, s.LastRun.Format("2006-01-02 15:04"))
			}
			fmt.Println()
		}
	}

	runs, err := store.Runs(scenarioID, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println("Run 'rts run <id> --record' or watch a scenario to the end.")
		return nil
	}

	fmt.Printf("  %5s  %-12s  %12s  %6s  %-16s  %s\n", "Run", "Scenario", "Seed", "Ticks", "Final sync", "Date")
	fmt.Printf("  %5s  %-12s  %12s  %6s  %-16s  %s\n", "---", "--------", "----", "-----", "----------", "----")
	for _, r := range runs {
		fmt.Printf("  %5d  %-12s  %12d  %6d  %016x  %s\n",
			r.ID, r.ScenarioID, r.Seed, r.Ticks, r.FinalHash, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func sortedKeys(m map[string]*storage.ScenarioStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
