package main

import (
	"github.com/spf13/cobra"

	"github.com/OpenRA/OpenRA-sub026/internal/platform/tui"
	"github.com/OpenRA/OpenRA-sub026/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario>",
	Short: "Watch a scenario in the terminal viewer",
	Long: `Play the scenario in the terminal. Runs that reach the end are
recorded in the run database.

Controls:
  Space/P    - Pause
  N/Right    - Step one tick while paused
  +/-        - Faster/slower
  R          - Restart with the same seed
  S          - Restart with a new seed
  T/Tab      - Toggle the unit table
  Q/Ctrl+C   - Quit

Examples:
  rts watch crossing
  rts watch convoy --tps 60 --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(_ *cobra.Command, args []string) error {
	r, err := createRunner(args[0])
	if err != nil {
		return err
	}

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	_, err = tui.Run(r, store, runtimeConfig())
	return err
}

// openStoreOrWarn opens the run database; the viewer works without one.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		return nil
	}
	return store
}
