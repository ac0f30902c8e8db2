package main

import (
	"github.com/spf13/cobra"

	"github.com/OpenRA/OpenRA-sub026/internal/platform/tui"
	"github.com/OpenRA/OpenRA-sub026/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenarios interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to watch a scenario and Tab to
browse recorded runs. Esc in the viewer returns to the menu.

Examples:
  rts menu
  rts menu --tps 50 --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsHistory:
			goBack, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			sim, err := registry.Create(res.ScenarioID)
			if err != nil {
				return err
			}
			goBack, err := tui.Run(sim, store, cfg)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
		}
	}
}
