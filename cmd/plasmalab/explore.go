package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/plasmalab/internal/config"
	"github.com/san-kum/plasmalab/internal/tui"
)

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [plasma preset]",
		Short: "interactive explorer of characteristic plasma scales",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := cfg.Plasma
			if len(args) == 1 {
				p, ok := config.GetPlasmaPreset(args[0])
				if !ok {
					return fmt.Errorf("unknown plasma preset %q, see plasmalab presets", args[0])
				}
				start = p
			}
			params, err := plasmaParams(start)
			if err != nil {
				return err
			}

			presets := make(map[string]tui.Params)
			for _, name := range config.ListPlasmaPresets() {
				pc, _ := config.GetPlasmaPreset(name)
				p, err := plasmaParams(pc)
				if err != nil {
					return fmt.Errorf("preset %s: %w", name, err)
				}
				presets[name] = p
			}
			return tui.Run(params, presets)
		},
	}
}

func plasmaParams(pc config.PlasmaConfig) (tui.Params, error) {
	p, err := pc.Parse()
	if err != nil {
		return tui.Params{}, err
	}
	return tui.FromPlasma(p)
}
