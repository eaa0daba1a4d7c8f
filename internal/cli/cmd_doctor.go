package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Serapieum-of-alex/github-actions/internal/config"
	lockerrors "github.com/Serapieum-of-alex/github-actions/internal/errors"
	"github.com/Serapieum-of-alex/github-actions/internal/pixi"
)

func (a *app) newDoctorCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the package manager is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var overrides config.Overrides
			if cmd.Flags().Changed("tool") {
				overrides.Tool = &tool
			}
			settings, err := a.resolveSettings(config.ModeScan, overrides)
			if err != nil {
				return err
			}

			status := pixi.CheckTool(settings.Tool)
			if !status.Installed {
				for _, line := range pixi.InstallInstructions(settings.Tool, runtime.GOOS) {
					a.out.Errorln("%s", line)
				}
				return exitStatus(lockerrors.ExitFailure)
			}

			a.out.Success("%s is installed", settings.Tool)
			a.out.Println("  path: %s", status.Path)
			if status.Version != "" {
				a.out.Println("  version: %s", status.Version)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tool, "tool", config.DefaultTool, "package manager executable to check")
	return cmd
}
