package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"clipsplit/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg, ffprobe, and directory access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := workDir(dirFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(cfg, root)
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range checkLines(results, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderDetailLine("Probe enabled", yesNo(cfg.FFmpeg.Probe)))
			if preflight.AnyBlocking(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory to check (defaults to the current directory)")
	return cmd
}
