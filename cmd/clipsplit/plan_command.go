package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipsplit/internal/jobs"
	"clipsplit/internal/naming"
	"clipsplit/internal/scan"
	"clipsplit/internal/transcode"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "List the ffmpeg commands a run would execute",
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
			sources, err := scan.Videos(root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sources) == 0 {
				fmt.Fprintf(out, "No videos (%v) found in %s\n", scan.Extensions(), root)
				return nil
			}

			portrait, rotate := cfg.OutputRoots(root)
			roots := jobs.Roots{Portrait: portrait, Rotate: rotate}
			var rows [][]string
			for _, src := range sources {
				base, err := naming.Base(src.Name)
				if err != nil {
					rows = append(rows, []string{src.Name, "-", "skipped", err.Error()})
					continue
				}
				for _, job := range jobs.Build(src, base, roots) {
					rows = append(rows, []string{
						src.Name,
						job.Variant.String(),
						job.Output,
						transcode.FormatCommand(cfg.FFmpeg.Binary, transcode.Args(job)),
					})
				}
			}
			fmt.Fprintln(out, renderTable(planColumns, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory to plan (defaults to the current directory)")
	return cmd
}
