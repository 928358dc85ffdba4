package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipsplit/internal/batch"
	"clipsplit/internal/jobs"
	"clipsplit/internal/logging"
	"clipsplit/internal/transcode"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every video in the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx, dirFlag)
		},
	}
	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory to process (defaults to the current directory)")
	return cmd
}

func runBatch(cmd *cobra.Command, ctx *commandContext, dir string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	root, err := workDir(dir)
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	var tcOpts []transcode.Option
	if cfg.Logging.Level == "debug" {
		tcOpts = append(tcOpts, transcode.WithStderr(cmd.ErrOrStderr()))
	}
	tc, err := transcode.New(cfg.FFmpeg.Binary, tcOpts...)
	if err != nil {
		return err
	}
	portrait, rotate := cfg.OutputRoots(root)
	opts := []batch.Option{batch.WithLogger(logger)}
	if cfg.FFmpeg.Probe {
		opts = append(opts, batch.WithProber(batch.FFprobe{Binary: cfg.FFmpeg.FFprobeBinary}))
	}
	runner := batch.New(root, jobs.Roots{Portrait: portrait, Rotate: rotate}, tc, opts...)
	if ctx.configPath != "" {
		logger.Debug("configuration loaded", logging.String("config_path", ctx.configPath))
	}

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summary := renderSummary(report); summary != "" {
		fmt.Fprintln(out, summary)
	}
	for _, line := range skippedLines(report, shouldColorize(out)) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Done. Results in '%s/' and '%s/'\n", cfg.Paths.PortraitDir, cfg.Paths.RotateDir)
	return nil
}
