package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/album-catalog/internal/cover"
	"github.com/handiism/album-catalog/internal/errmsg"
)

func newCoversCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var concurrency int
	var size int

	cmd := &cobra.Command{
		Use:   "covers <dir>",
		Short: "Download the covers of the filtered list as JPEG files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.newSession(false)
			if err != nil {
				return err
			}
			if err := s.load(cmd.Context(), warnTo(cmd.ErrOrStderr())); err != nil {
				return err
			}
			filters.apply(s.catalog)

			opts := cover.ExportOptions{
				MaxConcurrent: s.settings.Export.MaxConcurrent,
				MaxSize:       s.settings.Export.MaxSize,
			}
			if concurrency > 0 {
				opts.MaxConcurrent = concurrency
			}
			if size > 0 {
				opts.MaxSize = size
			}

			stderr := cmd.ErrOrStderr()
			exporter := cover.NewExporter(s.client, opts, func(e cover.ProgressEvent) {
				if e.Level == cover.LevelVerbose && !ctx.flags.verbose {
					return
				}
				fmt.Fprintf(stderr, "[%s] %s\n", e.Level, e.Message)
			})

			summary, err := exporter.Export(cmd.Context(), s.catalog.Filtered(), args[0])
			if err != nil {
				return fmt.Errorf("failed to %s: %w", errmsg.OpExportCovers, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d, skipped %d, failed %d\n",
				summary.Exported, summary.Skipped, summary.Failed)
			if summary.Failed > 0 {
				return fmt.Errorf("%d covers failed", summary.Failed)
			}
			return nil
		},
	}

	addFilterFlags(cmd, &filters)
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Parallel downloads (default from export.max_concurrent)")
	cmd.Flags().IntVar(&size, "size", 0, "Maximum cover edge in pixels (default from export.max_size)")
	return cmd
}
