package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/handiism/album-catalog/internal/filter"
)

func newGenresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the genre facet values with record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.newSession(false)
			if err != nil {
				return err
			}
			if err := s.load(cmd.Context(), warnTo(cmd.ErrOrStderr())); err != nil {
				return err
			}

			records := s.catalog.Records()
			genres := s.catalog.Genres()
			rows := make([][]string, len(genres))
			for i, g := range genres {
				n := len(filter.Filter(records, "", filter.NewGenreSet(g)))
				rows[i] = []string{g, humanize.Comma(int64(n))}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Genre", "Albums"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}
