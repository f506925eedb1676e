package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/handiism/album-catalog/internal/catalog"
	"github.com/handiism/album-catalog/internal/errmsg"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var pages int
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered catalog as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, ctx, filters, pages, all)
		},
	}

	addFilterFlags(cmd, &filters)
	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to show (page size from config)")
	cmd.Flags().BoolVar(&all, "all", false, "Show every matching record")
	return cmd
}

func addFilterFlags(cmd *cobra.Command, filters *filterFlags) {
	cmd.Flags().StringVarP(&filters.query, "query", "q", "", "Free-text search over artist, album, genre and tracks")
	cmd.Flags().StringSliceVarP(&filters.genres, "genre", "g", nil, "Genre facet (repeatable; any selected genre matches)")
}

func runList(cmd *cobra.Command, ctx *commandContext, filters filterFlags, pages int, all bool) error {
	s, err := ctx.newSession(false)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := s.load(cmd.Context(), warnTo(cmd.ErrOrStderr())); err != nil {
		return err
	}

	cat := s.catalog
	filters.apply(cat)
	for i := 1; i < pages || (all && cat.HasMore()); i++ {
		if !cat.LoadMore() {
			break
		}
	}

	fmt.Fprintln(out, cat.CountLine())
	if cat.Total() == 0 {
		fmt.Fprintln(out, errmsg.NoticeNoMatches)
		return nil
	}
	fmt.Fprintln(out, recordTable(cat))
	if cat.HasMore() {
		fmt.Fprintf(out, "%d more; use --pages or --all\n", cat.Total()-cat.Shown())
	}
	return nil
}

func recordTable(cat *catalog.Catalog) string {
	window := cat.Window()
	rows := make([][]string, len(window))
	for i, r := range window {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			r.Artist,
			r.DisplayAlbum(),
			r.Year,
			r.Genre,
			strconv.Itoa(len(r.Tracks)),
		}
	}
	return renderTable(
		[]string{"#", "Artist", "Album", "Year", "Genre", "Tracks"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
	)
}

func warnTo(w io.Writer) func(string) {
	return func(msg string) {
		fmt.Fprintln(w, "warning:", msg)
	}
}
