package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/album-catalog/internal/cover"
	"github.com/handiism/album-catalog/internal/model"
	"github.com/handiism/album-catalog/internal/router"
	"github.com/handiism/album-catalog/internal/state"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "show <n>",
		Short: "Show one record of the filtered list (n as printed by list)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid record number %q", args[0])
			}

			s, err := ctx.newSession(false)
			if err != nil {
				return err
			}
			if err := s.load(cmd.Context(), warnTo(cmd.ErrOrStderr())); err != nil {
				return err
			}
			filters.apply(s.catalog)

			rt := router.New(s.catalog, state.NewMemoryStore(""), s.logger)
			if !rt.OpenIndex(n - 1) {
				return fmt.Errorf("record %d not found; %s", n, s.catalog.CountLine())
			}
			rec, _ := s.catalog.CurrentItem()
			fmt.Fprint(cmd.OutOrStdout(), renderDetail(rec, s.proxy))
			return nil
		},
	}

	addFilterFlags(cmd, &filters)
	return cmd
}

func renderDetail(r model.Record, proxy *cover.Proxy) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n", r.DisplayAlbum(), r.Artist)
	if meta := r.Meta(); meta != "" {
		fmt.Fprintln(&b, meta)
	}
	fmt.Fprintf(&b, "Cover: %s\n", proxy.OrPlaceholder(proxy.Large(r.Cover)))
	if set := proxy.SrcSet(r.Cover); set != "" {
		fmt.Fprintf(&b, "Srcset: %s\n", set)
	}
	if len(r.Tracks) > 0 {
		b.WriteString("\n")
		for i, t := range r.Tracks {
			fmt.Fprintf(&b, "%2d. %s\n", i+1, t)
		}
	}
	return b.String()
}
