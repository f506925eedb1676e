package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/router"
	"github.com/handiism/album-catalog/internal/server"
	"github.com/handiism/album-catalog/internal/state"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string
	var sessionID string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON API with Prometheus metrics",
		Long: `Serve the catalog as a JSON API with Prometheus metrics.

The server answers immediately; /api/status reports "loading" until the
sheet has been ingested. The navigation marker lives in memory unless
--session binds it to the state database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.newSession(false)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = s.settings.Server.Addr
			}

			var store router.MarkerStore = state.NewMemoryStore("")
			if sessionID != "" {
				db, err := state.Open(s.settings.StateDB, sessionID)
				if err != nil {
					return err
				}
				defer func() {
					if err := db.Close(); err != nil {
						s.logger.Warn("failed to close state store", zap.Error(err))
					}
				}()
				store = db
			}

			metrics := server.NewMetrics()
			s.pipeline.OnResult(metrics.ObserveIngest)

			rt := router.New(s.catalog, store, s.logger)
			srv := server.New(s.catalog, rt, s.proxy, metrics, s.logger)

			go func() {
				srv.Populate(s.pipeline.Load(cmd.Context(), s.settings.SheetCSVURL))
			}()

			fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s\n", addr)
			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
	cmd.Flags().StringVar(&sessionID, "session", "", "Persist the navigation marker under this session id")
	return cmd
}
