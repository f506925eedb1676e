package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/errmsg"
	"github.com/handiism/album-catalog/internal/router"
	"github.com/handiism/album-catalog/internal/state"
	"github.com/handiism/album-catalog/internal/tui"
)

const sessionRetention = 30 * 24 * time.Hour

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	var sessionID string
	var resumeLast bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in an interactive terminal UI",
		Long: `Browse the catalog in an interactive terminal UI.

The navigation marker (list or detail) is stored per session. Pass
--session or --resume-last to reopen a previous session; a stale detail
marker is corrected back to the list once the catalog has loaded.

When stdout is not a terminal, browse prints the first page like list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return runList(cmd, ctx, filterFlags{}, 1, false)
			}
			return runBrowse(cmd, ctx, sessionID, resumeLast)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Navigation session id to resume")
	cmd.Flags().BoolVar(&resumeLast, "resume-last", false, "Resume the most recently used session")
	return cmd
}

func runBrowse(cmd *cobra.Command, ctx *commandContext, sessionID string, resumeLast bool) error {
	s, err := ctx.newSession(true)
	if err != nil {
		return err
	}

	store, err := openStore(s, sessionID, resumeLast)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			s.logger.Warn("failed to close state store", zap.Error(err))
			fmt.Fprintln(cmd.ErrOrStderr(), errmsg.FormatWith(errmsg.OpSaveNavigation, store.SessionID(), err))
		}
	}()

	rt := router.New(s.catalog, store, s.logger)
	err = tui.Run(cmd.Context(), tui.Deps{
		Loader:   s.pipeline,
		SheetURL: s.settings.SheetCSVURL,
		Catalog:  s.catalog,
		Router:   rt,
		Proxy:    s.proxy,
		Logger:   s.logger,
	})
	fmt.Fprintf(cmd.ErrOrStderr(), "session: %s\n", store.SessionID())
	return err
}

// openStore opens the navigation database for sessionID, for the most
// recent session when resumeLast is set, or for a new session.
func openStore(s *session, sessionID string, resumeLast bool) (*state.SQLiteStore, error) {
	if resumeLast && sessionID == "" {
		lookup, err := state.Open(s.settings.StateDB, "")
		if err != nil {
			return nil, fmt.Errorf("failed to %s: %w", errmsg.OpOpenState, err)
		}
		last, err := lookup.LatestSession()
		_ = lookup.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to %s: %w", errmsg.OpOpenState, err)
		}
		sessionID = last
	}

	store, err := state.Open(s.settings.StateDB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", errmsg.OpOpenState, err)
	}
	if n, err := store.Prune(sessionRetention); err != nil {
		s.logger.Warn("failed to prune old sessions", zap.Error(err))
	} else if n > 0 {
		s.logger.Debug("pruned old sessions", zap.Int64("count", n))
	}
	s.logger.Info("navigation session", zap.String("session", store.SessionID()))
	return store, nil
}
