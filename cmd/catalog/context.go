package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/catalog"
	"github.com/handiism/album-catalog/internal/collation"
	"github.com/handiism/album-catalog/internal/config"
	"github.com/handiism/album-catalog/internal/cover"
	"github.com/handiism/album-catalog/internal/errmsg"
	"github.com/handiism/album-catalog/internal/filter"
	"github.com/handiism/album-catalog/internal/http"
	"github.com/handiism/album-catalog/internal/ingest"
	"github.com/handiism/album-catalog/internal/logging"
)

type rootFlags struct {
	config  string
	sheet   string
	verbose bool
}

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	settings   *config.Settings
	configErr  error

	logger *zap.Logger
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Settings, error) {
	c.configOnce.Do(func() {
		settings, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = fmt.Errorf("failed to %s: %w", errmsg.OpLoadConfig, err)
			return
		}
		if c.flags.sheet != "" {
			settings.SheetCSVURL = strings.TrimSpace(c.flags.sheet)
		}
		if err := settings.Validate(false); err != nil {
			c.configErr = err
			return
		}
		c.settings = settings
	})
	return c.settings, c.configErr
}

// initLogger builds the logger. tuiOwnsTerminal redirects output to a log
// file so it does not tear the alternate screen.
func (c *commandContext) initLogger(tuiOwnsTerminal bool) (*zap.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	settings, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	opts := logging.Options{
		Level:   settings.Log.Level,
		Format:  settings.Log.Format,
		File:    settings.Log.File,
		Verbose: c.flags.verbose,
	}
	if tuiOwnsTerminal && opts.File == "" {
		path, err := xdg.StateFile("album-catalog/catalog.log")
		if err != nil {
			return nil, err
		}
		opts.File = path
	}
	if !tuiOwnsTerminal && opts.File == "" && !c.flags.verbose {
		// Terminal commands print their own output; keep stderr for warnings.
		opts.Level = "warn"
	}

	logger, err := logging.New(opts)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// session is the wiring shared by every command that ingests.
type session struct {
	settings *config.Settings
	logger   *zap.Logger
	client   *http.Client
	collator *collation.Collator
	catalog  *catalog.Catalog
	pipeline *ingest.Pipeline
	proxy    *cover.Proxy
}

func (c *commandContext) newSession(tuiOwnsTerminal bool) (*session, error) {
	settings, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(true); err != nil {
		return nil, err
	}
	logger, err := c.initLogger(tuiOwnsTerminal)
	if err != nil {
		return nil, err
	}

	client, err := http.NewClientWithOptions(http.Options{
		Timeout:   settings.Timeout(),
		UserAgent: settings.HTTP.UserAgent,
		ProxyURL:  settings.HTTP.ProxyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", errmsg.OpInitialize, err)
	}
	coll, err := collation.New(settings.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", errmsg.OpInitialize, err)
	}

	proxy := cover.NewProxy(settings.Proxy.BaseURL)
	proxy.ThumbSize = settings.Proxy.ThumbSize
	proxy.LargeSize = settings.Proxy.LargeSize
	if settings.CoverPlaceholder != "" {
		proxy.Placeholder = settings.CoverPlaceholder
	}

	return &session{
		settings: settings,
		logger:   logger,
		client:   client,
		collator: coll,
		catalog:  catalog.New(coll, settings.PageSize),
		pipeline: ingest.NewPipeline(client, coll, logger),
		proxy:    proxy,
	}, nil
}

// load ingests the sheet into the session's catalog and reports notices on
// warn.
func (s *session) load(ctx context.Context, warn func(string)) error {
	res, err := s.pipeline.Load(ctx, s.settings.SheetCSVURL)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", errmsg.OpLoadCatalog, err)
	}
	if res.HasNotice(ingest.NoticeShapeFallback) {
		warn(errmsg.NoticeShapeFallback)
	}
	if res.HasNotice(ingest.NoticeEmptyResult) {
		warn(errmsg.NoticeEmptyResult)
	}
	s.catalog.Populate(res.Records)
	return nil
}

// filterFlags are shared by list, show and covers.
type filterFlags struct {
	query  string
	genres []string
}

func (f filterFlags) apply(cat *catalog.Catalog) {
	if f.query == "" && len(f.genres) == 0 {
		return
	}
	cat.ApplyFilter(f.query, filter.NewGenreSet(f.genres...))
}
