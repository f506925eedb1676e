package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "album-catalog"

// ErrMissingSheetURL is returned by Validate when a command that ingests
// runs without sheet_csv_url.
var ErrMissingSheetURL = errors.New("sheet_csv_url is not set")

// Settings holds all configuration options.
type Settings struct {
	// Data source
	SheetCSVURL string `koanf:"sheet_csv_url"`

	// Presentation
	CoverPlaceholder string `koanf:"cover_placeholder"`
	PageSize         int    `koanf:"page_size"`
	Locale           string `koanf:"locale"` // BCP-47 tag for artist sorting

	// Navigation marker database, empty means the XDG data dir
	StateDB string `koanf:"state_db"`

	Proxy  ProxySettings  `koanf:"proxy"`
	HTTP   HTTPSettings   `koanf:"http"`
	Log    LogSettings    `koanf:"log"`
	Server ServerSettings `koanf:"server"`
	Export ExportSettings `koanf:"export"`
}

// ProxySettings configures the cover image proxy.
type ProxySettings struct {
	BaseURL   string `koanf:"base_url"`
	ThumbSize int    `koanf:"thumb_size"`
	LargeSize int    `koanf:"large_size"`
}

// HTTPSettings configures the sheet and cover transport.
type HTTPSettings struct {
	TimeoutSeconds int    `koanf:"timeout_seconds"` // 0 disables the deadline
	UserAgent      string `koanf:"user_agent"`
	ProxyURL       string `koanf:"proxy_url"` // empty uses HTTP_PROXY/HTTPS_PROXY
}

// LogSettings configures zap.
type LogSettings struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	File   string `koanf:"file"`   // empty logs to stderr
	Format string `koanf:"format"` // "json" or "console"
}

// ServerSettings configures the HTTP host.
type ServerSettings struct {
	Addr string `koanf:"addr"`
}

// ExportSettings configures cover export.
type ExportSettings struct {
	MaxConcurrent int `koanf:"max_concurrent"`
	MaxSize       int `koanf:"max_size"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		PageSize: 50,
		Locale:   "ko",

		Proxy: ProxySettings{
			BaseURL:   "https://images.weserv.nl/",
			ThumbSize: 150,
			LargeSize: 900,
		},
		HTTP: HTTPSettings{
			TimeoutSeconds: 60,
			UserAgent:      "AlbumCatalog",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "json",
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
		Export: ExportSettings{
			MaxConcurrent: 4,
			MaxSize:       600,
		},
	}
}

// Load reads settings from the default config files and then from extra,
// later files overriding earlier ones. Default files that do not exist are
// skipped; an extra file that does not exist is an error.
//
// Example:
//
//	settings, err := config.Load()                   // defaults + config files
//	settings, err := config.Load("./staging.toml")   // plus an explicit file
func Load(extra ...string) (*Settings, error) {
	k := koanf.New(".")

	for _, path := range DefaultPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	for _, path := range extra {
		if path == "" {
			continue
		}
		path = expandPath(path)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	settings := DefaultSettings()
	if err := k.Unmarshal("", settings); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	settings.StateDB = expandPath(settings.StateDB)
	settings.Log.File = expandPath(settings.Log.File)
	settings.SheetCSVURL = strings.TrimSpace(settings.SheetCSVURL)

	return settings, nil
}

// DefaultPaths returns the config files Load reads, lowest priority first.
func DefaultPaths() []string {
	var paths []string

	// 1. ~/.config/album-catalog/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// Validate checks value ranges. requireSheet makes a missing sheet URL an
// error, for commands that ingest.
func (s *Settings) Validate(requireSheet bool) error {
	var errs []error

	if s.SheetCSVURL == "" {
		if requireSheet {
			errs = append(errs, ErrMissingSheetURL)
		}
	} else if u, err := url.Parse(s.SheetCSVURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("sheet_csv_url %q is not an absolute URL", s.SheetCSVURL))
	}

	if s.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive, got %d", s.PageSize))
	}
	if s.Proxy.ThumbSize <= 0 || s.Proxy.LargeSize <= 0 {
		errs = append(errs, fmt.Errorf("proxy sizes must be positive, got %d and %d", s.Proxy.ThumbSize, s.Proxy.LargeSize))
	}
	if s.HTTP.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("http.timeout_seconds must not be negative, got %d", s.HTTP.TimeoutSeconds))
	}
	if s.Export.MaxConcurrent <= 0 {
		errs = append(errs, fmt.Errorf("export.max_concurrent must be positive, got %d", s.Export.MaxConcurrent))
	}
	if s.Export.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("export.max_size must be positive, got %d", s.Export.MaxSize))
	}
	switch s.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", s.Log.Format))
	}

	return errors.Join(errs...)
}

// Timeout returns the HTTP timeout as a duration. timeout_seconds = 0
// disables the deadline and is returned as a negative duration, the
// http.Options convention for "no timeout".
func (s *Settings) Timeout() time.Duration {
	if s.HTTP.TimeoutSeconds == 0 {
		return -1
	}
	return time.Duration(s.HTTP.TimeoutSeconds) * time.Second
}

// Save writes settings as TOML.
func (s *Settings) Save(path string) error {
	data, err := toml.Parser().Marshal(s.toMap())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Settings) toMap() map[string]any {
	return map[string]any{
		"sheet_csv_url":     s.SheetCSVURL,
		"cover_placeholder": s.CoverPlaceholder,
		"page_size":         s.PageSize,
		"locale":            s.Locale,
		"state_db":          s.StateDB,
		"proxy": map[string]any{
			"base_url":   s.Proxy.BaseURL,
			"thumb_size": s.Proxy.ThumbSize,
			"large_size": s.Proxy.LargeSize,
		},
		"http": map[string]any{
			"timeout_seconds": s.HTTP.TimeoutSeconds,
			"user_agent":      s.HTTP.UserAgent,
			"proxy_url":       s.HTTP.ProxyURL,
		},
		"log": map[string]any{
			"level":  s.Log.Level,
			"file":   s.Log.File,
			"format": s.Log.Format,
		},
		"server": map[string]any{
			"addr": s.Server.Addr,
		},
		"export": map[string]any{
			"max_concurrent": s.Export.MaxConcurrent,
			"max_size":       s.Export.MaxSize,
		},
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
