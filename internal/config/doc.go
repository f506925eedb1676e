// Package config loads album-catalog settings from TOML files.
//
// Files are read in order, later ones overriding earlier ones:
//
//  1. ~/.config/album-catalog/config.toml
//  2. ./config.toml
//  3. any file passed with --config
//
// Keys missing from every file keep their DefaultSettings value.
//
// # Example File
//
//	sheet_csv_url = "https://docs.google.com/spreadsheets/d/e/.../pub?output=csv"
//	page_size = 50
//	locale = "ko"
//
//	[proxy]
//	base_url = "https://images.weserv.nl/"
//	thumb_size = 150
//	large_size = 900
//
//	[http]
//	timeout_seconds = 30
//
//	[log]
//	level = "debug"
//	file = "~/.local/state/album-catalog/catalog.log"
//	format = "console"
//
//	[server]
//	addr = ":8080"
//
//	[export]
//	max_concurrent = 4
//	max_size = 600
//
// # Validation
//
// Validate reports every out-of-range value at once. A missing
// sheet_csv_url is only an error for commands that ingest:
//
//	if err := settings.Validate(true); err != nil {
//	    return err
//	}
//
// Paths starting with ~ (state_db, log.file) are expanded to the home
// directory.
package config
