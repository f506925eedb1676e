// Command catalog browses an album collection published as a spreadsheet
// CSV export.
//
//	catalog                       interactive browser (same as "browse")
//	catalog browse --session ID   reopen a previous session's view
//	catalog list --query blue --genre Jazz
//	catalog genres
//	catalog show 3 --query davis
//	catalog serve --addr :8080
//	catalog covers ./covers --genre Jazz
//	catalog config init
//
// Settings come from ~/.config/album-catalog/config.toml, ./config.toml and
// --config; --sheet overrides sheet_csv_url.
package main
