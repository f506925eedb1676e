package cover

import (
	"regexp"
	"strings"

	"github.com/handiism/album-catalog/internal/model"
)

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	runsOfSpace      = regexp.MustCompile(`\s+`)
)

// SanitizeFileName replaces characters invalid in file names on any major
// platform.
//
//	SanitizeFileName("AC/DC: Live")  // "AC_DC_ Live"
//	SanitizeFileName("Vol. 2...")    // "Vol. 2"
func SanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = runsOfSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// FileName returns "<artist> - <album>.jpg" for r, leaving out an empty
// side.
func FileName(r model.Record) string {
	var parts []string
	if a := strings.TrimSpace(r.Artist); a != "" {
		parts = append(parts, a)
	}
	if a := strings.TrimSpace(r.Album); a != "" {
		parts = append(parts, a)
	}
	base := SanitizeFileName(strings.Join(parts, " - "))
	if base == "" {
		base = "cover"
	}
	return base + ".jpg"
}
