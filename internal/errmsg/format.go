// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	// Catalog operations
	OpLoadCatalog Op = "load catalog"

	// Export operations
	OpExportCovers Op = "export covers"

	// Navigation state
	OpSaveNavigation Op = "save navigation"
	OpOpenState      Op = "open navigation state"

	// Initialization
	OpLoadConfig Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Notices shown alongside a successfully loaded catalog.
const (
	NoticeShapeFallback = "Sheet header not recognized; columns were read as Artist, Album, Year, Genre, Cover, Tracks."
	NoticeEmptyResult   = "The sheet loaded but contains no albums."
	NoticeNoMatches     = "No albums match the current filter."
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
