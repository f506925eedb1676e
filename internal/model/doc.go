// Package model defines the core data structures used throughout
// the album-catalog application.
//
// # Record
//
// Record is one normalized catalog entry, usually an album:
//
//	rec := model.NewRecord("Miles Davis", "Kind of Blue", "1959", "Jazz", coverURL,
//	    []string{"So What", "Freddie Freeloader"})
//	fmt.Println(rec.Key())   // Stable identity for logs and persistence
//	fmt.Println(rec.Meta())  // "1959 · Jazz"
//
// Records are values. Constructors copy the track slice so a Record never
// shares backing storage with the row it was built from.
//
// # Validity
//
// A spreadsheet export can contain status rows and blank rows. IsValid
// rejects a record when both artist and album are empty, or when either
// equals the status sentinel "OK" (case-insensitive):
//
//	if !rec.IsValid() {
//	    // drop it
//	}
package model
