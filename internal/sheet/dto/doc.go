// Package dto holds the raw row shapes produced by the sheet parser and
// their normalization into model.Record.
//
// Normalization never fails: every row maps to some Record, possibly with
// empty fields. Whether that Record belongs in the catalog is decided later
// by model.Record.IsValid.
package dto
