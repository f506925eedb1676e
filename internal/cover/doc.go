// Package cover formats cover image URLs and exports covers to disk.
//
// # Proxy URLs
//
// Covers in the sheet are raw source URLs, often protocol-relative and
// sometimes HTML-escaped. Proxy rewrites them through an image resizing
// proxy:
//
//	p := cover.NewProxy("")
//	p.Thumb(rec.Cover)  // 150x150, fit=cover
//	p.Large(rec.Cover)  // 900x900, fit=contain
//	p.SrcSet(rec.Cover) // 320w, 640w, 900w, 1200w renditions
//
// An empty cover yields an empty URL; OrPlaceholder substitutes the
// placeholder image.
//
// # Export
//
// Exporter downloads every record's cover concurrently, fits it into
// MaxSize and writes it as "<artist> - <album>.jpg":
//
//	exp := cover.NewExporter(client, cover.ExportOptions{MaxConcurrent: 4}, func(ev cover.ProgressEvent) {
//	    fmt.Println(ev.Message)
//	})
//	sum, err := exp.Export(ctx, cat.Filtered(), "./covers")
//
// Records without a cover are skipped. A failed download is reported as a
// LevelError event and does not stop the others.
package cover
