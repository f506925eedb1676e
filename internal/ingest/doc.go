// Package ingest turns a published spreadsheet export into the validated,
// artist-sorted record set that populates a catalog.
//
// The pipeline:
//
//  1. Fetches the CSV text (transport failures become an *IngestionError)
//  2. Parses it keyed by header labels
//  3. Falls back to positional parsing when the header is not recognised,
//     or the keyed parse yields no rows, and raises a ShapeFallback notice
//  4. Normalizes every row into a model.Record
//  5. Drops invalid records (empty or status rows)
//  6. Stable-sorts by artist with a locale-aware collator
//
// Population is all-or-nothing: on error the returned Result is empty.
//
//	p := ingest.NewPipeline(httpClient, collator, logger)
//	res, err := p.Load(ctx, sheetURL)
//	if err != nil {
//	    // show a load failure notice
//	}
//	cat.Populate(res.Records)
//
// Ingestion runs once per session. The pipeline holds no lock: callers
// must not start a second load while one is outstanding.
package ingest
