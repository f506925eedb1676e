package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/collation"
	"github.com/handiism/album-catalog/internal/model"
	"github.com/handiism/album-catalog/internal/sheet"
	"github.com/handiism/album-catalog/internal/sheet/dto"
)

// CodeShapeFallback is the diagnostic code emitted when positional parsing
// replaces the header-keyed parse.
const CodeShapeFallback = "ShapeFallback"

// ErrNoRows is the cause of an IngestionError when neither the keyed nor
// the positional parse produced any data row.
var ErrNoRows = errors.New("sheet contains no data rows")

// IngestionError reports a load that did not populate the catalog.
type IngestionError struct {
	Cause error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("load catalog: %v", e.Cause)
}

func (e *IngestionError) Unwrap() error {
	return e.Cause
}

// Notice is a non-fatal condition the caller should surface to the user.
type Notice int

const (
	// NoticeShapeFallback means header labels were not recognised and the
	// sheet was read by column position.
	NoticeShapeFallback Notice = iota

	// NoticeEmptyResult means the sheet had rows but none were valid.
	NoticeEmptyResult
)

// String returns a short human-readable description of the notice.
func (n Notice) String() string {
	switch n {
	case NoticeShapeFallback:
		return "column headers not recognised; read sheet by column position"
	case NoticeEmptyResult:
		return "sheet loaded but contains no valid albums"
	default:
		return "unknown notice"
	}
}

// Fetcher retrieves the raw sheet text.
type Fetcher interface {
	GetString(ctx context.Context, url string) (string, error)
}

// Result is a successful ingestion.
type Result struct {
	// Records are the valid records sorted by artist.
	Records []model.Record

	// Shape tells which parse produced the records.
	Shape sheet.Shape

	// Diagnostics are non-fatal parse warnings.
	Diagnostics []sheet.Diagnostic

	// Notices are conditions to surface to the user.
	Notices []Notice

	// Parsed counts data rows read from the sheet.
	Parsed int

	// Dropped counts rows rejected by the validity check.
	Dropped int
}

// HasNotice reports whether n was raised.
func (r Result) HasNotice(n Notice) bool {
	for _, have := range r.Notices {
		if have == n {
			return true
		}
	}
	return false
}

// Pipeline ingests sheet exports.
type Pipeline struct {
	fetcher  Fetcher
	collator *collation.Collator
	logger   *zap.Logger

	parse    func(string, sheet.HeaderMode) sheet.Result
	observer func(Result, error)
}

// NewPipeline creates a Pipeline. A nil logger disables logging.
func NewPipeline(fetcher Fetcher, collator *collation.Collator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fetcher:  fetcher,
		collator: collator,
		logger:   logger,
		parse:    sheet.Parse,
	}
}

// OnResult registers a callback invoked after every Load or Ingest, with
// either the result or the error.
func (p *Pipeline) OnResult(fn func(Result, error)) {
	p.observer = fn
}

// Load fetches the sheet at url and ingests it.
//
// A fetch failure is returned as an *IngestionError wrapping the
// transport error. It is not retried.
func (p *Pipeline) Load(ctx context.Context, url string) (Result, error) {
	p.logger.Info("fetching sheet", zap.String("url", url))

	text, err := p.fetcher.GetString(ctx, url)
	if err != nil {
		err = &IngestionError{Cause: err}
		p.logger.Error("sheet fetch failed", zap.String("url", url), zap.Error(err))
		p.notify(Result{}, err)
		return Result{}, err
	}

	return p.Ingest(text)
}

// Ingest parses, normalizes, validates and sorts raw CSV text.
func (p *Pipeline) Ingest(text string) (Result, error) {
	res, err := p.ingest(text)
	if err != nil {
		p.logger.Error("sheet ingestion failed", zap.Error(err))
		p.notify(Result{}, err)
		return Result{}, err
	}

	for _, d := range res.Diagnostics {
		p.logger.Debug("parse diagnostic",
			zap.Int("line", d.Line),
			zap.String("code", d.Code),
			zap.String("message", d.Message))
	}
	if res.HasNotice(NoticeShapeFallback) {
		p.logger.Warn("sheet header not recognised, using positional columns")
	}
	if res.HasNotice(NoticeEmptyResult) {
		p.logger.Warn("sheet contains no valid records", zap.Int("parsed", res.Parsed))
	}
	p.logger.Info("catalog ingested",
		zap.Int("records", len(res.Records)),
		zap.Int("parsed", res.Parsed),
		zap.Int("dropped", res.Dropped),
		zap.Stringer("shape", res.Shape),
		zap.Int("diagnostics", len(res.Diagnostics)))

	p.notify(res, nil)
	return res, nil
}

func (p *Pipeline) ingest(text string) (Result, error) {
	var res Result
	var records []model.Record

	keyed := p.parse(text, sheet.Header)
	if sheet.KeyedShapeOK(keyed) {
		res.Shape = sheet.ShapeKeyed
		res.Diagnostics = keyed.Diagnostics
		records = make([]model.Record, 0, len(keyed.Keyed))
		for _, row := range keyed.Keyed {
			records = append(records, row.ToRecord())
		}
	} else {
		positional := p.parse(text, sheet.NoHeader)
		rows := positional.Positional
		if len(rows) > 0 && sheet.IsHeaderRow(rows[0]) {
			rows = rows[1:]
		}

		res.Shape = sheet.ShapePositional
		res.Diagnostics = append(positional.Diagnostics, sheet.Diagnostic{
			Code:    CodeShapeFallback,
			Message: fmt.Sprintf("header %q not recognised; assuming column order %v", keyed.Header, dto.Columns),
		})
		res.Notices = append(res.Notices, NoticeShapeFallback)
		records = make([]model.Record, 0, len(rows))
		for _, row := range rows {
			records = append(records, row.ToRecord())
		}
	}

	res.Parsed = len(records)
	if res.Parsed == 0 {
		return Result{}, &IngestionError{Cause: ErrNoRows}
	}

	valid := make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.IsValid() {
			valid = append(valid, r)
		}
	}
	res.Dropped = len(records) - len(valid)

	p.collator.SortByArtist(valid)
	res.Records = valid

	if len(valid) == 0 {
		res.Notices = append(res.Notices, NoticeEmptyResult)
	}
	return res, nil
}

func (p *Pipeline) notify(res Result, err error) {
	if p.observer != nil {
		p.observer(res, err)
	}
}
