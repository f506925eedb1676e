package cover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/album-catalog/internal/model"
)

const (
	// DefaultMaxConcurrent bounds parallel cover downloads.
	DefaultMaxConcurrent = 4

	// DefaultMaxSize is the edge length exported covers are fitted into.
	DefaultMaxSize = 600
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lower-case level name.
func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent is an export progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Getter fetches a URL. *http.Client from internal/http satisfies it.
type Getter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// ExportOptions configures an Exporter. Zero values select the defaults.
type ExportOptions struct {
	MaxConcurrent int
	MaxSize       int
}

// Summary counts the outcome of one Export.
type Summary struct {
	Exported int
	Skipped  int
	Failed   int
}

// Exporter downloads record covers into a directory as resized JPEGs.
type Exporter struct {
	client     Getter
	images     *ImageService
	opts       ExportOptions
	onProgress func(ProgressEvent)
	progressMu sync.Mutex

	exported atomic.Int32
	skipped  atomic.Int32
	failed   atomic.Int32
}

// NewExporter creates an Exporter. onProgress may be nil. Calls to
// onProgress are serialized, so it may write to an unsynchronized writer.
func NewExporter(client Getter, opts ExportOptions, onProgress func(ProgressEvent)) *Exporter {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	return &Exporter{
		client:     client,
		images:     NewImageService(),
		opts:       opts,
		onProgress: onProgress,
	}
}

// Export writes one "<artist> - <album>.jpg" per record with a cover into
// dir. Per-record failures are reported as progress events and counted;
// the returned error is reserved for dir creation and cancellation.
func (e *Exporter) Export(ctx context.Context, records []model.Record, dir string) (Summary, error) {
	e.exported.Store(0)
	e.skipped.Store(0)
	e.failed.Store(0)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create export dir: %w", err)
	}

	names := uniqueNames(records)
	e.progress(ProgressEvent{Message: fmt.Sprintf("Exporting %d covers to %s", len(records), dir), Level: LevelInfo})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.MaxConcurrent)

	for i, rec := range records {
		if !rec.HasCover() {
			e.skipped.Add(1)
			e.progress(ProgressEvent{Message: fmt.Sprintf("No cover: %s", names[i]), Level: LevelVerbose})
			continue
		}
		path := filepath.Join(dir, names[i])
		g.Go(func() error {
			if err := e.exportOne(ctx, rec, path); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				e.failed.Add(1)
				e.progress(ProgressEvent{Message: fmt.Sprintf("Error exporting %s: %v", filepath.Base(path), err), Level: LevelError})
				return nil // continue with other covers
			}
			e.exported.Add(1)
			e.progress(ProgressEvent{Message: fmt.Sprintf("Saved: %s", filepath.Base(path)), Level: LevelVerbose})
			return nil
		})
	}

	err := g.Wait()
	sum := e.summary()
	if err != nil {
		return sum, err
	}

	if sum.Failed == 0 {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Exported %d covers", sum.Exported), Level: LevelSuccess})
	} else {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Exported %d covers, %d failed", sum.Exported, sum.Failed), Level: LevelWarning})
	}
	return sum, nil
}

func (e *Exporter) exportOne(ctx context.Context, rec model.Record, path string) error {
	data, err := e.client.Get(ctx, Normalize(rec.Cover))
	if err != nil {
		return err
	}
	resized, err := e.images.Resize(ctx, data, e.opts.MaxSize, e.opts.MaxSize)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	return os.WriteFile(path, resized, 0o644)
}

func (e *Exporter) summary() Summary {
	return Summary{
		Exported: int(e.exported.Load()),
		Skipped:  int(e.skipped.Load()),
		Failed:   int(e.failed.Load()),
	}
}

func (e *Exporter) progress(event ProgressEvent) {
	if e.onProgress == nil {
		return
	}
	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	e.onProgress(event)
}

// uniqueNames returns FileName for each record, suffixing repeats with
// " (2)", " (3)" and so on. A suffix never lands on a name that is already
// taken, compared case-insensitively.
func uniqueNames(records []model.Record) []string {
	names := make([]string, len(records))
	taken := make(map[string]bool, len(records))
	for i, r := range records {
		name := FileName(r)
		if taken[strings.ToLower(name)] {
			base := strings.TrimSuffix(name, ".jpg")
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s (%d).jpg", base, n)
				if !taken[strings.ToLower(candidate)] {
					name = candidate
					break
				}
			}
		}
		taken[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}
