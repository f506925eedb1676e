package cover

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/album-catalog/internal/http"
	"github.com/handiism/album-catalog/internal/model"
)

func TestProxify(t *testing.T) {
	p := NewProxy("")

	tests := []struct {
		name string
		raw  string
		opts Options
		want string
	}{
		{"empty", "", Options{Width: 10}, ""},
		{"blank", "   ", Options{}, ""},
		{
			"protocol relative",
			"//img.example.com/a.jpg",
			Options{Width: 150, Height: 150, Fit: FitCover},
			"https://images.weserv.nl/?url=img.example.com%2Fa.jpg&w=150&h=150&fit=cover",
		},
		{
			"http scheme stripped",
			" http://x/y.jpg ",
			Options{Fit: FitContain},
			"https://images.weserv.nl/?url=x%2Fy.jpg&fit=contain",
		},
		{
			"html escaped query",
			"https://i.example.com/p.jpg?a=1&amp;b=2",
			Options{Width: 900},
			"https://images.weserv.nl/?url=i.example.com%2Fp.jpg%3Fa%3D1%26b%3D2&w=900&fit=cover",
		},
		{
			"reserved characters",
			"https://x/a b(1)!.jpg",
			Options{},
			"https://images.weserv.nl/?url=x%2Fa%20b(1)!.jpg&fit=cover",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Proxify(tt.raw, tt.opts))
		})
	}
}

func TestProxy_CustomBase(t *testing.T) {
	p := NewProxy("https://proxy.local/img?key=k")
	assert.Equal(t, "https://proxy.local/img?key=k&url=x%2Fy&fit=cover", p.Proxify("https://x/y", Options{}))
}

func TestThumbLargeSrcSet(t *testing.T) {
	p := NewProxy("")

	assert.Contains(t, p.Thumb("//x/y.jpg"), "&w=150&h=150&fit=cover")
	assert.Contains(t, p.Large("//x/y.jpg"), "&w=900&h=900&fit=contain")

	set := p.SrcSet("//x/y.jpg")
	assert.Contains(t, set, "&w=320&h=320&fit=contain 320w, ")
	assert.Contains(t, set, "&w=1200&h=1200&fit=contain 1200w")
	assert.Empty(t, p.SrcSet(""))
}

func TestOrPlaceholder(t *testing.T) {
	p := NewProxy("")
	assert.Equal(t, DefaultPlaceholder, p.OrPlaceholder(p.Thumb("")))
	assert.Equal(t, "u", p.OrPlaceholder("u"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "https://x/y", Normalize("//x/y"))
	assert.Equal(t, "http://x/y?a&b", Normalize(" http://x/y?a&amp;b "))
	assert.Empty(t, Normalize(""))
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{1500, 1000, 600, 600, 600, 400},
		{1000, 1500, 600, 600, 400, 600},
		{300, 200, 600, 600, 300, 200},
		{1200, 1200, 600, 600, 600, 600},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, tt.maxW, tt.maxH)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService_Resize(t *testing.T) {
	svc := NewImageService()

	out, err := svc.Resize(context.Background(), makePNG(t, 200, 100), 50, 50)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestImageService_ConvertToJPEG(t *testing.T) {
	svc := NewImageService()

	out, err := svc.ConvertToJPEG(context.Background(), makePNG(t, 8, 8))
	require.NoError(t, err)
	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	_, err = svc.ConvertToJPEG(context.Background(), []byte("not an image"))
	assert.Error(t, err)
}

func TestImageService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewImageService().Resize(ctx, makePNG(t, 4, 4), 2, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"AC/DC: Live", "AC_DC_ Live"},
		{"Vol. 2...", "Vol. 2"},
		{"a   b", "a b"},
		{"what?*", "what__"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.in))
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Miles Davis - Kind of Blue.jpg", FileName(model.NewRecord("Miles Davis", "Kind of Blue", "", "", "", nil)))
	assert.Equal(t, "Solo.jpg", FileName(model.NewRecord("Solo", "", "", "", "", nil)))
	assert.Equal(t, "cover.jpg", FileName(model.Record{}))
}

func TestUniqueNames(t *testing.T) {
	r := model.NewRecord("A", "B", "", "", "", nil)
	names := uniqueNames([]model.Record{r, r, model.NewRecord("a", "b", "", "", "", nil)})
	assert.Equal(t, []string{"A - B.jpg", "A - B (2).jpg", "a - b (3).jpg"}, names)
}

func TestUniqueNames_SuffixSkipsTakenNames(t *testing.T) {
	dup := model.NewRecord("a", "b", "", "", "", nil)
	suffixed := model.NewRecord("a", "b (2)", "", "", "", nil)

	names := uniqueNames([]model.Record{dup, dup, suffixed})

	assert.Equal(t, []string{"a - b.jpg", "a - b (2).jpg", "a - b (2) (2).jpg"}, names)
	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[strings.ToLower(n)], "duplicate file name %q", n)
		seen[strings.ToLower(n)] = true
	}

	names = uniqueNames([]model.Record{suffixed, dup, dup})
	assert.Equal(t, []string{"a - b (2).jpg", "a - b.jpg", "a - b (3).jpg"}, names)
}

type recorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *recorder) add(ev ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(level ProgressLevel) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Level == level {
			n++
		}
	}
	return n
}

func TestExporter_Export(t *testing.T) {
	pngData := makePNG(t, 64, 32)
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		switch r.URL.Path {
		case "/a.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(pngData)
		case "/broken.png":
			_, _ = w.Write([]byte("garbage"))
		default:
			nethttp.NotFound(w, r)
		}
	}))
	defer srv.Close()

	records := []model.Record{
		model.NewRecord("Miles Davis", "Kind of Blue", "1959", "Jazz", srv.URL+"/a.png", nil),
		model.NewRecord("No", "Cover", "", "", "", nil),
		model.NewRecord("Missing", "File", "", "", srv.URL+"/missing.png", nil),
		model.NewRecord("Broken", "Image", "", "", srv.URL+"/broken.png", nil),
	}

	dir := filepath.Join(t.TempDir(), "covers")
	rec := &recorder{}
	exp := NewExporter(http.NewClient(), ExportOptions{MaxConcurrent: 2, MaxSize: 16}, rec.add)

	sum, err := exp.Export(context.Background(), records, dir)
	require.NoError(t, err)

	assert.Equal(t, Summary{Exported: 1, Skipped: 1, Failed: 2}, sum)
	assert.Equal(t, 2, rec.count(LevelError))
	assert.Equal(t, 1, rec.count(LevelWarning))
	assert.Zero(t, rec.count(LevelSuccess))

	data, err := os.ReadFile(filepath.Join(dir, "Miles Davis - Kind of Blue.jpg"))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())

	_, err = os.Stat(filepath.Join(dir, "No - Cover.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestExporter_AllSucceed(t *testing.T) {
	pngData := makePNG(t, 8, 8)
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	rec := &recorder{}
	exp := NewExporter(http.NewClient(), ExportOptions{}, rec.add)
	records := []model.Record{
		model.NewRecord("A", "1", "", "", srv.URL+"/1", nil),
		model.NewRecord("A", "1", "", "", srv.URL+"/2", nil),
	}

	dir := t.TempDir()
	sum, err := exp.Export(context.Background(), records, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Exported)
	assert.Equal(t, 1, rec.count(LevelSuccess))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestExporter_ProgressCallsAreSerialized(t *testing.T) {
	pngData := makePNG(t, 8, 8)
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	records := make([]model.Record, 16)
	for i := range records {
		records[i] = model.NewRecord("Artist", fmt.Sprintf("Album %d", i), "", "", fmt.Sprintf("%s/%d.png", srv.URL, i), nil)
	}

	var inFlight atomic.Int32
	var overlapped atomic.Bool
	var log bytes.Buffer // not goroutine-safe on its own
	exp := NewExporter(http.NewClient(), ExportOptions{MaxConcurrent: 8}, func(ev ProgressEvent) {
		if inFlight.Add(1) > 1 {
			overlapped.Store(true)
		}
		time.Sleep(time.Millisecond)
		fmt.Fprintln(&log, ev.Level, ev.Message)
		inFlight.Add(-1)
	})

	sum, err := exp.Export(context.Background(), records, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 16, sum.Exported)
	assert.False(t, overlapped.Load(), "progress callback ran concurrently")
	assert.Equal(t, 18, strings.Count(log.String(), "\n"))
}
