package cover

import (
	"strconv"
	"strings"
)

const (
	// DefaultProxyBase is the image resizing proxy used when none is
	// configured.
	DefaultProxyBase = "https://images.weserv.nl/"

	// DefaultThumbSize is the edge length of list thumbnails.
	DefaultThumbSize = 150

	// DefaultLargeSize is the edge length of the detail cover.
	DefaultLargeSize = 900

	// DefaultPlaceholder is a 1x1 transparent GIF shown when a record has
	// no usable cover.
	DefaultPlaceholder = "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///ywAAAAAAQABAAACAUwAOw=="
)

// SrcSetWidths are the responsive widths offered for the detail cover.
var SrcSetWidths = []int{320, 640, 900, 1200}

// Fit is the proxy's resize mode.
type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
)

// Options selects the proxied rendition. Zero Width or Height leaves that
// dimension to the proxy; an empty Fit means FitCover.
type Options struct {
	Width  int
	Height int
	Fit    Fit
}

// Proxy formats cover URLs through an image resizing proxy.
//
// Example:
//
//	p := cover.NewProxy("")
//	p.Thumb("//img.example.com/a.jpg")
//	// https://images.weserv.nl/?url=img.example.com%2Fa.jpg&w=150&h=150&fit=cover
type Proxy struct {
	Base        string
	ThumbSize   int
	LargeSize   int
	Placeholder string
}

// NewProxy returns a Proxy with default sizes. An empty base selects
// DefaultProxyBase.
func NewProxy(base string) *Proxy {
	if base == "" {
		base = DefaultProxyBase
	}
	return &Proxy{
		Base:        base,
		ThumbSize:   DefaultThumbSize,
		LargeSize:   DefaultLargeSize,
		Placeholder: DefaultPlaceholder,
	}
}

// Normalize trims a raw cover value, decodes "&amp;" and gives
// protocol-relative URLs an https scheme. Empty input stays empty.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "&amp;", "&")
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	return s
}

// Proxify returns the proxied URL for raw, or "" when raw is empty.
func (p *Proxy) Proxify(raw string, opts Options) string {
	s := Normalize(raw)
	if s == "" {
		return ""
	}
	core := stripScheme(s)

	var b strings.Builder
	b.WriteString(p.Base)
	if strings.Contains(p.Base, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	b.WriteString("url=")
	b.WriteString(escapeComponent(core))
	if opts.Width > 0 {
		b.WriteString("&w=")
		b.WriteString(strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		b.WriteString("&h=")
		b.WriteString(strconv.Itoa(opts.Height))
	}
	fit := opts.Fit
	if fit == "" {
		fit = FitCover
	}
	b.WriteString("&fit=")
	b.WriteString(string(fit))
	return b.String()
}

// Thumb returns the square list thumbnail URL.
func (p *Proxy) Thumb(raw string) string {
	return p.Proxify(raw, Options{Width: p.ThumbSize, Height: p.ThumbSize, Fit: FitCover})
}

// Large returns the detail cover URL.
func (p *Proxy) Large(raw string) string {
	return p.Proxify(raw, Options{Width: p.LargeSize, Height: p.LargeSize, Fit: FitContain})
}

// SrcSet returns a srcset attribute value over SrcSetWidths, or "" when raw
// is empty.
func (p *Proxy) SrcSet(raw string) string {
	if Normalize(raw) == "" {
		return ""
	}
	parts := make([]string, 0, len(SrcSetWidths))
	for _, w := range SrcSetWidths {
		u := p.Proxify(raw, Options{Width: w, Height: w, Fit: FitContain})
		parts = append(parts, u+" "+strconv.Itoa(w)+"w")
	}
	return strings.Join(parts, ", ")
}

// OrPlaceholder returns u, or the placeholder when u is empty.
func (p *Proxy) OrPlaceholder(u string) string {
	if u == "" {
		return p.Placeholder
	}
	return u
}

func stripScheme(s string) string {
	lower := strings.ToLower(s)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			return s[len(scheme):]
		}
	}
	return s
}

// escapeComponent percent-encodes everything except the characters a
// browser's encodeURIComponent leaves alone.
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3 / 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
