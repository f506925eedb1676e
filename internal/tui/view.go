package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/handiism/album-catalog/internal/errmsg"
	"github.com/handiism/album-catalog/internal/model"
	"github.com/handiism/album-catalog/internal/router"
)

// chromeLines is the height of everything above and below the list rows:
// title, search, chips, count line, blank lines and help.
const chromeLines = 9

func (m Model) listRows() int {
	return max(3, m.height-chromeLines-len(m.notices))
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ Album Catalog"))
	b.WriteString("\n\n")

	switch {
	case m.phase == PhaseLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Loading…"))
		b.WriteString("\n")
	case m.phase == PhaseFailed:
		b.WriteString(errorStyle.Render("✗ " + errmsg.Format(errmsg.OpLoadCatalog, m.err)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("r: retry • q: quit"))
	case m.deps.Router.State() == router.StateDetail:
		b.WriteString(m.detail.View())
		b.WriteString("\n")
		b.WriteString(m.help.View(detailHelp(m.keys)))
	default:
		b.WriteString(m.viewList())
	}

	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder
	cat := m.deps.Catalog

	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderChips())
	b.WriteString("\n")

	for _, n := range m.notices {
		b.WriteString(warningStyle.Render("! " + n))
		b.WriteString("\n")
	}

	b.WriteString(infoStyle.Render(cat.CountLine()))
	b.WriteString("\n\n")

	window := cat.Window()
	if len(window) == 0 {
		b.WriteString(dimStyle.Render(errmsg.NoticeNoMatches))
		b.WriteString("\n")
	}

	end := min(len(window), m.offset+m.listRows())
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(window[i], i == m.cursor && m.focus == focusList))
		b.WriteString("\n")
	}

	if cat.HasMore() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("m: load %d more", cat.PageSize())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(listHelp(m.keys)))
	return b.String()
}

func (m Model) renderChips() string {
	genres := m.deps.Catalog.Genres()
	if len(genres) == 0 {
		return ""
	}

	chips := make([]string, len(genres))
	for i, g := range genres {
		style := chipStyle
		if m.deps.Catalog.GenreSelected(g) {
			style = chipSelectedStyle
		}
		if m.focus == focusGenres && i == m.genreCursor {
			style = style.Inherit(chipFocusStyle)
		}
		chips[i] = style.Render(g)
	}
	return strings.Join(chips, " ")
}

// renderRow lays out "album  artist  year · genre", truncated to the
// terminal width.
func (m Model) renderRow(r model.Record, selected bool) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("> ")
	}

	width := max(20, m.width-4)
	albumW := width * 2 / 5
	artistW := width * 3 / 10
	metaW := width - albumW - artistW - 2

	album := runewidth.FillRight(runewidth.Truncate(r.DisplayAlbum(), albumW, "…"), albumW)
	artist := runewidth.FillRight(runewidth.Truncate(r.Artist, artistW, "…"), artistW)
	meta := runewidth.Truncate(r.Meta(), metaW, "…")

	if selected {
		album = albumStyle.Render(album)
	}
	return prefix + album + " " + artist + " " + dimStyle.Render(meta)
}

func (m Model) renderDetail(r model.Record) string {
	var b strings.Builder

	b.WriteString(albumStyle.Render(r.DisplayAlbum()))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(r.Artist))
	b.WriteString("\n")
	if meta := r.Meta(); meta != "" {
		b.WriteString(dimStyle.Render(meta))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	coverURL := m.deps.Proxy.Large(r.Cover)
	if coverURL == "" {
		b.WriteString(dimStyle.Render("(no cover)"))
	} else {
		b.WriteString(dimStyle.Render("Cover: " + coverURL))
	}
	b.WriteString("\n\n")

	if len(r.Tracks) == 0 {
		b.WriteString(dimStyle.Render("No track list."))
		return boxStyle.Render(b.String())
	}
	for i, t := range r.Tracks {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, t)
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
