package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/termenv"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per wrap width. WithAutoStyle can block on terminal
	// background queries, so the style is picked from the color profile instead.
	mdRenderers = map[int]*glamour.TermRenderer{}

	// Rendered output per (width, source). Questions are re-rendered on every
	// frame otherwise.
	mdCache = mustCache(512)
)

func mustCache(size int) *lru.Cache[string, string] {
	c, err := lru.New[string, string](size)
	if err != nil {
		panic("markdown cache: " + err.Error())
	}
	return c
}

func markdownStyle() string {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return "notty"
	}
	return "dark"
}

func markdownRenderer(width int) *glamour.TermRenderer {
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	if r := mdRenderers[width]; r != nil {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	mdRenderers[width] = r
	return r
}

// renderMarkdown renders md for a single tree row: the first non-empty
// rendered line, without glamour's document margins.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	key := strconv.Itoa(width) + "\x00" + md
	if v, ok := mdCache.Get(key); ok {
		return v
	}

	out := md
	if r := markdownRenderer(width); r != nil {
		if rendered, err := r.Render(md); err == nil {
			out = firstLine(rendered)
		}
	}
	mdCache.Add(key, out)
	return out
}

func firstLine(s string) string {
	for _, ln := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(ln); t != "" {
			return strings.TrimLeft(ln, " ")
		}
	}
	return ""
}
