package tui

import (
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Some terminals/fonts render box and arrow glyphs poorly, so the tree
// affordances come in a Unicode and an ASCII flavour.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference picks the glyph set from config, then
// FORMBUILDER_TUI_GLYPHS, then the terminal's color profile (a terminal
// without color support gets ASCII).
func applyGlyphPreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("FORMBUILDER_TUI_GLYPHS")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	switch v {
	case "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	case "":
		if termenv.EnvColorProfile() == termenv.Ascii {
			setGlyphs(glyphSetASCII)
		} else {
			setGlyphs(glyphSetUnicode)
		}
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphTwistyCollapsed() string {
	if glyphs() == glyphSetASCII {
		return "+"
	}
	return "▸"
}

func glyphTwistyExpanded() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "▾"
}

func glyphDragHandle() string {
	if glyphs() == glyphSetASCII {
		return "="
	}
	return "⠿"
}

func glyphDropMarker() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "↳"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}
