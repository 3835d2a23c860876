package render

import (
	"math"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

var (
	profileOnce sync.Once
	profile     termenv.Profile
	seqCache    sync.Map
)

// currentProfile detects the terminal's colour support once.
func currentProfile() termenv.Profile {
	profileOnce.Do(func() {
		profile = termenv.EnvColorProfile()
	})
	return profile
}

// parseColor reads a "#rrggbb" string. Unparseable input renders black.
func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColor(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

func addColor(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

// luminance is the perceived brightness (ITU-R BT.601) of a clamped colour.
func luminance(c colorful.Color) float64 {
	c = c.Clamped()
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func quantize(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// colorSequence returns the escape sequence selecting c as the foreground
// (or background) colour under p.
func colorSequence(p termenv.Profile, key uint32, bg bool) string {
	var flag uint64
	if bg {
		flag = 1
	}
	cacheKey := uint64(p)<<40 | flag<<32 | uint64(key)
	if seq, ok := seqCache.Load(cacheKey); ok {
		return seq.(string)
	}

	c := colorful.Color{
		R: float64(key>>16&0xff) / 255,
		G: float64(key>>8&0xff) / 255,
		B: float64(key&0xff) / 255,
	}
	var seq string
	if s := p.Color(c.Hex()).Sequence(bg); s != "" {
		seq = termenv.CSI + s + "m"
	}
	seqCache.Store(cacheKey, seq)
	return seq
}

// ansiState suppresses repeated escape sequences within a line.
type ansiState struct {
	profile termenv.Profile
	fg      uint32
	bg      uint32
}

const noColor = math.MaxUint32

func newANSIState(p termenv.Profile) ansiState {
	return ansiState{profile: p, fg: noColor, bg: noColor}
}

func (s *ansiState) setFg(sb *strings.Builder, key uint32) {
	if s.profile == termenv.Ascii || key == s.fg {
		return
	}
	sb.WriteString(colorSequence(s.profile, key, false))
	s.fg = key
}

func (s *ansiState) setBg(sb *strings.Builder, key uint32) {
	if s.profile == termenv.Ascii || key == s.bg {
		return
	}
	sb.WriteString(colorSequence(s.profile, key, true))
	s.bg = key
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == termenv.Ascii || (s.fg == noColor && s.bg == noColor) {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	s.fg, s.bg = noColor, noColor
}
