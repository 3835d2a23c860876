package render

import (
	"strings"

	"github.com/muesli/termenv"
)

// asciiRamp maps brightness to characters when no colour is available.
const asciiRamp = " .:-=+*#%@"

// encodeHalfBlock packs two pixel rows into each terminal row using "▀":
// the foreground paints the top pixel, the background the bottom one.
// The canvas height is expected to be twice the row count.
func encodeHalfBlock(sb *strings.Builder, c *Canvas, p termenv.Profile) {
	rows := c.Height / 2
	sb.Grow(c.Width * rows * 24)
	state := newANSIState(p)
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		top, bot := row*2, row*2+1
		for x := range c.Width {
			state.setFg(sb, quantize(c.At(x, top)))
			state.setBg(sb, quantize(c.At(x, bot)))
			sb.WriteString("▀")
		}
		state.reset(sb)
	}
}

// encodeASCII maps each pair of pixel rows to one brightness character,
// keeping the brighter of the two so single-pixel points survive.
func encodeASCII(sb *strings.Builder, c *Canvas) {
	rows := c.Height / 2
	sb.Grow((c.Width + 1) * rows)
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for x := range c.Width {
			lum := max(luminance(c.At(x, row*2)), luminance(c.At(x, row*2+1)))
			sb.WriteByte(brightnessChar(lum))
		}
	}
}

func brightnessChar(lum float64) byte {
	idx := int(clamp01(lum) * float64(len(asciiRamp)-1))
	return asciiRamp[idx]
}
