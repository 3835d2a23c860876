package render

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// encodeBraille turns every 2x4 block of pixels into one braille cell. A dot
// is raised when its pixel is brighter than threshold. With a colour profile
// each cell takes the colour of its brightest dot.
func encodeBraille(sb *strings.Builder, c *Canvas, p termenv.Profile, threshold float64) {
	cols, rows := c.Width/2, c.Height/4
	sb.Grow(cols * rows * 8)
	state := newANSIState(p)
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range cols {
			var pattern uint
			var brightest colorful.Color
			best := -1.0
			for dx := range 2 {
				for dy := range 4 {
					px := c.At(col*2+dx, row*4+dy)
					lum := luminance(px)
					if lum <= threshold {
						continue
					}
					pattern |= 1 << brailleBits[dx][dy]
					if lum > best {
						best, brightest = lum, px
					}
				}
			}
			if pattern != 0 {
				state.setFg(sb, quantize(brightest))
			}
			sb.WriteRune(rune(0x2800 + pattern))
		}
		state.reset(sb)
	}
}
