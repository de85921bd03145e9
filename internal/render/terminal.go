package render

import (
	"bufio"
	"io"

	"github.com/muesli/termenv"

	astar "github.com/pdrpinto/gridastar"
)

var symbols = map[cellKind]string{
	cellFree:     ".",
	cellWall:     "#",
	cellStart:    "S",
	cellEnd:      "E",
	cellFrontier: "o",
	cellExpanded: "x",
	cellPath:     "*",
}

// Terminal writes a canvas as rows of symbols, coloured when the profile
// supports it.
type Terminal struct {
	out     io.Writer
	profile termenv.Profile
}

// NewTerminal picks the colour profile of the environment, or plain ASCII
// when color is false.
func NewTerminal(out io.Writer, color bool) *Terminal {
	profile := termenv.Ascii
	if color {
		profile = termenv.ColorProfile()
	}
	return &Terminal{out: out, profile: profile}
}

// Frame writes the whole canvas once.
func (t *Terminal) Frame(c *Canvas) error {
	w := bufio.NewWriter(t.out)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			k := c.kind(astar.Pos(x, y))
			s := symbols[k]
			if k != cellFree {
				s = t.profile.String(s).Foreground(t.profile.Color(hex(palette[k]))).String()
			}
			if _, err := w.WriteString(s); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
