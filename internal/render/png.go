package render

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"

	astar "github.com/pdrpinto/gridastar"
)

func (c *Canvas) draw(cellSize int) *gg.Context {
	dc := gg.NewContext(c.width*cellSize, c.height*cellSize)
	dc.SetColor(palette[cellFree])
	dc.Clear()

	size := float64(cellSize)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			k := c.kind(astar.Pos(x, y))
			dc.DrawRectangle(float64(x)*size, float64(y)*size, size, size)
			if k == cellFree {
				dc.SetColor(color.White)
				dc.SetLineWidth(1)
				dc.Stroke()
				continue
			}
			dc.SetColor(palette[k])
			dc.Fill()
		}
	}
	return dc
}

// SavePNG writes the canvas to a PNG file, cellSize pixels per cell.
func SavePNG(path string, c *Canvas, cellSize int) error {
	return c.draw(cellSize).SavePNG(path)
}

// EncodePNG writes the canvas as PNG to w.
func EncodePNG(w io.Writer, c *Canvas, cellSize int) error {
	return c.draw(cellSize).EncodePNG(w)
}
