package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astar "github.com/pdrpinto/gridastar"
)

func solved(t *testing.T) (*Canvas, *astar.Stepper) {
	t.Helper()
	g, err := astar.NewGrid(5, 3)
	require.NoError(t, err)
	g.WallColumn(2, 0, 1)

	s, err := astar.NewStepper(g, astar.Pos(0, 0), astar.Pos(4, 0))
	require.NoError(t, err)
	c := NewCanvas(g, s.Start(), s.End())
	for !s.IsDone() {
		_, err := s.Step()
		require.NoError(t, err)
		c.Apply(s.DrainDirty())
	}
	return c, s
}

func TestCanvas_Apply(t *testing.T) {
	g, err := astar.NewGrid(3, 3)
	require.NoError(t, err)
	c := NewCanvas(g, astar.Pos(0, 0), astar.Pos(2, 2))

	c.Apply([]astar.DirtyNode{
		{Position: astar.Pos(1, 1), Role: astar.RoleFrontier},
		{Position: astar.Pos(1, 1), Role: astar.RolePath},
		{Position: astar.Pos(1, 1), Role: astar.RoleExpanded},
		{Position: astar.Pos(7, 7), Role: astar.RoleExpanded},
	})
	assert.Equal(t, astar.RolePath, c.Role(astar.Pos(1, 1)))
	assert.Equal(t, astar.RoleNone, c.Role(astar.Pos(7, 7)))
}

func TestTerminal_Frame(t *testing.T) {
	c, s := solved(t)
	require.Equal(t, astar.OutcomeSucceeded, s.Outcome())

	var buf bytes.Buffer
	require.NoError(t, NewTerminal(&buf, false).Frame(c))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, byte('S'), lines[0][0])
	assert.Equal(t, byte('E'), lines[0][4])
	for _, row := range lines {
		assert.Len(t, row, 5)
	}
	assert.Equal(t, byte('#'), lines[0][2])
	assert.Equal(t, byte('#'), lines[1][2])
	assert.Equal(t, "**", string(lines[2][1:3]), "path runs under the wall")
}

func TestTerminal_FrameColor(t *testing.T) {
	c, _ := solved(t)
	term := NewTerminal(&bytes.Buffer{}, true)
	assert.NoError(t, term.Frame(c))
}

func TestPNG(t *testing.T) {
	c, _ := solved(t)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, c, 4))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())

	r, g, b, _ := img.At(2*4+2, 0*4+2).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b}, "wall cell")

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, SavePNG(path, c, 2))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
