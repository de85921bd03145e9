package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	astar "github.com/pdrpinto/gridastar"
)

func TestParseMap(t *testing.T) {
	Convey("Given a text map", t, func() {
		rows := []string{
			"S..#....",
			"...#....",
			"...#..E.",
			"........",
		}

		Convey("When it is well formed", func() {
			p, err := ParseMap(rows)
			So(err, ShouldBeNil)

			Convey("The grid and endpoints come from the symbols", func() {
				So(p.Grid.Width(), ShouldEqual, 8)
				So(p.Grid.Height(), ShouldEqual, 4)
				So(p.Start, ShouldResemble, astar.Pos(0, 0))
				So(p.End, ShouldResemble, astar.Pos(6, 2))
				So(p.Grid.Traversable(astar.Pos(3, 1)), ShouldBeFalse)
				So(p.Grid.Traversable(astar.Pos(3, 3)), ShouldBeTrue)
			})

			Convey("The search routes under the wall", func() {
				res, err := astar.Search(p.Grid, p.Start, p.End)
				So(err, ShouldBeNil)
				So(res.Path, ShouldContain, astar.Pos(3, 3))
			})
		})

		Convey("When rows are ragged", func() {
			_, err := ParseMap([]string{"S..", "..E."})
			So(errors.Is(err, ErrRaggedMap), ShouldBeTrue)
		})

		Convey("When the end is missing", func() {
			_, err := ParseMap([]string{"S..", "..."})
			So(err, ShouldEqual, ErrMissingAnchor)
		})

		Convey("When a start is repeated", func() {
			_, err := ParseMap([]string{"S.S", "..E"})
			So(errors.Is(err, ErrDuplicate), ShouldBeTrue)
		})

		Convey("When a cell is unknown", func() {
			_, err := ParseMap([]string{"S.x", "..E"})
			So(errors.Is(err, ErrUnknownCell), ShouldBeTrue)
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given a YAML scenario", t, func() {
		Convey("With explicit dimensions and walls", func() {
			p, err := Decode([]byte(`
name: wall
width: 30
height: 30
start: {x: 0, y: 0}
end: {x: 20, y: 20}
diagonal: true
walls:
  - from: {x: 8, y: 0}
    to: {x: 8, y: 29}
blocked:
  - {x: 1, y: 1}
`))
			So(err, ShouldBeNil)
			So(p.Name, ShouldEqual, "wall")
			So(p.Diagonal, ShouldBeTrue)
			So(p.Grid.Traversable(astar.Pos(8, 17)), ShouldBeFalse)
			So(p.Grid.Traversable(astar.Pos(1, 1)), ShouldBeFalse)

			_, err = astar.Search(p.Grid, p.Start, p.End, astar.WithDiagonal(p.Diagonal))
			So(err, ShouldEqual, astar.ErrNoPath)
		})

		Convey("With an inline map and an overridden end", func() {
			p, err := Decode([]byte("map: |\n  S...\n  ...E\nend: {x: 0, y: 1}\n"))
			So(err, ShouldBeNil)
			So(p.End, ShouldResemble, astar.Pos(0, 1))
		})

		Convey("With a diagonal wall", func() {
			_, err := Decode([]byte("width: 5\nheight: 5\nstart: {x: 0, y: 0}\nend: {x: 4, y: 4}\nwalls:\n  - from: {x: 0, y: 1}\n    to: {x: 3, y: 4}\n"))
			So(err, ShouldNotBeNil)
		})

		Convey("With no endpoints", func() {
			_, err := Decode([]byte("width: 5\nheight: 5\n"))
			So(err, ShouldEqual, ErrMissingAnchor)
		})

		Convey("With an unknown key", func() {
			_, err := Decode([]byte("widht: 5\n"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given scenario files on disk", t, func() {
		dir := t.TempDir()
		txt := filepath.Join(dir, "corridor.txt")
		So(os.WriteFile(txt, []byte("S....\n####.\nE....\n"), 0o644), ShouldBeNil)
		yml := filepath.Join(dir, "open.yaml")
		So(os.WriteFile(yml, []byte("width: 4\nheight: 4\nstart: {x: 0, y: 0}\nend: {x: 3, y: 3}\n"), 0o644), ShouldBeNil)

		Convey("A text map is named after its file", func() {
			p, err := Load(txt)
			So(err, ShouldBeNil)
			So(p.Name, ShouldEqual, "corridor")
			So(p.End, ShouldResemble, astar.Pos(0, 2))
		})

		Convey("A YAML file without a name takes the file name", func() {
			p, err := Load(yml)
			So(err, ShouldBeNil)
			So(p.Name, ShouldEqual, "open")
		})

		Convey("A missing file is an error", func() {
			_, err := Load(filepath.Join(dir, "nope.txt"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRandom(t *testing.T) {
	Convey("Given random options", t, func() {
		opts := RandomOptions{Width: 40, Height: 24, Clusters: 8, Steps: 200, Density: 0.25, Seed: 7}

		Convey("The same seed yields the same problem", func() {
			a, err := Random(opts)
			So(err, ShouldBeNil)
			b, err := Random(opts)
			So(err, ShouldBeNil)
			So(a.Start, ShouldResemble, b.Start)
			So(a.End, ShouldResemble, b.End)
			So(a.Grid.Blocked(), ShouldResemble, b.Grid.Blocked())
		})

		Convey("Endpoints stay clear of walls", func() {
			p, err := Random(opts)
			So(err, ShouldBeNil)
			So(p.Start, ShouldNotResemble, p.End)
			So(p.Grid.Traversable(p.Start), ShouldBeTrue)
			So(p.Grid.Traversable(p.End), ShouldBeTrue)
		})

		Convey("A single cell grid is rejected", func() {
			_, err := Random(RandomOptions{Width: 1, Height: 1})
			So(err, ShouldNotBeNil)
		})
	})
}
