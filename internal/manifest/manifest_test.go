package manifest

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/rotarray"
	"github.com/soypat/rotarray/render"
	"github.com/soypat/rotarray/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

const example = `
width: 120
height: 100
rotations: 4
axis: elevation
background: "#fff8e3"
zoom: 1.5
label_orientation: horizontal
label_color: "#000"
antialias: 1
workers: 2
rows:
  - name: primitives
    focus: [0, 0, 0]
    actors:
      - primitive: sphere
        color: "#468966"
        size: [2, 2, 2]
      - primitive: cube
        center: [3, 0, 0]
      - primitive: cylinder
        size: [1, 1, 4]
        translate: [0, 0, 5]
  - name: mesh
    focus: [1, 2, 3]
    actors:
      - mesh: cube.stl
        color: "#ff0000ff"
`

func TestDecode(t *testing.T) {
	m, err := Decode(strings.NewReader(example))
	require.NoError(t, err)
	assert.Equal(t, 120, m.Width)
	assert.Len(t, m.Rows, 2)
	assert.Equal(t, "mesh", m.Rows[1].Name)

	cfg, err := m.Config(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, scene.Elevation, cfg.Axis)
	assert.Equal(t, rotarray.Horizontal, cfg.LabelOrientation)
	assert.Equal(t, []string{"primitives", "mesh"}, cfg.RowNames)
	assert.Equal(t, []r3.Vec{{}, {X: 1, Y: 2, Z: 3}}, cfg.FocalPoints)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xf8, B: 0xe3, A: 0xff}, cfg.Background)
	assert.Equal(t, color.NRGBA{A: 0xff}, cfg.LabelColor)
	assert.Nil(t, cfg.LabelBackground)
	assert.Equal(t, 1, cfg.Supersample)
	assert.Equal(t, 2, cfg.Workers)
}

func TestDecodeInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"no rows":       `width: 10`,
		"unknown field": "rows: [{actors: [{primitive: sphere}]}]\nwidht: 3",
		"axis":          "axis: roll\nrows: [{actors: [{primitive: sphere}]}]",
		"orientation":   "label_orientation: diagonal\nrows: [{actors: [{primitive: sphere}]}]",
		"color":         "background: '#12345'\nrows: [{actors: [{primitive: sphere}]}]",
		"bad hex":       "background: '#zzzzzz'\nrows: [{actors: [{primitive: sphere}]}]",
		"negative":      "width: -1\nrows: [{actors: [{primitive: sphere}]}]",
		"focus":         "rows: [{focus: [1, 2], actors: [{primitive: sphere}]}]",
		"two sources":   "rows: [{actors: [{primitive: sphere, mesh: a.stl}]}]",
		"no source":     "rows: [{actors: [{color: '#fff'}]}]",
		"short vector":  "rows: [{actors: [{primitive: sphere, center: [1]}]}]",
	} {
		_, err := Decode(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadActors(t *testing.T) {
	dir := t.TempDir()
	fp, err := os.Create(filepath.Join(dir, "cube.stl"))
	require.NoError(t, err)
	require.NoError(t, render.WriteSTL(fp, render.FromMesh(fauxgl.NewCube())))
	require.NoError(t, fp.Close())
	path := filepath.Join(dir, "montage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(example), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	rows, err := m.Actors()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 3)
	require.Len(t, rows[1], 1)

	sphere := rows[0][0].Bounds()
	assert.InDelta(t, 2, sphere.Size().X, 1e-6)
	cube := rows[0][1].Bounds()
	assert.InDelta(t, 3, cube.Center().X, 1e-6)
	cylinder := rows[0][2].Bounds()
	assert.InDelta(t, 5, cylinder.Center().Z, 1e-6)
	assert.InDelta(t, 4, cylinder.Size().Z, 1e-6)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, rows[1][0].Color())

	_, err = m.RowActors(2)
	assert.Error(t, err)
}

func TestUnknownPrimitive(t *testing.T) {
	m, err := Decode(strings.NewReader("rows: [{actors: [{primitive: torus}]}]"))
	require.NoError(t, err)
	_, err = m.Actors()
	assert.Error(t, err)
}

func TestPartialFocusRejected(t *testing.T) {
	m, err := Decode(strings.NewReader(`
width: 8
height: 8
rows:
  - focus: [0, 0, 0]
    actors: [{primitive: sphere}]
  - actors: [{primitive: cube}]
`))
	require.NoError(t, err)
	cfg, err := m.Config(nil)
	require.NoError(t, err)
	rows, err := m.Actors()
	require.NoError(t, err)
	_, err = rotarray.RotationArray(t.Context(), rows, cfg)
	assert.True(t, errors.Is(err, rotarray.ErrFocalPoints), "got %v", err)
}

func TestExampleManifest(t *testing.T) {
	m, err := Load(filepath.Join("..", "..", "examples", "montage.yaml"))
	require.NoError(t, err)
	assert.Len(t, m.Rows, 3)
	require.NotNil(t, m.Rows[2].Actors[0].Bolt)
	assert.Equal(t, "M16x2", m.Rows[2].Actors[0].Bolt.Thread)
}
