// Package manifest reads YAML montage descriptions for the rotarray command.
package manifest

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soypat/rotarray"
	"github.com/soypat/rotarray/scene"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"
)

// Manifest describes a montage.
type Manifest struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Rotations        int     `yaml:"rotations"`
	Axis             string  `yaml:"axis"`
	Background       string  `yaml:"background"`
	Zoom             float64 `yaml:"zoom"`
	Transpose        bool    `yaml:"transpose"`
	HideLabels       bool    `yaml:"hide_labels"`
	LabelOrientation string  `yaml:"label_orientation"`
	LabelBackground  string  `yaml:"label_background"`
	LabelColor       string  `yaml:"label_color"`
	LabelFontSize    float64 `yaml:"label_font_size"`
	Antialias        int     `yaml:"antialias"`
	Workers          int     `yaml:"workers"`
	Rows             []Row   `yaml:"rows"`

	// dir resolves relative mesh paths.
	dir string
}

// Row is one scene of the montage.
type Row struct {
	Name   string     `yaml:"name"`
	Focus  []float64  `yaml:"focus"`
	Actors []ActorDef `yaml:"actors"`
}

// ActorDef defines an actor by exactly one of Mesh, Primitive or Bolt.
type ActorDef struct {
	Mesh      string    `yaml:"mesh"`
	Primitive string    `yaml:"primitive"`
	Bolt      *BoltDef  `yaml:"bolt"`
	Color     string    `yaml:"color"`
	Center    []float64 `yaml:"center"`
	Size      []float64 `yaml:"size"`
	Translate []float64 `yaml:"translate"`
}

// BoltDef mirrors scene.BoltConfig.
type BoltDef struct {
	Thread      string  `yaml:"thread"`
	Style       string  `yaml:"style"`
	Tolerance   float64 `yaml:"tolerance"`
	TotalLength float64 `yaml:"total_length"`
	ShankLength float64 `yaml:"shank_length"`
	Cells       int     `yaml:"cells"`
}

// Load reads a manifest file. Relative mesh paths are resolved against
// the manifest's directory.
func Load(path string) (*Manifest, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	m, err := Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Decode reads a manifest and validates it.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for errors that do not require loading meshes.
func (m *Manifest) Validate() error {
	if len(m.Rows) == 0 {
		return errors.New("no rows")
	}
	if m.Width < 0 || m.Height < 0 || m.Rotations < 0 || m.Zoom < 0 || m.Antialias < 0 {
		return errors.New("negative width, height, rotations, zoom or antialias")
	}
	if _, err := scene.ParseRotationAxis(m.Axis); err != nil {
		return err
	}
	if _, err := parseOrientation(m.LabelOrientation); err != nil {
		return err
	}
	for _, c := range []string{m.Background, m.LabelBackground, m.LabelColor} {
		if _, err := parseColor(c); err != nil {
			return err
		}
	}
	for i, row := range m.Rows {
		if row.Focus != nil && len(row.Focus) != 3 {
			return fmt.Errorf("row %d: focus needs 3 coordinates", i)
		}
		for j, a := range row.Actors {
			if err := a.validate(); err != nil {
				return fmt.Errorf("row %d actor %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func (a ActorDef) validate() error {
	n := 0
	if a.Mesh != "" {
		n++
	}
	if a.Primitive != "" {
		n++
	}
	if a.Bolt != nil {
		n++
	}
	if n != 1 {
		return errors.New("need exactly one of mesh, primitive or bolt")
	}
	for _, v := range [][]float64{a.Center, a.Size, a.Translate} {
		if v != nil && len(v) != 3 {
			return errors.New("vectors need 3 coordinates")
		}
	}
	_, err := parseColor(a.Color)
	return err
}

// Config returns the rotarray configuration described by the manifest.
func (m *Manifest) Config(log *zap.Logger) (rotarray.Config, error) {
	axis, err := scene.ParseRotationAxis(m.Axis)
	if err != nil {
		return rotarray.Config{}, err
	}
	orientation, err := parseOrientation(m.LabelOrientation)
	if err != nil {
		return rotarray.Config{}, err
	}
	cfg := rotarray.Config{
		Rotations:        m.Rotations,
		Axis:             axis,
		Width:            m.Width,
		Height:           m.Height,
		Zoom:             m.Zoom,
		Transpose:        m.Transpose,
		HideLabels:       m.HideLabels,
		LabelOrientation: orientation,
		LabelFontSize:    vg.Length(m.LabelFontSize),
		Supersample:      m.Antialias,
		Workers:          m.Workers,
		Logger:           log,
	}
	cfg.Background, _ = parseColor(m.Background)
	cfg.LabelBackground, _ = parseColor(m.LabelBackground)
	cfg.LabelColor, _ = parseColor(m.LabelColor)
	for _, row := range m.Rows {
		cfg.RowNames = append(cfg.RowNames, row.Name)
		if row.Focus != nil {
			cfg.FocalPoints = append(cfg.FocalPoints, vec3(row.Focus))
		}
	}
	return cfg, nil
}

// Actors builds the actors of every row.
func (m *Manifest) Actors() ([][]*scene.Actor, error) {
	rows := make([][]*scene.Actor, len(m.Rows))
	for i := range m.Rows {
		actors, err := m.RowActors(i)
		if err != nil {
			return nil, err
		}
		rows[i] = actors
	}
	return rows, nil
}

// RowActors builds the actors of row i.
func (m *Manifest) RowActors(i int) ([]*scene.Actor, error) {
	if i < 0 || i >= len(m.Rows) {
		return nil, fmt.Errorf("row %d out of range [0, %d)", i, len(m.Rows))
	}
	var actors []*scene.Actor
	for j, def := range m.Rows[i].Actors {
		a, err := m.actor(def)
		if err != nil {
			return nil, fmt.Errorf("row %d actor %d: %w", i, j, err)
		}
		actors = append(actors, a)
	}
	return actors, nil
}

func (m *Manifest) actor(def ActorDef) (*scene.Actor, error) {
	c, err := parseColor(def.Color)
	if err != nil {
		return nil, err
	}
	center := vec3(def.Center)
	size := r3.Vec{X: 1, Y: 1, Z: 1}
	if def.Size != nil {
		size = vec3(def.Size)
	}
	var a *scene.Actor
	switch {
	case def.Mesh != "":
		path := def.Mesh
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.dir, path)
		}
		a, err = scene.LoadActor(path, c)
	case def.Bolt != nil:
		a, err = scene.Bolt(scene.BoltConfig{
			Thread:      def.Bolt.Thread,
			Style:       def.Bolt.Style,
			Tolerance:   def.Bolt.Tolerance,
			TotalLength: def.Bolt.TotalLength,
			ShankLength: def.Bolt.ShankLength,
			Cells:       def.Bolt.Cells,
		}, c)
	default:
		switch strings.ToLower(def.Primitive) {
		case "sphere":
			a = scene.Sphere(center, size.X/2, c)
		case "cube", "box":
			a = scene.Cube(center, size, c)
		case "cylinder":
			a = scene.Cylinder(center, size.X/2, size.Z, c)
		case "cone":
			a = scene.Cone(center, size.X/2, size.Z, c)
		default:
			err = fmt.Errorf("unknown primitive %q", def.Primitive)
		}
	}
	if err != nil {
		return nil, err
	}
	if def.Translate != nil {
		a = a.Translate(vec3(def.Translate))
	}
	return a, nil
}

func vec3(v []float64) r3.Vec {
	if len(v) != 3 {
		return r3.Vec{}
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// parseColor parses #RGB, #RRGGBB and #RRGGBBAA hex colors. The empty
// string yields a nil color so defaults apply.
func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func parseOrientation(s string) (rotarray.Orientation, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return rotarray.OrientationAuto, nil
	case "vertical":
		return rotarray.Vertical, nil
	case "horizontal":
		return rotarray.Horizontal, nil
	}
	return 0, fmt.Errorf("unknown label orientation %q", s)
}
