package hmm

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/natanalt/hmm/heightmap"
	"github.com/natanalt/hmm/mesh"
	"github.com/natanalt/hmm/render"
	"github.com/natanalt/hmm/triangulator"
)

// Settings contains every parameter of a mesh build. The yaml tags match the
// command line flag names, so a settings file mirrors the CLI surface.
type Settings struct {
	// Physical size of the output mesh, in model units (required).
	XSize  float32 `yaml:"xsize"`
	YSize  float32 `yaml:"ysize"`
	ZScale float32 `yaml:"zscale"`

	// Triangulation bounds. MaxError is a fraction of the [0,1] elevation
	// range; MaxTriangles and MaxPoints are unbounded when 0.
	MaxError     float64 `yaml:"error"`
	MaxTriangles int     `yaml:"triangles"`
	MaxPoints    int     `yaml:"points"`

	// Height of the solid base under the surface; 0 leaves the surface
	// open.
	Base float32 `yaml:"base"`

	// Heightmap filters, applied in this order.
	Level  bool    `yaml:"level"`
	Invert bool    `yaml:"invert"`
	Gamma  float64 `yaml:"gamma"`
	Blur   int     `yaml:"blur"`

	// Flat frame padded around the heightmap, in pixels.
	BorderSize   int     `yaml:"border-size"`
	BorderHeight float64 `yaml:"border-height"`

	// Auxiliary render outputs, skipped when empty.
	NormalMap string  `yaml:"normal-map"`
	ShadePath string  `yaml:"shade-path"`
	ShadeAlt  float32 `yaml:"shade-alt"`
	ShadeAz   float32 `yaml:"shade-az"`

	Quiet bool `yaml:"quiet"`
}

// NewSettings returns a Settings struct filled with default values. The
// physical sizes have no sensible default and must be provided.
func NewSettings() Settings {
	return Settings{
		MaxError:     0.001,
		BorderHeight: 1,
		ShadeAlt:     45,
		ShadeAz:      315,
	}
}

// Pipeline runs a complete mesh build: load, filter, render, triangulate,
// assemble, write.
type Pipeline struct {
	ctx      *BuildContext
	settings Settings
}

// NewPipeline creates a pipeline with the given build context and settings.
func NewPipeline(ctx *BuildContext, settings Settings) *Pipeline {
	return &Pipeline{ctx: ctx, settings: settings}
}

// Run builds the mesh for the heightmap image at infile and writes it to
// outfile, whose extension selects the format (.stl or .obj, case
// insensitive). outfile may be empty when at least one auxiliary render is
// requested.
func (p *Pipeline) Run(infile, outfile string) error {
	s := &p.settings
	ctx := p.ctx

	if s.XSize <= 0 || s.YSize <= 0 || s.ZScale <= 0 {
		return fmt.Errorf("xsize, ysize and zscale must be positive")
	}
	var writeMesh func(*mesh.Mesh) error
	if outfile != "" {
		switch strings.ToLower(filepath.Ext(outfile)) {
		case ".stl":
			writeMesh = func(m *mesh.Mesh) error { return m.SaveSTL(outfile) }
		case ".obj":
			writeMesh = func(m *mesh.Mesh) error { return m.SaveOBJ(outfile, s.XSize, s.YSize) }
		default:
			return fmt.Errorf("unknown output extension '%v', want .stl or .obj", filepath.Ext(outfile))
		}
	} else if s.NormalMap == "" && s.ShadePath == "" {
		return fmt.Errorf("nothing to do: provide OUTFILE, normal-map or shade-path")
	}

	ctx.StartTimer(TimerTotal)
	defer ctx.StopTimer(TimerTotal)

	ctx.StartTimer(TimerLoad)
	hm, err := heightmap.Load(infile)
	ctx.StopTimer(TimerLoad)
	if err != nil {
		return err
	}
	ctx.Progressf("heightmap '%v': %d x %d samples", infile, hm.Width(), hm.Height())

	ctx.StartTimer(TimerFilter)
	if s.Level {
		hm = hm.AutoLevel()
	}
	if s.Invert {
		hm = hm.Invert()
	}
	if s.Gamma > 0 {
		hm = hm.Gamma(s.Gamma)
	}
	if s.Blur > 0 {
		hm = hm.Blur(s.Blur)
	}
	if s.BorderSize > 0 {
		hm = hm.AddBorder(s.BorderSize, s.BorderHeight)
	}
	ctx.StopTimer(TimerFilter)

	if s.NormalMap != "" || s.ShadePath != "" {
		ctx.StartTimer(TimerRender)
		// Elevations relative to the pixel grid: the full [0,1] range
		// spans ZScale model units, one pixel spans XSize/(W-1).
		zs := s.ZScale * float32(hm.Width()-1) / s.XSize
		if s.NormalMap != "" {
			if err := render.Save(render.NormalMap(hm, zs), s.NormalMap); err != nil {
				return err
			}
			ctx.Progressf("normal map written to '%v'", s.NormalMap)
		}
		if s.ShadePath != "" {
			if err := render.Save(render.Hillshade(hm, zs, s.ShadeAlt, s.ShadeAz), s.ShadePath); err != nil {
				return err
			}
			ctx.Progressf("hillshade written to '%v'", s.ShadePath)
		}
		ctx.StopTimer(TimerRender)
	}

	if outfile == "" {
		return nil
	}

	ctx.StartTimer(TimerTriangulate)
	tri, err := triangulator.New(hm)
	if err != nil {
		return err
	}
	tri.Run(s.MaxError, s.MaxTriangles, s.MaxPoints)
	ctx.StopTimer(TimerTriangulate)
	ctx.Progressf("triangulated: %d points, %d triangles, error %g",
		tri.NumPoints(), tri.NumTriangles(), tri.Error())

	ctx.StartTimer(TimerMesh)
	m := mesh.FromTriangulation(tri.Points(), tri.Triangles(), hm.Height())
	m.Rescale(
		s.XSize/float32(hm.Width()-1),
		s.YSize/float32(hm.Height()-1),
		s.ZScale, s.Base)
	if s.Base > 0 {
		m.AddBase(s.XSize, s.YSize)
	}
	ctx.StopTimer(TimerMesh)

	ctx.StartTimer(TimerWrite)
	err = writeMesh(m)
	ctx.StopTimer(TimerWrite)
	if err != nil {
		return err
	}
	ctx.Progressf("mesh written to '%v'", outfile)
	return nil
}
