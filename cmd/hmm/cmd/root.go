package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/natanalt/hmm"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "hmm INFILE [OUTFILE]",
	Short: "convert heightmap images to triangle meshes",
	Long: `hmm converts a grayscale heightmap image into a triangulated surface
mesh whose vertical error is bounded, using far fewer triangles than a
regular grid. The OUTFILE extension selects the format (.stl or .obj);
without OUTFILE only the requested auxiliary images are written.

Build settings can also come from a YAML file (see 'hmm config');
explicitly passed flags override the file.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		infile := args[0]
		outfile := ""
		if len(args) == 2 {
			outfile = args[1]
		}
		check(fileExists(infile))

		s := resolveSettings(cmd)
		ctx := hmm.NewBuildContext(!s.Quiet)
		if err := hmm.NewPipeline(ctx, s).Run(infile, outfile); err != nil {
			ctx.DumpLog("build failed:")
			fmt.Printf("error, %v\n", err)
			os.Exit(-1)
		}
		if !s.Quiet {
			ctx.DumpLog("mesh built in %v:", ctx.AccumulatedTime(hmm.TimerTotal))
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

// flagged mirrors the settings fields addressable from the command line; the
// parsed values are merged over the config file by resolveSettings.
var flagged = hmm.NewSettings()

func init() {
	f := RootCmd.Flags()

	f.StringVar(&cfgFile, "config", "", "build settings file (YAML)")

	f.Float32VarP(&flagged.XSize, "xsize", "x", 0, "physical size along x (required)")
	f.Float32VarP(&flagged.YSize, "ysize", "y", 0, "physical size along y (required)")
	f.Float32VarP(&flagged.ZScale, "zscale", "z", 0, "physical height of the full elevation range (required)")

	f.Float64VarP(&flagged.MaxError, "error", "e", flagged.MaxError, "maximum vertical error, as a fraction of the elevation range")
	f.IntVarP(&flagged.MaxTriangles, "triangles", "t", 0, "maximum number of triangles (0 = unbounded)")
	f.IntVarP(&flagged.MaxPoints, "points", "p", 0, "maximum number of vertices (0 = unbounded)")

	f.Float32VarP(&flagged.Base, "base", "b", 0, "solid base height (0 = open surface)")

	f.BoolVar(&flagged.Level, "level", false, "auto-level the elevation range before meshing")
	f.BoolVar(&flagged.Invert, "invert", false, "invert the elevations")
	f.Float64Var(&flagged.Gamma, "gamma", 0, "gamma-correct the elevations (0 = off)")
	f.IntVar(&flagged.Blur, "blur", 0, "gaussian blur radius in pixels (0 = off)")

	f.IntVar(&flagged.BorderSize, "border-size", 0, "flat border width in pixels (0 = off)")
	f.Float64Var(&flagged.BorderHeight, "border-height", 1, "border elevation in [0,1]")

	f.StringVar(&flagged.NormalMap, "normal-map", "", "write a normal map image to this path")
	f.StringVar(&flagged.ShadePath, "shade-path", "", "write a hillshaded image to this path")
	f.Float32Var(&flagged.ShadeAlt, "shade-alt", flagged.ShadeAlt, "hillshade light altitude in degrees")
	f.Float32Var(&flagged.ShadeAz, "shade-az", flagged.ShadeAz, "hillshade light azimuth in degrees")

	f.BoolVarP(&flagged.Quiet, "quiet", "q", false, "suppress progress output")
}

// resolveSettings merges the three setting sources: defaults, then the
// config file when one is given, then every flag explicitly set on the
// command line.
func resolveSettings(cmd *cobra.Command) hmm.Settings {
	s := hmm.NewSettings()
	if cfgFile != "" {
		check(unmarshalYAMLFile(cfgFile, &s))
	}

	override := map[string]func(){
		"xsize":         func() { s.XSize = flagged.XSize },
		"ysize":         func() { s.YSize = flagged.YSize },
		"zscale":        func() { s.ZScale = flagged.ZScale },
		"error":         func() { s.MaxError = flagged.MaxError },
		"triangles":     func() { s.MaxTriangles = flagged.MaxTriangles },
		"points":        func() { s.MaxPoints = flagged.MaxPoints },
		"base":          func() { s.Base = flagged.Base },
		"level":         func() { s.Level = flagged.Level },
		"invert":        func() { s.Invert = flagged.Invert },
		"gamma":         func() { s.Gamma = flagged.Gamma },
		"blur":          func() { s.Blur = flagged.Blur },
		"border-size":   func() { s.BorderSize = flagged.BorderSize },
		"border-height": func() { s.BorderHeight = flagged.BorderHeight },
		"normal-map":    func() { s.NormalMap = flagged.NormalMap },
		"shade-path":    func() { s.ShadePath = flagged.ShadePath },
		"shade-alt":     func() { s.ShadeAlt = flagged.ShadeAlt },
		"shade-az":      func() { s.ShadeAz = flagged.ShadeAz },
		"quiet":         func() { s.Quiet = flagged.Quiet },
	}
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		if apply, ok := override[fl.Name]; ok {
			apply()
		}
	})
	return s
}
