// meshtool is a CLI utility for inspecting and exporting OBJ meshes as
// tangent-space vertex buffers.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/normalmesh/internal/config"
	"github.com/Faultbox/normalmesh/internal/logger"
	"github.com/Faultbox/normalmesh/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "dump":
		cmdDump(args)
	case "check":
		cmdCheck(args)
	case "export", "x":
		cmdExport(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - OBJ to tangent-space vertex buffer utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.obj>                 Show mesh statistics
  dump [-n N] <file.obj>          Print generated vertices
  check <file.obj>                Verify every tangent frame is orthonormal
  export [-o out] <file.obj>      Write the packed vertex buffer
  config [-o path]                Write a default config file

Mesh options (info, dump, check, export):
  -config <path>   Read mesh settings from a config file
  -zup             Convert Y-up meshes to Z-up
  -flipv=false     Keep V as authored
  -eps <value>     Weld cell size (0 = exact match)
  -strict          Fail on unknown OBJ records
  -v               Log every degenerate triangle

Examples:
  meshtool info models/rock.obj
  meshtool dump -n 6 models/rock.obj
  meshtool export -o rock.vbo models/rock.obj`)
}

// meshFlags registers the options shared by the mesh commands.
type meshFlags struct {
	configPath *string
	zUp        *bool
	flipV      *bool
	eps        *float64
	strict     *bool
	verbose    *bool
}

func addMeshFlags(fs *flag.FlagSet) meshFlags {
	return meshFlags{
		configPath: fs.String("config", "", "Config file with a mesh section"),
		zUp:        fs.Bool("zup", false, "Convert Y-up meshes to Z-up"),
		flipV:      fs.Bool("flipv", true, "Store 1-v texture coordinates"),
		eps:        fs.Float64("eps", -1, "Weld cell size, negative keeps the configured value"),
		strict:     fs.Bool("strict", false, "Fail on unknown OBJ records"),
		verbose:    fs.Bool("v", false, "Log every degenerate triangle"),
	}
}

// options merges the config file with flags that were set explicitly.
func (m meshFlags) options(fs *flag.FlagSet) (mesh.Options, error) {
	cfg, err := config.LoadFile(*m.configPath)
	if err != nil {
		return mesh.Options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "zup":
			cfg.Mesh.ZUp = *m.zUp
		case "flipv":
			cfg.Mesh.FlipV = *m.flipV
		case "strict":
			cfg.Mesh.Strict = *m.strict
		}
	})
	if *m.eps >= 0 {
		cfg.Mesh.WeldEpsilon = float32(*m.eps)
	}
	return cfg.MeshOptions(), nil
}

func (m meshFlags) initLogging() {
	level := "warn"
	if *m.verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadMesh parses and builds the mesh named by the first argument.
func loadMesh(name string, fs *flag.FlagSet, mf meshFlags) (*mesh.Source, *mesh.Mesh) {
	mf.initLogging()
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: meshtool %s [options] <file.obj>\n", name)
		os.Exit(1)
	}
	path := fs.Arg(0)

	opts, err := mf.options(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	parse := mesh.ParseOBJ
	if opts.Strict {
		parse = mesh.ParseOBJStrict
	}
	src, err := parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
		os.Exit(1)
	}
	m, err := mesh.Build(src, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
		os.Exit(1)
	}

	reportDegenerate(path, m.Degenerate)
	return src, m
}

// reportDegenerate logs fallback frames. Individual triangles are only
// logged at debug level since large scans produce many of them.
func reportDegenerate(path string, degenerate []mesh.DegenerateTriangle) {
	if len(degenerate) == 0 {
		return
	}
	log := logger.Named("mesh")
	for _, d := range degenerate {
		log.Debug("fallback tangent frame",
			zap.String("file", path),
			zap.Int("triangle", d.Triangle),
			zap.Stringer("reason", d.Reason),
		)
	}
	log.Warn("degenerate triangles",
		zap.String("file", path),
		zap.Int("count", len(degenerate)),
	)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	mf := addMeshFlags(fs)
	fs.Parse(args)

	src, m := loadMesh("info", fs, mf)

	byReason := make(map[mesh.DegenerateReason]int)
	for _, d := range m.Degenerate {
		byReason[d.Reason]++
	}

	center := m.Bounds.Center()
	fmt.Printf("Mesh:       %s\n", fs.Arg(0))
	fmt.Printf("Positions:  %d\n", len(src.Positions))
	fmt.Printf("UVs:        %d\n", len(src.UVs))
	fmt.Printf("Normals:    %d\n", len(src.Normals))
	fmt.Printf("Triangles:  %d\n", m.TriangleCount())
	fmt.Printf("Vertices:   %d (%s)\n", len(m.Vertices), formatSize(len(m.Vertices)*mesh.VertexStride))
	fmt.Printf("Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z,
		m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f) radius %.3f\n", center.X, center.Y, center.Z, m.Bounds.Radius())
	fmt.Printf("Degenerate: %d", len(m.Degenerate))
	if len(m.Degenerate) > 0 {
		fmt.Printf(" (%d %s, %d %s)", byReason[mesh.ZeroArea], mesh.ZeroArea,
			byReason[mesh.DegenerateUV], mesh.DegenerateUV)
	}
	fmt.Println()
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	mf := addMeshFlags(fs)
	limit := fs.Int("n", 0, "Limit output to N vertices (0 = all)")
	fs.Parse(args)

	_, m := loadMesh("dump", fs, mf)

	for i, v := range m.Vertices {
		if *limit > 0 && i >= *limit {
			fmt.Printf("... and %d more\n", len(m.Vertices)-*limit)
			break
		}
		fmt.Println(formatVertex(i, v))
	}
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	mf := addMeshFlags(fs)
	fs.Parse(args)

	_, m := loadMesh("check", fs, mf)

	issues := checkFrames(m.Vertices)
	for _, issue := range issues {
		fmt.Println(issue)
	}
	if len(issues) > 0 {
		fmt.Printf("%d of %d vertices failed\n", len(issues), len(m.Vertices))
		os.Exit(1)
	}
	fmt.Printf("OK: %d vertices, %d triangles\n", len(m.Vertices), m.TriangleCount())
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	mf := addMeshFlags(fs)
	output := fs.String("o", "", "Output file (default: input with .vbo extension)")
	fs.Parse(args)

	_, m := loadMesh("export", fs, mf)

	outPath := *output
	if outPath == "" {
		in := fs.Arg(0)
		outPath = strings.TrimSuffix(in, filepath.Ext(in)) + ".vbo"
	}

	data := mesh.Encode(m.Vertices)
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d vertices (%s, stride %d) to %s\n",
		len(m.Vertices), formatSize(len(data)), mesh.VertexStride, outPath)
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	output := fs.String("o", "", "Output path (default: user config directory)")
	fs.Parse(args)

	cfg := config.Default()
	path := *output
	var err error
	if path == "" {
		path, err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config to %s\n", path)
}

func formatSize(n int) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
