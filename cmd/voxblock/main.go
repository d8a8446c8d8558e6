// Command voxblock converts triangle meshes and scripted primitives into
// block placement commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/chazu/voxblock/pkg/voxelize"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
)

func main() {
	var cfg config
	var meshes pathList

	flag.Var(&meshes, "mesh", "mesh file (.stl or .off); may be repeated")
	flag.StringVar(&cfg.ConfigPath, "config", "", "JSON job file")
	flag.StringVar(&cfg.ScriptPath, "script", "", "job script (zygomys Lisp)")
	flag.TextVar(&cfg.Mode, "mode", voxelize.Thin, "fidelity mode: thin, thin-smoothed, thick or thick-smoothed-up")
	flag.Float64Var(&cfg.Scale, "scale", 1, "blocks per mesh unit")
	flag.BoolVar(&cfg.Fill, "fill", false, "emit interior cells as cubes")
	flag.StringVar(&cfg.Output, "out", "", "command output file (default stdout)")
	flag.StringVar(&cfg.Preview, "preview", "", "write an STL preview of the emitted cells")
	flag.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "script evaluation limit")
	flag.IntVar(&cfg.MeshCells, "mesh-cells", 0, "marching cubes resolution for primitives (0 = default)")
	flag.BoolVar(&cfg.Separate, "separate", false, "mesh primitives one by one instead of unioning them")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "do not log progress")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags] [mesh.stl|mesh.off ...]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()

	cfg.Meshes = append(meshes, flag.Args()...)
	flag.Visit(func(f *flag.Flag) {
		cfg.set = append(cfg.set, f.Name)
	})
	if cfg.ConfigPath != "" && cfg.ScriptPath != "" {
		essentials.Must(errors.New("-config and -script are mutually exclusive"))
	}
	if cfg.ConfigPath == "" && cfg.ScriptPath == "" && len(cfg.Meshes) == 0 {
		flag.Usage()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, cfg, os.Stdout)
	if errors.Is(err, voxelize.ErrCancelled) {
		log.Printf("[voxblock] interrupted, nothing written")
		stop()
		os.Exit(130)
	}
	essentials.Must(err)
}

// pathList collects a repeated flag.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(s string) error {
	*p = append(*p, s)
	return nil
}

// logf logs unless the run is quiet.
func (c *config) logf(format string, args ...any) {
	if !c.Quiet {
		log.Printf("[voxblock] "+format, args...)
	}
}

// output opens the command destination. The returned closer is a no-op for
// stdout.
func output(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
