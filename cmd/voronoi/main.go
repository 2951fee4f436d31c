package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/voronoi"
	"github.com/esimov/voronoi/utils"
	"golang.org/x/term"
)

const helperBanner = `
┬  ┬┌─┐┬─┐┌─┐┌┐┌┌─┐┬
└┐┌┘│ │├┬┘│ │││││ ││
 └┘ └─┘┴└─└─┘┘└┘└─┘┴
Discrete Voronoi diagram rasterizer.

`

var (
	// Flags
	source       = flag.String("in", "", "Source image, directory or URL used to color the cells")
	destination  = flag.String("out", "", "Destination PNG file or directory")
	width        = flag.Int("w", 0, "Canvas width (defaults to the source width, or 800)")
	height       = flag.Int("h", 0, "Canvas height (defaults to the source height, or 600)")
	numSites     = flag.Int("sites", 500, "Number of sites")
	metric       = flag.String("metric", "euclidean", "Distance metric: taxicab, euclidean, cubic, quartic or power")
	exponent     = flag.Float64("exp", 2, "Exponent of the power metric")
	minSize      = flag.Int("minsize", voronoi.DefaultMinSize, "Edge length below which regions are not split")
	crossCheck   = flag.Int("check", 0, "Cross-check every n-th pixel against brute force (debug)")
	stages       = flag.Int("stages", 1, "Render the diagram in n stages of growing site counts")
	seed         = flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	antialias    = flag.Bool("aa", true, "Antialias cell borders")
	markerRadius = flag.Float64("markers", 0, "Radius of the dots drawn on capitals (0 disables)")
	grayscale    = flag.Bool("gray", false, "Convert the source image to grayscale")
	verbose      = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helperBanner)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*destination) == 0 {
		log.Fatal("Usage: voronoi -out out.png [-in input.jpg]")
	}
	if *verbose {
		voronoi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	isTerm := term.IsTerminal(int(os.Stderr.Fd()))

	p := &voronoi.Processor{
		Width:        *width,
		Height:       *height,
		NumSites:     *numSites,
		Metric:       *metric,
		Exponent:     *exponent,
		MinSize:      *minSize,
		CrossCheck:   *crossCheck,
		Stages:       *stages,
		Seed:         *seed,
		Antialias:    *antialias,
		MarkerRadius: *markerRadius,
		Grayscale:    *grayscale,
	}

	toProcess, err := collectJobs(*source, *destination)
	if err != nil {
		log.Fatal(err)
	}
	if len(*source) == 0 && (p.Width == 0 || p.Height == 0) {
		p.Width, p.Height = 800, 600
	}

	for in, out := range toProcess {
		if err := run(p, in, out, isTerm); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", utils.Colorize(
				fmt.Sprintf("Error generating %s: %v", filepath.Base(out), err), utils.ErrorColor, isTerm))
		}
	}
}

// collectJobs maps every input to its output path. An empty source yields
// a single job without input image.
func collectJobs(source, destination string) (map[string]string, error) {
	toProcess := make(map[string]string)
	if len(source) == 0 || utils.IsURL(source) {
		toProcess[source] = destination
		return toProcess, nil
	}

	fs, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("unable to open source: %w", err)
	}
	if !fs.IsDir() {
		toProcess[source] = destination
		return toProcess, nil
	}

	// Supported image files.
	extensions := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".bmp": true}

	files, err := os.ReadDir(source)
	if err != nil {
		return nil, fmt.Errorf("unable to read dir: %w", err)
	}
	dst, err := os.Stat(destination)
	if err != nil {
		return nil, fmt.Errorf("unable to get dir stats: %w", err)
	}
	if !dst.IsDir() {
		return nil, fmt.Errorf("please specify a directory as destination")
	}

	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if f.IsDir() || !extensions[ext] {
			continue
		}
		name := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
		toProcess[filepath.Join(source, f.Name())] = filepath.Join(destination, name+".png")
	}
	return toProcess, nil
}

func run(p *voronoi.Processor, in, out string, isTerm bool) error {
	var src io.Reader
	switch {
	case utils.IsURL(in):
		f, err := utils.DownloadImage(in)
		if err != nil {
			return err
		}
		defer os.Remove(f.Name())
		defer f.Close()
		src = f
	case len(in) > 0:
		f, err := os.Open(in)
		if err != nil {
			return fmt.Errorf("unable to open source file: %w", err)
		}
		defer f.Close()
		src = f
	}

	var s *utils.Spinner
	if isTerm {
		s = utils.NewSpinner(os.Stderr)
		s.Start("Generating Voronoi diagram...")
	}
	d, err := p.Process(src, out, func(stage int, d *voronoi.Diagram) {
		if p.Stages > 1 {
			log.Printf("stage %d: %d sites, %d pixels resolved", stage+1, len(d.Sites), d.Stats.Resolved)
		}
	})
	if s != nil {
		elapsed := s.Stop()
		if err == nil {
			fmt.Fprintf(os.Stderr, "Generated in: %s\n", utils.Colorize(utils.FormatTime(elapsed), utils.SuccessColor, true))
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Rendered %s sites into %d regions, %s pixels searched\n",
		utils.Colorize(fmt.Sprint(len(d.Sites)), utils.SuccessColor, isTerm),
		d.Stats.Regions,
		utils.Colorize(fmt.Sprint(d.Stats.Resolved), utils.SuccessColor, isTerm))
	fmt.Fprintf(os.Stderr, "Saved as: %s\n", filepath.Base(out))
	return nil
}
