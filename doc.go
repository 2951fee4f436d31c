/*
Package voronoi rasterizes discrete Voronoi diagrams: every pixel of a W×H
canvas is assigned to its nearest site under a configurable metric and
painted with that site's color.

Instead of testing every pixel against every site, the canvas is split
recursively. Each region only keeps the sites that can own one of its
pixels: the ones whose capital lies inside the region and the ones owning a
pixel on its boundary. A region with a single candidate is flood filled,
small regions are resolved row by row. Along every scanned line the extent
of a run of equal labels is found by probing, so long runs cost a handful
of distance evaluations.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ voronoi --help

Example rendering a diagram with random colors:

	package main

	import (
		"log"
		"math/rand"

		"github.com/esimov/voronoi"
	)

	func main() {
		rnd := rand.New(rand.NewSource(1))
		sites, err := voronoi.PlaceSites(500, 800, 600, voronoi.RandomColors(rnd), rnd)
		if err != nil {
			log.Fatal(err)
		}
		d, err := voronoi.NewDiagram(sites, 800, 600, voronoi.Config{Metric: voronoi.Taxicab})
		if err != nil {
			log.Fatal(err)
		}
		if err := d.Render(); err != nil {
			log.Fatal(err)
		}
		d.Antialias()
		if err := d.SavePNG("voronoi.png"); err != nil {
			log.Fatal(err)
		}
	}

Example coloring the cells from a source image:

	p := &voronoi.Processor{
		NumSites:  2000,
		Antialias: true,
	}
	f, _ := os.Open("source.jpg")
	defer f.Close()
	if _, err := p.Process(f, "output.png", nil); err != nil {
		fmt.Printf("Error generating the diagram: %s", err.Error())
	}
*/
package voronoi
