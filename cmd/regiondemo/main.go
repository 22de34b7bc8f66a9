// Command regiondemo evaluates a region scenario, prints the resulting
// rectangle lists and damage, and saves the rendered canvas.
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/region"
	"github.com/gogpu/region/internal/scenario"
)

//go:embed demo.yaml
var demoScenario []byte

func main() {
	var (
		path    = flag.String("scenario", "", "scenario file (default: built-in demo)")
		output  = flag.String("output", "regions.png", "output file")
		verbose = flag.Bool("v", false, "log region engine activity to stderr")
	)
	flag.Parse()

	if *verbose {
		region.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	doc, err := load(*path)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}
	res, err := scenario.Run(context.Background(), doc)
	if err != nil {
		log.Fatalf("Failed to run scenario: %v", err)
	}

	report(os.Stdout, res, doc)

	if err := res.Pixmap.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Canvas saved to %s (%dx%d)\n", *output, doc.Width, doc.Height)
}

func load(path string) (*scenario.Document, error) {
	if path == "" {
		return scenario.Parse(demoScenario)
	}
	return scenario.Load(path)
}

func report(w io.Writer, res *scenario.Result, doc *scenario.Document) {
	for _, name := range res.Names() {
		fmt.Fprintf(w, "region %s\n%v\n", name, res.Regions[name])
	}
	fmt.Fprintf(w, "damage\n%v\n", res.Damage)
	for _, c := range doc.Crtcs {
		if out, ok := res.Outputs[c.Name]; ok {
			fmt.Fprintf(w, "output %s\n%v\n", c.Name, out)
		}
	}
}
