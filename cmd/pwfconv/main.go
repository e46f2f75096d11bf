// Command pwfconv converts an ANAREDE case file into one of the supported
// output formats.
// Usage: pwfconv [-f format] [-o output] [-schema file] input.pwf
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"pwfconv/internal/config"
	"pwfconv/internal/schema"
	"pwfconv/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	formatFlag := flag.String("f", cfg.Convert.DefaultFormat, "output format: json, dat, csv, xlsx")
	outFlag := flag.String("o", "", "output path (default: input name with the format extension; - for stdout)")
	schemaFlag := flag.String("schema", cfg.Schema.Path, "column schema file (default: embedded schema)")
	verbose := flag.Bool("v", false, "print parse warnings to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected exactly one input file, got %d", flag.NArg())
	}
	input := flag.Arg(0)

	format, err := service.ParseFormat(*formatFlag)
	if err != nil {
		return err
	}

	reg, err := schema.Load(*schemaFlag)
	if err != nil {
		return fmt.Errorf("failed to load column schema: %w", err)
	}

	svc := service.NewConvertService(reg, &cfg.Convert)
	res, err := svc.ConvertFile(input)
	if err != nil {
		return err
	}
	if *verbose {
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}

	out := *outFlag
	if out == "-" {
		return svc.Render(os.Stdout, res.Document, format)
	}
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + string(format)
	}

	paths, err := svc.RenderFiles(out, res.Document, format)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Printf("wrote %s", p)
	}
	return nil
}
