// Command spatialjoin reads one geometry per line from standard input
// (spec.md §6) and writes every confirmed spatial relation to the
// configured output.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/patrickbrosi/spatialjoin"
	"github.com/patrickbrosi/spatialjoin/options"
	"github.com/patrickbrosi/spatialjoin/relio"
	"github.com/patrickbrosi/spatialjoin/types"
	"github.com/patrickbrosi/spatialjoin/wkt"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "spatialjoin",
		Usage: "Computes spatial relations between geometries read from standard input",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file, empty prints to stdout"},
			&cli.StringFlag{Name: "cache", Aliases: []string{"c"}, Value: ".", Usage: "cache directory for intermediate files"},
			&cli.BoolFlag{Name: "reuse-cache", Aliases: []string{"C"}, Usage: "don't parse input, re-use intermediate cache files"},
			&cli.StringFlag{Name: "prefix", Value: "", Usage: "prefix added at the beginning of every relation"},
			&cli.StringFlag{Name: "suffix", Value: "\n", Usage: "suffix added at the end of every relation"},
			&cli.StringFlag{Name: "intersects", Value: " intersects ", Usage: "separator between intersecting geometry IDs"},
			&cli.StringFlag{Name: "contains", Value: " contains ", Usage: "separator between containing geometry IDs"},
			&cli.BoolFlag{Name: "no-box-ids", Usage: "disable box-id criteria for contains/intersect computation"},
			&cli.BoolFlag{Name: "no-surface-area", Usage: "disable surface-area criteria for polygon contains (no stage reads this setting, so it has no effect)"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"t"}, Usage: "number of pair-checker worker goroutines (default: one per CPU minus one)"},
		},
		HideVersion: true,
		Action:      run,
		Authors:     []any{"https://github.com/patrickbrosi"},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	opts := []options.ConfigFunc{
		options.WithCacheDir(cmd.String("cache")),
		options.WithReuseCache(cmd.Bool("reuse-cache")),
		options.WithPrefix(cmd.String("prefix")),
		options.WithSuffix(cmd.String("suffix")),
		options.WithSeparator(types.PredIntersects, cmd.String("intersects")),
		options.WithSeparator(types.PredContains, cmd.String("contains")),
		options.WithBoxIDs(!cmd.Bool("no-box-ids")),
		options.WithSurfaceArea(!cmd.Bool("no-surface-area")),
	}
	if n := cmd.Int("workers"); n > 0 {
		opts = append(opts, options.WithNumWorkers(int(n)))
	}
	cfg := options.ApplyConfig(options.DefaultConfig(), opts...)

	sweeper, err := spatialjoin.New(cfg)
	if err != nil {
		return fmt.Errorf("opening engine: %w", err)
	}
	defer sweeper.Close()

	if !cfg.ReuseCache {
		log.Print("parsing input geometries...")
		if err := parseInput(os.Stdin, sweeper); err != nil {
			return err
		}
		if err := sweeper.Flush(); err != nil {
			return fmt.Errorf("flushing: %w", err)
		}
	}

	out, err := relio.New(cmd.String("output"), cfg.NumWorkers)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}

	log.Print("sweeping...")
	if err := sweeper.Sweep(out); err != nil {
		return fmt.Errorf("sweeping: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	log.Print("done.")
	return nil
}

// parseInput reads one geometry per line from r and adds each to
// sweeper. A malformed line (wkt.ErrParse) or a geometry the engine
// rejects (spatialjoin.ErrInvalidGeometry) is logged and skipped; every
// other error aborts the run.
func parseInput(r io.Reader, sweeper *spatialjoin.Sweeper) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 100*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if raw == "" {
			continue
		}

		line, err := wkt.ParseLine(raw)
		if err != nil {
			if errors.Is(err, wkt.ErrParse) {
				log.Printf("skipping malformed line %d: %v", lineNo, err)
				continue
			}
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		if err := sweeper.Add(line); err != nil {
			if errors.Is(err, spatialjoin.ErrInvalidGeometry) {
				log.Printf("skipping invalid geometry on line %d: %v", lineNo, err)
				continue
			}
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}
