// Command henkan-build compiles text dictionary sources into a dictionary
// store.
//
// The source directory holds connection.txt (a "rows cols" header followed
// by "right left cost" lines) and one <name>.tsv per dictionary with
// "reading<TAB>left<TAB>right<TAB>cost<TAB>surface" lines. system.tsv is
// required.
//
//	henkan-build -src ./src -out ./dict -compression zstd
//	henkan-build -src ./src -out s3://bucket/dict/v1 -zip
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/henkan"
	"github.com/hupe1980/henkan/dictionary"
	"github.com/hupe1980/henkan/internal/cli"
	"github.com/hupe1980/henkan/internal/connection"
)

var (
	src         = flag.String("src", ".", "Source directory with connection.txt and <name>.tsv files")
	out         = flag.String("out", "./dict", "Destination store (directory, s3://bucket/prefix, minio://host/bucket/prefix)")
	compression = flag.String("compression", "zstd", "Payload compression: none, lz4 or zstd")
	zipped      = flag.Bool("zip", false, "Wrap every artifact in a single-entry zip archive")
	logLevel    = flag.String("log-level", "info", "Log level")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	logger, err := cli.NewLogger(*logLevel)
	if err != nil {
		return err
	}
	comp, err := dictionary.ParseCompression(*compression)
	if err != nil {
		return err
	}
	store, err := cli.OpenStore(ctx, *out)
	if err != nil {
		return err
	}
	opts := dictionary.SaveOptions{Compression: comp, Zip: *zipped}

	start := time.Now()
	f, err := os.Open(filepath.Join(*src, "connection.txt"))
	if err != nil {
		return err
	}
	matrix, err := connection.ReadText(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("connection.txt: %w", err)
	}
	if err := dictionary.SaveMatrix(ctx, store, matrix, opts); err != nil {
		return err
	}
	logger.InfoContext(ctx, "matrix written", "rows", matrix.Rows(), "cols", matrix.Cols())

	sources, err := filepath.Glob(filepath.Join(*src, "*.tsv"))
	if err != nil {
		return err
	}
	sort.Strings(sources)
	if !hasSystem(sources) {
		return errors.New("system.tsv not found in " + *src)
	}

	pos := dictionary.NewPOSTable()
	for _, path := range sources {
		name := strings.TrimSuffix(filepath.Base(path), ".tsv")
		d, err := buildOne(path, name, pos)
		if err != nil {
			return err
		}
		if err := dictionary.Save(ctx, store, d, opts); err != nil {
			return err
		}
		logger.InfoContext(ctx, "dictionary written",
			"dictionary", name,
			"tokens", d.Len(),
			"readings", d.Reading.NumTerms(),
		)
	}
	if err := dictionary.SavePOS(ctx, store, pos, opts); err != nil {
		return err
	}

	logger.InfoContext(ctx, "build completed",
		"dictionaries", len(sources),
		"compression", comp.String(),
		"duration", time.Since(start),
	)
	return nil
}

func hasSystem(sources []string) bool {
	for _, s := range sources {
		if filepath.Base(s) == henkan.SystemDictionary+".tsv" {
			return true
		}
	}
	return false
}

func buildOne(path, name string, pos *dictionary.POSTable) (*dictionary.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := dictionary.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b := dictionary.NewBuilder(name, pos)
	if err := b.AddAll(words); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b.Build()
}
