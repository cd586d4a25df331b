// Command henkan converts readings with a dictionary store.
//
// Readings are taken from the arguments or, without arguments, one per line
// from standard input.
//
//	henkan -store ./dict -n 5 きょうは
//	echo きょう | henkan -store s3://bucket/dict/v1 -json
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/hupe1980/henkan"
	"github.com/hupe1980/henkan/candidate"
	"github.com/hupe1980/henkan/codec"
	"github.com/hupe1980/henkan/internal/cli"
	"github.com/hupe1980/henkan/userdict"
)

var (
	storeURL  = flag.String("store", "./dict", "Dictionary store (directory, s3://bucket/prefix, minio://host/bucket/prefix)")
	n         = flag.Int("n", 5, "Number of primary conversions")
	asJSON    = flag.Bool("json", false, "Print candidates as JSON Lines")
	codecName = flag.String("codec", codec.Default.Name(), "JSON codec for -json and -user ("+strings.Join(codec.Names(), ", ")+")")
	optional  = flag.String("optional", "", "Comma separated optional dictionaries to load (person_name,place,wiki,neologism,web)")
	userFile  = flag.String("user", "", "User dictionary exported as JSON")
	cacheSize = flag.Int64("cache", 0, "Blob cache size in bytes")
	ioLimit   = flag.Int64("io-limit", 0, "Store read limit in bytes per second")
	logLevel  = flag.String("log-level", "warn", "Log level")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, in io.Reader, w io.Writer) error {
	logger, err := cli.NewLogger(*logLevel)
	if err != nil {
		return err
	}
	c, ok := codec.ByName(*codecName)
	if !ok {
		return fmt.Errorf("unknown codec %q", *codecName)
	}
	store, err := cli.OpenStore(ctx, *storeURL)
	if err != nil {
		return err
	}

	e, err := henkan.Open(ctx, store,
		henkan.WithLogger(logger),
		henkan.WithBlobCache(*cacheSize),
		henkan.WithResourceConfig(henkan.ResourceConfig{IOLimitBytesPerSec: *ioLimit}),
	)
	if err != nil {
		return err
	}
	defer e.Close()

	var qopts []henkan.QueryOption
	if *optional != "" {
		var ds []henkan.OptionalDictionary
		for _, name := range strings.Split(*optional, ",") {
			d, err := henkan.ParseOptionalDictionary(strings.TrimSpace(name))
			if err != nil {
				return err
			}
			if err := e.Load(ctx, d); err != nil {
				return err
			}
			ds = append(ds, d)
		}
		qopts = append(qopts, henkan.WithOptionalDictionaries(ds...))
	}
	if *userFile != "" {
		data, err := os.ReadFile(*userFile)
		if err != nil {
			return err
		}
		user := userdict.NewMemory()
		if err := user.Import(c, data); err != nil {
			return fmt.Errorf("%s: %w", *userFile, err)
		}
		qopts = append(qopts, henkan.WithUserDictionary(user))
	}

	lines := codec.NewLineWriter(w, c)
	convert := func(input string) error {
		cs, err := e.Candidates(input, *n, qopts...)
		if err != nil {
			return err
		}
		if *asJSON {
			return lines.Write(result{Input: input, Candidates: cs})
		}
		return write(w, input, cs)
	}

	if flag.NArg() > 0 {
		for _, input := range flag.Args() {
			if err := convert(input); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		input := strings.TrimSpace(sc.Text())
		if input == "" {
			continue
		}
		if err := convert(input); err != nil {
			return err
		}
	}
	return sc.Err()
}

type result struct {
	Input      string                `json:"input"`
	Candidates []candidate.Candidate `json:"candidates"`
}

func write(w io.Writer, input string, cs []candidate.Candidate) error {
	if _, err := fmt.Fprintf(w, "%s\n", input); err != nil {
		return err
	}
	for i, c := range cs {
		if _, err := fmt.Fprintf(w, "%3d  %s\t%s\t%d\n", i+1, c.Text, c.Category, c.Score); err != nil {
			return err
		}
	}
	return nil
}
