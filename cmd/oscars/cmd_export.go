package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/HerbHall/oscars/pkg/dataset"
)

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := fs.String("db", "oscars.db", "path to the SQLite film store")
	collection := fs.String("collection", "oscars", "collection to export")
	output := fs.String("output", "", "output file, gzip-compressed when it ends in .gz (default: {collection}-{timestamp}.yaml.gz)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *output == "" {
		*output = fmt.Sprintf("%s-%s.yaml.gz", *collection, time.Now().Format("20060102-150405"))
	}

	n, err := exportFile(context.Background(), *dbPath, *collection, *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d films to %s\n", n, *output)
}

func exportFile(ctx context.Context, dbPath, collection, output string) (n int, err error) {
	if _, err := os.Stat(dbPath); err != nil {
		return 0, fmt.Errorf("database file not found: %w", err)
	}

	repo, closeRepo, err := openRepository(ctx, dbPath)
	if err != nil {
		return 0, err
	}
	defer closeRepo()

	films, err := repo.FetchAll(ctx, collection)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var w io.Writer = f
	if strings.HasSuffix(output, ".gz") {
		zw := gzip.NewWriter(f)
		defer func() {
			if cerr := zw.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = zw
	}

	if err := dataset.WriteFilms(w, films); err != nil {
		return 0, err
	}
	return len(films), nil
}
