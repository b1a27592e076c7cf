package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/HerbHall/oscars/internal/services"
	"github.com/HerbHall/oscars/internal/store"
	"github.com/HerbHall/oscars/pkg/dataset"
)

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath := fs.String("db", "oscars.db", "path to the SQLite film store")
	collection := fs.String("collection", "oscars", "collection to replace")
	input := fs.String("input", "", "JSON or YAML collection file, optionally .gz (required)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "error: --input is required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := importFile(context.Background(), *dbPath, *collection, *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d films into %s (%s)\n", n, *collection, *dbPath)
}

func importFile(ctx context.Context, dbPath, collection, input string) (int, error) {
	f, err := os.Open(input)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(input, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("open gzip %q: %w", input, err)
		}
		defer zr.Close()
		r = zr
	}

	films, err := dataset.ReadFilms(r)
	if err != nil {
		return 0, err
	}

	repo, closeRepo, err := openRepository(ctx, dbPath)
	if err != nil {
		return 0, err
	}
	defer closeRepo()

	if err := repo.ReplaceCollection(ctx, collection, films); err != nil {
		return 0, err
	}
	return len(films), nil
}

func openRepository(ctx context.Context, dbPath string) (*services.SQLiteFilmRepository, func(), error) {
	st, err := store.New(dbPath)
	if err != nil {
		return nil, nil, err
	}
	repo, err := services.NewSQLiteFilmRepository(ctx, st)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return repo, func() { st.Close() }, nil
}
