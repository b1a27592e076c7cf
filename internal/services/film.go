package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/HerbHall/oscars/internal/store"
	"github.com/HerbHall/oscars/pkg/models"
)

// FilmRepository stores film collections as raw text records so that
// malformed values survive an import and are reported at query time.
type FilmRepository interface {
	// FetchAll returns every film of collection in import order.
	FetchAll(ctx context.Context, collection string) ([]models.RawFilm, error)

	// Collections returns the distinct collection names, sorted.
	Collections(ctx context.Context) ([]string, error)

	// ReplaceCollection atomically swaps the contents of collection.
	ReplaceCollection(ctx context.Context, collection string, films []models.RawFilm) error

	// DeleteCollection removes every film of collection.
	DeleteCollection(ctx context.Context, collection string) error
}

// Compile-time interface guard.
var _ FilmRepository = (*SQLiteFilmRepository)(nil)

// filmsComponent keys this repository's rows in schema_migrations.
const filmsComponent = "films"

var filmMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create films table",
		Up: func(tx *sql.Tx) error {
			stmts := []string{
				`CREATE TABLE films (
					collection           TEXT    NOT NULL,
					position             INTEGER NOT NULL,
					title                TEXT    NOT NULL DEFAULT '',
					year                 TEXT    NOT NULL DEFAULT '',
					awards               TEXT    NOT NULL DEFAULT '',
					nominations          TEXT    NOT NULL DEFAULT '',
					is_best_picture      TEXT    NOT NULL DEFAULT '',
					number_of_references TEXT    NOT NULL DEFAULT '',
					PRIMARY KEY (collection, position)
				)`,
				`CREATE INDEX idx_films_collection ON films(collection)`,
			}
			for _, stmt := range stmts {
				if _, err := tx.Exec(stmt); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// SQLiteFilmRepository implements FilmRepository using SQLite.
type SQLiteFilmRepository struct {
	db *sql.DB
	st *store.SQLiteStore
}

// NewSQLiteFilmRepository runs the films migrations on st and returns a
// repository over it.
func NewSQLiteFilmRepository(ctx context.Context, st *store.SQLiteStore) (*SQLiteFilmRepository, error) {
	if err := st.Migrate(ctx, filmsComponent, filmMigrations); err != nil {
		return nil, fmt.Errorf("migrate films: %w", err)
	}
	return &SQLiteFilmRepository{db: st.DB(), st: st}, nil
}

const filmColumns = `title, year, awards, nominations, is_best_picture, number_of_references`

func (r *SQLiteFilmRepository) FetchAll(ctx context.Context, collection string) ([]models.RawFilm, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+filmColumns+` FROM films WHERE collection = ? ORDER BY position`, collection)
	if err != nil {
		return nil, fmt.Errorf("fetch collection %q: %w", collection, err)
	}
	defer rows.Close()

	var films []models.RawFilm
	for rows.Next() {
		var f models.RawFilm
		if err := rows.Scan(&f.Title, &f.Year, &f.Awards, &f.Nominations, &f.IsBestPicture, &f.NumberOfReferences); err != nil {
			return nil, fmt.Errorf("scan film: %w", err)
		}
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection %q: %w", collection, err)
	}

	if films == nil {
		return nil, fmt.Errorf("collection %q: %w", collection, models.ErrCollectionNotFound)
	}
	return films, nil
}

func (r *SQLiteFilmRepository) Collections(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT collection FROM films ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *SQLiteFilmRepository) ReplaceCollection(ctx context.Context, collection string, films []models.RawFilm) error {
	if strings.TrimSpace(collection) == "" {
		return fmt.Errorf("%w: collection name is empty", ErrInvalidInput)
	}

	return r.st.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM films WHERE collection = ?`, collection); err != nil {
			return fmt.Errorf("clear collection %q: %w", collection, err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO films (collection, position, `+filmColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := range films {
			f := &films[i]
			if _, err := stmt.ExecContext(ctx, collection, i,
				f.Title, f.Year, f.Awards, f.Nominations, f.IsBestPicture, f.NumberOfReferences); err != nil {
				return fmt.Errorf("insert film %d of %q: %w", i, collection, err)
			}
		}
		return nil
	})
}

func (r *SQLiteFilmRepository) DeleteCollection(ctx context.Context, collection string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM films WHERE collection = ?`, collection)
	if err != nil {
		return fmt.Errorf("delete collection %q: %w", collection, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
