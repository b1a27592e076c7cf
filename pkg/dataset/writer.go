package dataset

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/oscars/pkg/models"
)

// WriteFilms encodes films as a YAML list that ReadFilms accepts.
func WriteFilms(w io.Writer, films []models.RawFilm) error {
	if films == nil {
		films = []models.RawFilm{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(films); err != nil {
		return fmt.Errorf("dataset: write films: %w", err)
	}
	return enc.Close()
}
