// Package dataset provides the film collections embedded in the binary and
// the decoder used to import collection exports.
package dataset

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/oscars/pkg/models"
)

//go:embed films.yaml
var filmsRawData []byte

// collectionFile is the top-level structure of a dataset document.
type collectionFile struct {
	Collections map[string]yaml.Node `yaml:"collections"`
}

// Catalog provides lazy-loaded access to the embedded film collections.
type Catalog struct {
	once        sync.Once
	data        []byte
	collections map[string][]models.RawFilm
	err         error
}

// NewCatalog creates a Catalog that parses the embedded YAML on first access.
func NewCatalog() *Catalog {
	return &Catalog{data: filmsRawData}
}

// NewCatalogFromBytes creates a Catalog over an arbitrary dataset document.
func NewCatalogFromBytes(data []byte) *Catalog {
	return &Catalog{data: data}
}

// FetchAll returns a copy of the films stored under collection.
func (c *Catalog) FetchAll(_ context.Context, collection string) ([]models.RawFilm, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	films, ok := c.collections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", collection, models.ErrCollectionNotFound)
	}
	cp := make([]models.RawFilm, len(films))
	copy(cp, films)
	return cp, nil
}

// Collections returns the names of all embedded collections, sorted.
func (c *Catalog) Collections(_ context.Context) ([]string, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	names := make([]string, 0, len(c.collections))
	for name := range c.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// load parses the dataset document.
func (c *Catalog) load() {
	var f collectionFile
	if err := yaml.Unmarshal(c.data, &f); err != nil {
		c.err = fmt.Errorf("dataset: parse yaml: %w", err)
		return
	}
	c.collections = make(map[string][]models.RawFilm, len(f.Collections))
	for name, node := range f.Collections {
		films, err := decodeFilms(&node)
		if err != nil {
			c.err = fmt.Errorf("dataset: collection %q: %w", name, err)
			return
		}
		c.collections[name] = films
	}
}

// ReadFilms decodes a single collection export. Two shapes are accepted:
// a plain list of films, or a content-store node whose child nodes are the
// films (scalar node properties such as jcr:primaryType are skipped).
// JSON is valid input. Numbers and booleans are kept in their textual form.
func ReadFilms(r io.Reader) ([]models.RawFilm, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.RawFilm{}, nil
		}
		return nil, fmt.Errorf("dataset: read films: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	films, err := decodeFilms(root)
	if err != nil {
		return nil, fmt.Errorf("dataset: read films: %w", err)
	}
	return films, nil
}

// decodeFilms keeps document order, which is the collection's source order.
func decodeFilms(n *yaml.Node) ([]models.RawFilm, error) {
	films := []models.RawFilm{}
	switch n.Kind {
	case yaml.SequenceNode:
		if err := n.Decode(&films); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		for i := 1; i < len(n.Content); i += 2 {
			child := n.Content[i]
			if child.Kind != yaml.MappingNode {
				continue
			}
			var f models.RawFilm
			if err := child.Decode(&f); err != nil {
				return nil, fmt.Errorf("node %q: %w", n.Content[i-1].Value, err)
			}
			films = append(films, f)
		}
	case yaml.ScalarNode:
		if n.Tag != "!!null" {
			return nil, fmt.Errorf("unexpected scalar %q", n.Value)
		}
	default:
		return nil, fmt.Errorf("unexpected node kind %d", n.Kind)
	}
	return films, nil
}
