// Package films serves filtered, sorted and limited views of the film
// collections held by a record source.
package films

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/oscars/internal/query"
	"github.com/HerbHall/oscars/pkg/models"
)

// Source supplies the unfiltered films of a collection.
type Source interface {
	// FetchAll returns every film stored under collection, in store order.
	// Unknown collections yield models.ErrCollectionNotFound.
	FetchAll(ctx context.Context, collection string) ([]models.RawFilm, error)

	// Collections returns the names of the addressable collections.
	Collections(ctx context.Context) ([]string, error)
}

// Service runs queries against a Source.
type Service struct {
	source  Source
	logger  *zap.Logger
	metrics *Metrics
}

// NewService creates a Service reading from source.
func NewService(source Source, logger *zap.Logger, metrics *Metrics) *Service {
	return &Service{source: source, logger: logger, metrics: metrics}
}

// Query loads collection and returns the films selected by spec.
// Films that fail to decode are logged and left out of the result.
func (s *Service) Query(ctx context.Context, collection string, spec query.Spec) ([]models.Film, error) {
	raw, err := s.source.FetchAll(ctx, collection)
	if err != nil {
		if errors.Is(err, models.ErrCollectionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", query.ErrSourceUnavailable, err)
	}

	films := make([]models.Film, 0, len(raw))
	for i := range raw {
		f, err := raw[i].Decode()
		if err != nil {
			s.logger.Warn("skipping malformed film",
				zap.String("collection", collection),
				zap.Int("index", i),
				zap.Error(err),
			)
			s.metrics.malformedRecord(collection)
			continue
		}
		films = append(films, f)
	}

	return query.Run(films, spec), nil
}

// Collections lists the collections the source can serve.
func (s *Service) Collections(ctx context.Context) ([]string, error) {
	names, err := s.source.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", query.ErrSourceUnavailable, err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
