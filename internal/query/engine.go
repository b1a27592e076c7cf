// Package query implements the film filter, sort and limit engine.
//
// The engine keeps no state between calls. Every Run allocates its own
// result slice and never modifies the films it is given.
package query

import (
	"slices"

	"github.com/HerbHall/oscars/pkg/models"
)

// Run filters films by every constraint in s, stable-sorts the matches by
// s.SortBy and truncates them to s.Limit when one was given. Films that
// compare equal keep their input order. The result is never nil.
func Run(films []models.Film, s Spec) []models.Film {
	pred := s.Predicate()

	result := make([]models.Film, 0, len(films))
	for i := range films {
		if pred(films[i]) {
			result = append(result, films[i])
		}
	}

	slices.SortStableFunc(result, s.SortBy.Compare)

	if s.Limit != nil && *s.Limit < len(result) {
		result = result[:*s.Limit]
	}
	return result
}
