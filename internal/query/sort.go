package query

import (
	"cmp"
	"strings"

	"github.com/HerbHall/oscars/pkg/models"
)

// SortKey selects the ascending order of a result.
type SortKey string

const (
	SortByTitle       SortKey = "title"
	SortByYear        SortKey = "year"
	SortByAwards      SortKey = "awards"
	SortByNominations SortKey = "nominations"
)

// comparators orders numeric fields as integers, never as text.
var comparators = map[SortKey]func(a, b models.Film) int{
	SortByTitle:       func(a, b models.Film) int { return strings.Compare(a.Title, b.Title) },
	SortByYear:        func(a, b models.Film) int { return cmp.Compare(a.Year, b.Year) },
	SortByAwards:      func(a, b models.Film) int { return cmp.Compare(a.Awards, b.Awards) },
	SortByNominations: func(a, b models.Film) int { return cmp.Compare(a.Nominations, b.Nominations) },
}

// ParseSortKey accepts one of the four sort keys, case-insensitively.
func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(strings.ToLower(raw))
	if _, ok := comparators[key]; !ok {
		return "", &InvalidParameterError{
			Key:    ParamSortBy,
			Value:  raw,
			Reason: "must be one of title, year, awards, nominations",
		}
	}
	return key, nil
}

// Compare orders a before b by the key. The zero SortKey sorts by title.
func (k SortKey) Compare(a, b models.Film) int {
	c, ok := comparators[k]
	if !ok {
		c = comparators[SortByTitle]
	}
	return c(a, b)
}
