package query

import (
	"golang.org/x/text/cases"

	"github.com/HerbHall/oscars/pkg/models"
)

// Predicate reports whether a film satisfies a filter.
type Predicate func(models.Film) bool

type intField func(models.Film) int

func yearOf(f models.Film) int        { return f.Year }
func awardsOf(f models.Film) int      { return f.Awards }
func nominationsOf(f models.Film) int { return f.Nominations }

type intOp func(got, want int) bool

func equal(got, want int) bool { return got == want }
func atLeast(got, lo int) bool { return got >= lo }
func atMost(got, hi int) bool  { return got <= hi }

func compareInt(field intField, op intOp, want int) Predicate {
	return func(f models.Film) bool { return op(field(f), want) }
}

// titleEquals matches titles exactly under Unicode case folding. The
// returned predicate holds a stateful Caser and must stay on one goroutine.
func titleEquals(title string) Predicate {
	fold := cases.Fold()
	want := fold.String(title)
	return func(f models.Film) bool { return fold.String(f.Title) == want }
}

func bestPictureEquals(want bool) Predicate {
	return func(f models.Film) bool { return f.IsBestPicture == want }
}

// Predicate returns the conjunction of every constraint present in s.
// With no constraints it accepts every film.
func (s Spec) Predicate() Predicate {
	var preds []Predicate
	for _, p := range parameters {
		if p.predicate == nil {
			continue
		}
		if pred := p.predicate(&s); pred != nil {
			preds = append(preds, pred)
		}
	}
	return func(f models.Film) bool {
		for _, pred := range preds {
			if !pred(f) {
				return false
			}
		}
		return true
	}
}
