package testutil

import "github.com/HerbHall/oscars/pkg/models"

// NewFilm returns a Film with sensible defaults, suitable for test fixtures.
// Options are applied in order.
func NewFilm(opts ...func(*models.Film)) models.Film {
	f := models.Film{
		Title:          "Test Film",
		Year:           2000,
		Awards:         1,
		Nominations:    3,
		ReferenceCount: 100,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// NewRawFilm is NewFilm in stored text form.
func NewRawFilm(opts ...func(*models.Film)) models.RawFilm {
	return NewFilm(opts...).Raw()
}

// WithTitle sets the film title.
func WithTitle(title string) func(*models.Film) {
	return func(f *models.Film) { f.Title = title }
}

// WithYear sets the release year.
func WithYear(year int) func(*models.Film) {
	return func(f *models.Film) { f.Year = year }
}

// WithAwards sets the number of awards won.
func WithAwards(n int) func(*models.Film) {
	return func(f *models.Film) { f.Awards = n }
}

// WithNominations sets the number of nominations.
func WithNominations(n int) func(*models.Film) {
	return func(f *models.Film) { f.Nominations = n }
}

// WithBestPicture marks the film as a Best Picture winner.
func WithBestPicture(won bool) func(*models.Film) {
	return func(f *models.Film) { f.IsBestPicture = won }
}

// WithReferences sets the reference count.
func WithReferences(n int) func(*models.Film) {
	return func(f *models.Film) { f.ReferenceCount = n }
}
