package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCollectionNotFound is returned by record sources for an unknown collection.
var ErrCollectionNotFound = errors.New("collection not found")

// Film is a single Oscar-nominated film as returned by the query API.
type Film struct {
	Title          string `json:"title"`
	Year           int    `json:"year"`
	Awards         int    `json:"awards"`
	Nominations    int    `json:"nominations"`
	IsBestPicture  bool   `json:"isBestPicture"`
	ReferenceCount int    `json:"numberOfReferences"`
}

// RawFilm is a film as kept by a content store, where every property is text.
// Storage metadata such as node or resource types is deliberately not part
// of the struct so it can never leak into a response.
type RawFilm struct {
	Title              string `json:"title" yaml:"title"`
	Year               string `json:"year" yaml:"year"`
	Awards             string `json:"awards" yaml:"awards"`
	Nominations        string `json:"nominations" yaml:"nominations"`
	IsBestPicture      string `json:"isBestPicture" yaml:"isBestPicture"`
	NumberOfReferences string `json:"numberOfReferences" yaml:"numberOfReferences"`
}

// MalformedRecordError reports a stored film whose property could not be
// decoded into its typed form.
type MalformedRecordError struct {
	Title string
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed film %q: field %s=%q: %v", e.Title, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Decode converts the stored text properties into a Film.
func (r RawFilm) Decode() (Film, error) {
	f := Film{Title: r.Title}

	ints := []struct {
		field string
		value string
		dst   *int
	}{
		{"year", r.Year, &f.Year},
		{"awards", r.Awards, &f.Awards},
		{"nominations", r.Nominations, &f.Nominations},
		{"numberOfReferences", r.NumberOfReferences, &f.ReferenceCount},
	}
	for _, p := range ints {
		n, err := strconv.Atoi(strings.TrimSpace(p.value))
		if err != nil {
			return Film{}, &MalformedRecordError{Title: r.Title, Field: p.field, Value: p.value, Err: err}
		}
		*p.dst = n
	}

	b, err := strconv.ParseBool(strings.TrimSpace(r.IsBestPicture))
	if err != nil {
		return Film{}, &MalformedRecordError{Title: r.Title, Field: "isBestPicture", Value: r.IsBestPicture, Err: err}
	}
	f.IsBestPicture = b

	return f, nil
}

// Raw converts a Film back into its stored text form.
func (f Film) Raw() RawFilm {
	return RawFilm{
		Title:              f.Title,
		Year:               strconv.Itoa(f.Year),
		Awards:             strconv.Itoa(f.Awards),
		Nominations:        strconv.Itoa(f.Nominations),
		IsBestPicture:      strconv.FormatBool(f.IsBestPicture),
		NumberOfReferences: strconv.Itoa(f.ReferenceCount),
	}
}
