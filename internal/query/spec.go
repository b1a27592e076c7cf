package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Recognized request parameters.
const (
	ParamTitle         = "title"
	ParamYear          = "year"
	ParamMinYear       = "minYear"
	ParamMaxYear       = "maxYear"
	ParamMinAwards     = "minAwards"
	ParamMaxAwards     = "maxAwards"
	ParamNominations   = "nominations"
	ParamIsBestPicture = "isBestPicture"
	ParamSortBy        = "sortBy"
	ParamLimit         = "limit"
)

// Spec is the typed form of one request's query parameters. A nil field
// means the parameter was absent and puts no constraint on the result.
type Spec struct {
	Title         *string
	Year          *int
	MinYear       *int
	MaxYear       *int
	MinAwards     *int
	MaxAwards     *int
	Nominations   *int
	IsBestPicture *bool
	SortBy        SortKey
	Limit         *int
}

// parameter binds a request parameter name to its coercion and, for
// filtering parameters, to the predicate it contributes.
type parameter struct {
	name      string
	bind      func(s *Spec, raw string) error
	predicate func(s *Spec) Predicate
}

// parameters is the single source of truth for name, type and field binding.
var parameters = []parameter{
	titleFilter(ParamTitle),
	intFilter(ParamYear, func(s *Spec) **int { return &s.Year }, yearOf, equal),
	intFilter(ParamMinYear, func(s *Spec) **int { return &s.MinYear }, yearOf, atLeast),
	intFilter(ParamMaxYear, func(s *Spec) **int { return &s.MaxYear }, yearOf, atMost),
	intFilter(ParamMinAwards, func(s *Spec) **int { return &s.MinAwards }, awardsOf, atLeast),
	intFilter(ParamMaxAwards, func(s *Spec) **int { return &s.MaxAwards }, awardsOf, atMost),
	intFilter(ParamNominations, func(s *Spec) **int { return &s.Nominations }, nominationsOf, equal),
	bestPictureFilter(ParamIsBestPicture),
	{name: ParamSortBy, bind: bindSortBy},
	{name: ParamLimit, bind: bindLimit},
}

// Parse builds a Spec from request query values. Only the first value of
// each recognized key is used; empty values count as absent and unknown
// keys are ignored. The first value that fails coercion is reported as an
// *InvalidParameterError.
func Parse(values url.Values) (Spec, error) {
	s := Spec{SortBy: SortByTitle}
	for _, p := range parameters {
		raw := values.Get(p.name)
		if raw == "" {
			continue
		}
		if err := p.bind(&s, raw); err != nil {
			return Spec{}, err
		}
	}
	return s, nil
}

func titleFilter(name string) parameter {
	return parameter{
		name: name,
		bind: func(s *Spec, raw string) error {
			s.Title = &raw
			return nil
		},
		predicate: func(s *Spec) Predicate {
			if s.Title == nil {
				return nil
			}
			return titleEquals(*s.Title)
		},
	}
}

func intFilter(name string, slot func(*Spec) **int, field intField, op intOp) parameter {
	return parameter{
		name: name,
		bind: func(s *Spec, raw string) error {
			n, err := parseInt(name, raw)
			if err != nil {
				return err
			}
			*slot(s) = &n
			return nil
		},
		predicate: func(s *Spec) Predicate {
			v := *slot(s)
			if v == nil {
				return nil
			}
			return compareInt(field, op, *v)
		},
	}
}

func bestPictureFilter(name string) parameter {
	return parameter{
		name: name,
		bind: func(s *Spec, raw string) error {
			var b bool
			switch strings.ToLower(raw) {
			case "true":
				b = true
			case "false":
				b = false
			default:
				return &InvalidParameterError{Key: name, Value: raw, Reason: "must be true or false"}
			}
			s.IsBestPicture = &b
			return nil
		},
		predicate: func(s *Spec) Predicate {
			if s.IsBestPicture == nil {
				return nil
			}
			return bestPictureEquals(*s.IsBestPicture)
		},
	}
}

func bindSortBy(s *Spec, raw string) error {
	key, err := ParseSortKey(raw)
	if err != nil {
		return err
	}
	s.SortBy = key
	return nil
}

func bindLimit(s *Spec, raw string) error {
	n, err := parseInt(ParamLimit, raw)
	if err != nil {
		return err
	}
	if n < 0 {
		return &InvalidParameterError{Key: ParamLimit, Value: raw, Reason: "must not be negative"}
	}
	s.Limit = &n
	return nil
}

func parseInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &InvalidParameterError{Key: name, Value: raw, Reason: "must be an integer"}
	}
	return n, nil
}
