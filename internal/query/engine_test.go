package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/oscars/pkg/models"
)

func film(title string, year, awards, nominations int, best bool) models.Film {
	return models.Film{Title: title, Year: year, Awards: awards, Nominations: nominations, IsBestPicture: best}
}

// fixture is small enough to enumerate every constraint combination over it.
var fixture = []models.Film{
	film("Parasite", 2019, 4, 6, true),
	film("Black Panther", 2018, 3, 7, false),
	film("Bohemian Rhapsody", 2018, 4, 5, false),
	film("Green Book", 2018, 3, 5, true),
	film("Joker", 2019, 2, 11, false),
	film("Wings", 1927, 2, 2, true),
	film("Ben-Hur", 1959, 11, 12, true),
}

func mustParse(t *testing.T, raw string) Spec {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	s, err := Parse(v)
	require.NoError(t, err)
	return s
}

func titles(films []models.Film) []string {
	out := make([]string, len(films))
	for i := range films {
		out[i] = films[i].Title
	}
	return out
}

func TestRun_SampleScenarios(t *testing.T) {
	pair := []models.Film{
		{Title: "Parasite", Year: 2019, Awards: 4, Nominations: 6, IsBestPicture: true, ReferenceCount: 8855},
		{Title: "Black Panther", Year: 2018, Awards: 3, Nominations: 7, IsBestPicture: false, ReferenceCount: 770},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"year=2019&minAwards=4", []string{"Parasite"}},
		{"minYear=2018&sortBy=nominations&limit=1", []string{"Parasite"}},
		{"minYear=2018&sortBy=nominations&limit=2", []string{"Parasite", "Black Panther"}},
		{"title=NonExisting", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Run(pair, mustParse(t, tt.query))
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestRun_LowestNominationsFirst(t *testing.T) {
	pair := []models.Film{
		film("Parasite", 2019, 4, 8, true),
		film("Black Panther", 2018, 3, 7, false),
	}
	got := Run(pair, mustParse(t, "minYear=2018&sortBy=nominations&limit=1"))
	assert.Equal(t, []string{"Black Panther"}, titles(got))
}

func TestRun_NoConstraintsSortsByTitle(t *testing.T) {
	got := Run(fixture, mustParse(t, ""))

	require.Len(t, got, len(fixture))
	want := titles(fixture)
	slices.Sort(want)
	assert.Equal(t, want, titles(got))
}

func TestRun_TitleIsCaseInsensitiveExact(t *testing.T) {
	assert.Equal(t, []string{"Green Book"}, titles(Run(fixture, mustParse(t, "title=green+BOOK"))))
	assert.Empty(t, Run(fixture, mustParse(t, "title=Green")))
}

func TestRun_AwardsBoundsUseAwards(t *testing.T) {
	// Every fixture year is far above any award count, so a bound compared
	// against the wrong field would accept everything.
	got := Run(fixture, mustParse(t, "minAwards=4&sortBy=awards"))
	assert.Equal(t, []string{"Parasite", "Bohemian Rhapsody", "Ben-Hur"}, titles(got))

	got = Run(fixture, mustParse(t, "maxAwards=2"))
	assert.Equal(t, []string{"Joker", "Wings"}, titles(got))
}

func TestRun_NumericSort(t *testing.T) {
	films := []models.Film{
		film("A", 10, 10, 10, false),
		film("B", 9, 9, 9, false),
		film("C", 100, 100, 100, false),
	}
	for _, key := range []string{"year", "awards", "nominations"} {
		t.Run(key, func(t *testing.T) {
			got := Run(films, mustParse(t, "sortBy="+key))
			assert.Equal(t, []string{"B", "A", "C"}, titles(got))
		})
	}
}

func TestRun_TitleSortIsCaseSensitive(t *testing.T) {
	films := []models.Film{film("b", 1, 1, 1, false), film("B", 1, 1, 1, false), film("a", 1, 1, 1, false)}
	assert.Equal(t, []string{"B", "a", "b"}, titles(Run(films, Spec{})))
}

func TestRun_StableTies(t *testing.T) {
	got := Run(fixture, mustParse(t, "year=2018&sortBy=year"))
	assert.Equal(t, []string{"Black Panther", "Bohemian Rhapsody", "Green Book"}, titles(got))

	got = Run(fixture, mustParse(t, "sortBy=nominations&maxYear=2018&minYear=2018"))
	assert.Equal(t, []string{"Bohemian Rhapsody", "Green Book", "Black Panther"}, titles(got))
}

func TestRun_Limit(t *testing.T) {
	total := len(Run(fixture, Spec{}))
	for n := 0; n <= total+2; n++ {
		got := Run(fixture, mustParse(t, "limit="+strconv.Itoa(n)))
		assert.Len(t, got, min(n, total), "limit=%d", n)
	}

	got := Run(fixture, mustParse(t, "isBestPicture=true&limit=100"))
	assert.Len(t, got, 4)
}

func TestRun_LimitZeroReturnsNothing(t *testing.T) {
	got := Run(fixture, mustParse(t, "limit=0"))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRun_EmptyResultIsNotNil(t *testing.T) {
	got := Run(fixture, mustParse(t, "year=1800"))
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = Run(nil, Spec{})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRun_Idempotent(t *testing.T) {
	s := mustParse(t, "minYear=1950&sortBy=awards&limit=5")
	first := Run(fixture, s)
	second := Run(fixture, s)
	assert.Equal(t, first, second)
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	in := slices.Clone(fixture)
	_ = Run(in, mustParse(t, "sortBy=nominations"))
	assert.Equal(t, fixture, in)
}

// TestRun_ConjunctionLaw enumerates every combination of absent or
// present filter values and checks the result against a direct evaluation.
func TestRun_ConjunctionLaw(t *testing.T) {
	candidates := []struct {
		key    string
		values []string
	}{
		{"title", []string{"parasite", "Joker"}},
		{"year", []string{"2018", "2019"}},
		{"minYear", []string{"1959", "2019"}},
		{"maxYear", []string{"1959", "2018"}},
		{"minAwards", []string{"3", "4"}},
		{"maxAwards", []string{"2", "4"}},
		{"nominations", []string{"5", "11"}},
		{"isBestPicture", []string{"true", "false"}},
	}

	// Each candidate is absent (index 0) or takes one of its values.
	choice := make([]int, len(candidates))
	combos := 0
	for {
		v := url.Values{}
		for i, c := range candidates {
			if choice[i] > 0 {
				v.Set(c.key, c.values[choice[i]-1])
			}
		}

		s, err := Parse(v)
		require.NoError(t, err)
		got := titles(Run(fixture, s))

		want := []string{}
		for _, f := range fixture {
			if matchesAll(f, v) {
				want = append(want, f.Title)
			}
		}
		slices.Sort(want)
		if !assert.Equal(t, want, got, "query %s", v.Encode()) {
			return
		}
		combos++

		i := 0
		for ; i < len(choice); i++ {
			choice[i]++
			if choice[i] <= len(candidates[i].values) {
				break
			}
			choice[i] = 0
		}
		if i == len(choice) {
			break
		}
	}
	assert.Equal(t, 6561, combos)
}

func matchesAll(f models.Film, v url.Values) bool {
	atoi := func(key string) int {
		n, _ := strconv.Atoi(v.Get(key))
		return n
	}
	if v.Has("title") && !strings.EqualFold(f.Title, v.Get("title")) {
		return false
	}
	if v.Has("year") && f.Year != atoi("year") {
		return false
	}
	if v.Has("minYear") && f.Year < atoi("minYear") {
		return false
	}
	if v.Has("maxYear") && f.Year > atoi("maxYear") {
		return false
	}
	if v.Has("minAwards") && f.Awards < atoi("minAwards") {
		return false
	}
	if v.Has("maxAwards") && f.Awards > atoi("maxAwards") {
		return false
	}
	if v.Has("nominations") && f.Nominations != atoi("nominations") {
		return false
	}
	if v.Has("isBestPicture") && f.IsBestPicture != (v.Get("isBestPicture") == "true") {
		return false
	}
	return true
}
