package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/HerbHall/oscars/pkg/models"
)

func TestCatalog_Embedded(t *testing.T) {
	cat := NewCatalog()

	names, err := cat.Collections(context.Background())
	if err != nil {
		t.Fatalf("Collections() error = %v", err)
	}
	if len(names) != 1 || names[0] != "oscars" {
		t.Fatalf("Collections() = %v, want [oscars]", names)
	}

	films, err := cat.FetchAll(context.Background(), "oscars")
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(films) < 10 {
		t.Fatalf("expected at least 10 films, got %d", len(films))
	}
	for i := range films {
		if _, err := films[i].Decode(); err != nil {
			t.Errorf("embedded film %d does not decode: %v", i, err)
		}
	}
	if films[1].Title != "Parasite" || films[1].Year != "2019" || films[1].Awards != "4" {
		t.Errorf("films[1] = %+v, want Parasite 2019 with 4 awards", films[1])
	}
}

func TestCatalog_FetchAllReturnsCopy(t *testing.T) {
	cat := NewCatalog()
	first, err := cat.FetchAll(context.Background(), "oscars")
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	first[0].Title = "mutated"

	second, _ := cat.FetchAll(context.Background(), "oscars")
	if second[0].Title == "mutated" {
		t.Error("FetchAll should return a copy, caller mutation leaked into catalog")
	}
}

func TestCatalog_UnknownCollection(t *testing.T) {
	_, err := NewCatalog().FetchAll(context.Background(), "grammys")
	if !errors.Is(err, models.ErrCollectionNotFound) {
		t.Errorf("FetchAll(grammys) error = %v, want ErrCollectionNotFound", err)
	}
}

func TestCatalog_InvalidDocument(t *testing.T) {
	cat := NewCatalogFromBytes([]byte("collections: [unterminated"))
	if _, err := cat.FetchAll(context.Background(), "oscars"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := cat.Collections(context.Background()); err == nil {
		t.Fatal("expected parse error from Collections as well")
	}
}

func TestReadFilms_List(t *testing.T) {
	in := `[{"title":"Parasite","year":"2019","awards":4,"nominations":6,"isBestPicture":true,"numberOfReferences":8855}]`
	films, err := ReadFilms(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadFilms() error = %v", err)
	}
	want := models.RawFilm{Title: "Parasite", Year: "2019", Awards: "4", Nominations: "6", IsBestPicture: "true", NumberOfReferences: "8855"}
	if len(films) != 1 || films[0] != want {
		t.Errorf("ReadFilms() = %+v, want [%+v]", films, want)
	}
}

func TestReadFilms_ContentNode(t *testing.T) {
	in := `{
  "jcr:primaryType": "nt:unstructured",
  "sling:resourceType": "test/filmEntryContainer",
  "parasite": {"jcr:primaryType": "nt:unstructured", "title": "Parasite", "year": "2019", "awards": 4, "nominations": 6, "isBestPicture": true, "numberOfReferences": 8855},
  "black-panther": {"jcr:primaryType": "nt:unstructured", "title": "Black Panther", "year": "2018", "awards": 3, "nominations": 7, "isBestPicture": false, "numberOfReferences": 770}
}`
	films, err := ReadFilms(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadFilms() error = %v", err)
	}
	if len(films) != 2 {
		t.Fatalf("got %d films, want 2", len(films))
	}
	if films[0].Title != "Parasite" || films[1].Title != "Black Panther" {
		t.Errorf("document order not preserved: %q, %q", films[0].Title, films[1].Title)
	}
	if films[1].IsBestPicture != "false" {
		t.Errorf("IsBestPicture = %q, want false", films[1].IsBestPicture)
	}
}

func TestReadFilms_Empty(t *testing.T) {
	films, err := ReadFilms(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadFilms() error = %v", err)
	}
	if films == nil || len(films) != 0 {
		t.Errorf("ReadFilms(empty) = %v, want empty non-nil slice", films)
	}
}
