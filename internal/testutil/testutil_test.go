package testutil

import (
	"context"
	"testing"
)

func TestLogger_NotNil(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewStore_Usable(t *testing.T) {
	db := NewStore(t)
	if db == nil {
		t.Fatal("expected non-nil store")
	}
	if err := db.DB().PingContext(context.Background()); err != nil {
		t.Fatalf("PingContext: %v", err)
	}
}

func TestNewFilm_Defaults(t *testing.T) {
	f := NewFilm()
	if f.Title != "Test Film" {
		t.Errorf("Title = %q, want Test Film", f.Title)
	}
	if f.IsBestPicture {
		t.Error("IsBestPicture should default to false")
	}
}

func TestNewFilm_Options(t *testing.T) {
	f := NewFilm(
		WithTitle("Parasite"),
		WithYear(2019),
		WithAwards(4),
		WithNominations(6),
		WithBestPicture(true),
		WithReferences(8855),
	)
	if f.Title != "Parasite" || f.Year != 2019 || f.Awards != 4 || f.Nominations != 6 || !f.IsBestPicture || f.ReferenceCount != 8855 {
		t.Errorf("NewFilm with options = %+v", f)
	}
}

func TestNewRawFilm_Decodes(t *testing.T) {
	raw := NewRawFilm(WithYear(1997), WithBestPicture(true))
	if raw.Year != "1997" || raw.IsBestPicture != "true" {
		t.Fatalf("NewRawFilm = %+v", raw)
	}
	f, err := raw.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Year != 1997 {
		t.Errorf("Year = %d, want 1997", f.Year)
	}
}
