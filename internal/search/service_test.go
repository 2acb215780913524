package search

import (
	"testing"

	"github.com/JananiSriSK/varu-knit-store/internal/product"
)

func catalog() *product.InMemoryRepository {
	return product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Cozy Sweater", Description: "A warm knitted sweater", Category: "sweaters"},
		{ID: 2, Name: "Wool Scarf", Description: "Hand knitted scarf in merino wool", Category: "scarves"},
		{ID: 3, Name: "Knit Hat", Description: "A snug winter hat", Category: "hats"},
		{ID: 4, Name: "Chunky Cardigan", Description: "Oversized cardigan for cold days", Category: "sweaters"},
	})
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewService(product.NewService(catalog()))
	if _, err := svc.Search("   ", ""); err != ErrEmptyQuery {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSearchFindsTypo(t *testing.T) {
	svc := NewService(product.NewService(catalog()))
	got, err := svc.Search("sweter", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected results for a one-letter typo")
	}
	if got[0].Name != "Cozy Sweater" {
		t.Fatalf("expected Cozy Sweater first, got %q", got[0].Name)
	}
}

func TestSearchExcludesIrrelevant(t *testing.T) {
	svc := NewService(product.NewService(catalog()))
	got, err := svc.Search("scarf", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range got {
		if p.ID == 3 {
			t.Fatalf("hat should not match a scarf query: %+v", got)
		}
	}
}

func TestSearchResultsSortedByScore(t *testing.T) {
	svc := NewService(product.NewService(catalog()))
	got, err := svc.Search("sweater", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) < 1 || got[0].ID != 1 {
		t.Fatalf("expected the name match ranked first, got %+v", got)
	}
}

func TestSearchCategoryScopesCandidates(t *testing.T) {
	svc := NewService(product.NewService(catalog()))
	got, err := svc.Search("knitted", "scarves")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range got {
		if p.Category != "scarves" {
			t.Fatalf("expected only scarves, got %+v", p)
		}
	}
}

func TestSuggestionsShortQuery(t *testing.T) {
	svc := NewService(product.NewService(catalog()))
	if got := svc.Suggestions("s"); len(got) != 0 {
		t.Fatalf("expected no suggestions below two characters, got %v", got)
	}
}

func TestSuggestionsIncludeVocabulary(t *testing.T) {
	svc := NewService(product.NewService(catalog()))
	got := svc.Suggestions("mitens")
	found := false
	for _, s := range got {
		if s == "mittens" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected vocabulary term mittens, got %v", got)
	}
}

func TestSuggestionsCapAndDedup(t *testing.T) {
	svc := NewService(product.NewService(catalog()))
	got := svc.Suggestions("sweater")
	if len(got) > maxSuggestions {
		t.Fatalf("suggestions exceed cap: %v", got)
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Fatalf("duplicate suggestion %q in %v", s, got)
		}
		seen[s] = true
	}
}
