package search

import (
	"errors"
	"sort"
	"strings"

	"github.com/JananiSriSK/varu-knit-store/internal/product"
)

var ErrEmptyQuery = errors.New("search query is required")

// Field thresholds and weights mirror the storefront's ranking contract:
// name matches dominate, descriptions help, category is a light nudge.
const (
	nameThreshold     = 0.6
	descThreshold     = 0.4
	categoryThreshold = 0.5

	nameWeight     = 0.6
	descWeight     = 0.3
	categoryWeight = 0.1

	suggestionThreshold = 0.5
	vocabularyThreshold = 0.6
	maxSuggestions      = 8
	minSuggestionQuery  = 2
)

// vocabulary holds common product-type words offered alongside catalog
// matches in autocomplete suggestions.
var vocabulary = []string{"sweater", "scarf", "hat", "blanket", "cardigan", "mittens"}

// Source supplies search candidates.
type Source interface {
	List() []product.Product
	ListByCategory(category string) []product.Product
}

type Service struct {
	products Source
}

func NewService(products Source) *Service {
	return &Service{products: products}
}

// Search ranks all candidate products against the query and returns those
// with a positive combined score, best first. Equal scores fall back to
// ascending product id so results are deterministic.
func (s *Service) Search(query, category string) ([]product.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	var candidates []product.Product
	if category != "" {
		candidates = s.products.ListByCategory(category)
	} else {
		candidates = s.products.List()
	}

	type scored struct {
		product product.Product
		score   float64
	}

	results := make([]scored, 0, len(candidates))
	for _, p := range candidates {
		nameScore := Similarity(query, p.Name, nameThreshold)
		descScore := Similarity(query, p.Description, descThreshold)
		categoryScore := Similarity(query, p.Category, categoryThreshold)

		total := nameScore*nameWeight + descScore*descWeight + categoryScore*categoryWeight
		if total <= 0 {
			continue
		}
		results = append(results, scored{product: p, score: total})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].product.ID < results[j].product.ID
	})

	out := make([]product.Product, 0, len(results))
	for _, r := range results {
		out = append(out, r.product)
	}
	return out, nil
}

// Suggestions collects fuzzy-matching product names, categories and common
// vocabulary terms for autocomplete. Queries shorter than two characters
// yield an empty list rather than an error.
func (s *Service) Suggestions(query string) []string {
	if len([]rune(query)) < minSuggestionQuery {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, maxSuggestions)
	add := func(v string) {
		if len(out) >= maxSuggestions {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	for _, p := range s.products.List() {
		if Similarity(query, p.Name, suggestionThreshold) > 0 {
			add(p.Name)
		}
		if Similarity(query, p.Category, suggestionThreshold) > 0 {
			add(p.Category)
		}
	}

	for _, term := range vocabulary {
		if Similarity(query, term, vocabularyThreshold) > 0 {
			add(term)
		}
	}

	return out
}
