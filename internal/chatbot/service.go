package chatbot

import (
	"strings"

	"github.com/JananiSriSK/varu-knit-store/internal/search"
)

// fuzzyThreshold is stricter than the catalog search: a chatbot keyword has
// to be a near-exact word before it counts as a match.
const fuzzyThreshold = 0.8

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Reply picks the highest priority response whose keywords appear in the
// message. An exact substring hit on any response beats fuzzy word matches;
// when nothing matches at all, the default greeting is returned.
func (s *Service) Reply(message string) (Answer, error) {
	responses, err := s.repo.ListActive()
	if err != nil {
		return Answer{}, err
	}

	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return DefaultAnswer, nil
	}

	for _, resp := range responses {
		for _, kw := range resp.Keywords {
			if kw != "" && strings.Contains(msg, strings.ToLower(kw)) {
				return Answer{Reply: resp.Reply, Suggestions: resp.Suggestions}, nil
			}
		}
	}

	// fuzzy pass: tolerate typos like "shiping" for "shipping"
	words := strings.Fields(msg)
	for _, resp := range responses {
		for _, kw := range resp.Keywords {
			for _, word := range words {
				if search.Similarity(word, strings.ToLower(kw), fuzzyThreshold) > 0 {
					return Answer{Reply: resp.Reply, Suggestions: resp.Suggestions}, nil
				}
			}
		}
	}

	return DefaultAnswer, nil
}

func (s *Service) ListAll() ([]Response, error) {
	return s.repo.ListAll()
}

func (s *Service) Create(resp Response) (Response, error) {
	return s.repo.Create(resp)
}

func (s *Service) Update(id int, resp Response) (Response, error) {
	return s.repo.Update(id, resp)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
