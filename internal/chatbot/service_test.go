package chatbot

import "testing"

func seedResponses() []Response {
	return []Response{
		{ID: 1, Keywords: []string{"order", "delivery"}, Reply: "You can track your order from the My Orders page.", Suggestions: []string{"Track order"}, Priority: 5, Active: true},
		{ID: 2, Keywords: []string{"shipping"}, Reply: "We ship across India within 5-7 business days.", Priority: 3, Active: true},
		{ID: 3, Keywords: []string{"order"}, Reply: "stale low priority answer", Priority: 1, Active: true},
		{ID: 4, Keywords: []string{"refund"}, Reply: "inactive", Priority: 10, Active: false},
	}
}

func TestReplyMatchesKeyword(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedResponses()))

	answer, err := svc.Reply("Where is my order?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Reply != "You can track your order from the My Orders page." {
		t.Fatalf("unexpected reply: %q", answer.Reply)
	}
	if len(answer.Suggestions) != 1 || answer.Suggestions[0] != "Track order" {
		t.Fatalf("unexpected suggestions: %v", answer.Suggestions)
	}
}

func TestReplyPrefersHigherPriority(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedResponses()))

	answer, _ := svc.Reply("order")
	if answer.Reply == "stale low priority answer" {
		t.Fatal("lower priority response matched first")
	}
}

func TestReplyIgnoresInactiveResponses(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedResponses()))

	answer, _ := svc.Reply("I want a refund")
	if answer.Reply == "inactive" {
		t.Fatal("inactive response must not match")
	}
}

func TestReplyFuzzyMatchesTypo(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedResponses()))

	answer, _ := svc.Reply("how long does shiping take")
	if answer.Reply != "We ship across India within 5-7 business days." {
		t.Fatalf("expected fuzzy shipping match, got %q", answer.Reply)
	}
}

func TestReplyFallsBackToDefault(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedResponses()))

	answer, _ := svc.Reply("completely unrelated gibberish")
	if answer.Reply != DefaultAnswer.Reply {
		t.Fatalf("expected default answer, got %q", answer.Reply)
	}
	if len(answer.Suggestions) != 3 {
		t.Fatalf("expected default suggestions, got %v", answer.Suggestions)
	}
}

func TestReplyEmptyMessage(t *testing.T) {
	svc := NewService(NewInMemoryRepository(seedResponses()))

	answer, _ := svc.Reply("   ")
	if answer.Reply != DefaultAnswer.Reply {
		t.Fatalf("expected default answer for empty message, got %q", answer.Reply)
	}
}
