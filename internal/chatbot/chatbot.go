package chatbot

// Response is an admin-curated canned answer. Higher priority responses win
// when several match the same message.
type Response struct {
	ID          int      `json:"responseId"`
	Keywords    []string `json:"keywords"`
	Reply       string   `json:"response"`
	Suggestions []string `json:"suggestions,omitempty"`
	Priority    int      `json:"priority"`
	Active      bool     `json:"active"`
}

// Answer is what the widget renders for a user message.
type Answer struct {
	Reply       string   `json:"response"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// DefaultAnswer is returned when nothing matches.
var DefaultAnswer = Answer{
	Reply:       "Hello! How can I help you today?",
	Suggestions: []string{"Order status", "Shipping info", "Product help"},
}
