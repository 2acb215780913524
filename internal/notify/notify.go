package notify

// Notification types shown in the account dropdown.
const (
	TypeOrderPlaced  = "order-placed"
	TypeOrderUpdated = "order-updated"
	TypeGeneral      = "general"
)

// Notification is an in-app message for one user.
type Notification struct {
	ID        int    `json:"notificationId"`
	UserID    int    `json:"userId"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}
