package address

// Address is a saved shipping destination. One per user may be the default,
// which the checkout page preselects.
type Address struct {
	ID        int    `json:"addressId"`
	UserID    int    `json:"userId"`
	Label     string `json:"label,omitempty"`
	Line      string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	PinCode   string `json:"pinCode"`
	Phone     string `json:"phone,omitempty"`
	IsDefault bool   `json:"isDefault"`
}
