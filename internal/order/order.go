package order

// Order statuses. An order starts in Verification Pending while an admin
// checks the uploaded payment screenshot; only the confirmed family feeds
// the recommendation engine.
const (
	StatusProcessing          = "Processing"
	StatusVerificationPending = "Verification Pending"
	StatusVerified            = "Verified and Confirmed"
	StatusShipped             = "Shipped"
	StatusDelivered           = "Delivered"
	StatusCancelled           = "Cancelled"
)

// ConfirmedStatuses marks orders that count as actual completed purchases.
var ConfirmedStatuses = []string{StatusDelivered, StatusVerified, StatusShipped}

// ValidStatuses enumerates every status an admin may set.
var ValidStatuses = []string{
	StatusProcessing,
	StatusVerificationPending,
	StatusVerified,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// Item is a single line of an order with a price snapshot taken at checkout.
type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Image     string  `json:"image,omitempty"`
}

type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
}

// PaymentInfo records the manual payment trail: a reference id, a state and
// the screenshot the customer uploaded as proof.
type PaymentInfo struct {
	Reference  string `json:"reference"`
	Status     string `json:"status"`
	Screenshot string `json:"screenshot,omitempty"`
}

// Order represents a purchase made by a user.
type Order struct {
	ID            int          `json:"orderId"`
	UserID        int          `json:"userId"`
	ShippingInfo  ShippingInfo `json:"shippingInfo"`
	Items         []Item       `json:"orderItems"`
	PaymentInfo   PaymentInfo  `json:"paymentInfo"`
	ItemPrice     float64      `json:"itemPrice"`
	TaxPrice      float64      `json:"taxPrice"`
	ShippingPrice float64      `json:"shippingPrice"`
	TotalPrice    float64      `json:"totalPrice"`
	Status        string       `json:"orderStatus"`
	PaidAt        string       `json:"paidAt,omitempty"`
	DeliveredAt   *string      `json:"deliveredAt,omitempty"`
	CreatedAt     string       `json:"createdAt,omitempty"`
	UpdatedAt     string       `json:"updatedAt,omitempty"`
}

// ProductIDs returns the distinct product ids in the order, in item order.
func (o Order) ProductIDs() []int {
	seen := make(map[int]struct{}, len(o.Items))
	out := make([]int, 0, len(o.Items))
	for _, item := range o.Items {
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		out = append(out, item.ProductID)
	}
	return out
}

// IsConfirmed reports whether the order's status is in the confirmed family.
func (o Order) IsConfirmed() bool {
	for _, s := range ConfirmedStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}
