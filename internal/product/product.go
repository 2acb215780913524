package product

// Product represents a catalog item and maps to the `public.products` table.
// JSON tags follow the camelCase convention used across the API.
type Product struct {
	ID              int      `json:"productId"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory,omitempty"`
	Sizes           []string `json:"sizes,omitempty"`
	Stock           int      `json:"stock"`
	Ratings         float64  `json:"ratings"`
	NumberOfReviews int      `json:"numberOfReviews"`
	Image           *string  `json:"image,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// Summary is the trimmed product shape returned by the recommendation and
// wishlist endpoints.
type Summary struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Image     *string `json:"image,omitempty"`
	Ratings   float64 `json:"ratings"`
}

// Review is a single customer review. A user may hold at most one review per
// product; submitting again replaces the previous one.
type Review struct {
	ID        int    `json:"reviewId"`
	ProductID int    `json:"productId"`
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Summarize converts a full product into its summary shape.
func (p Product) Summarize() Summary {
	return Summary{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Image:     p.Image,
		Ratings:   p.Ratings,
	}
}
