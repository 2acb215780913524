package user

// Roles recognised by the role claim and the admin middleware.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User maps to the `public.users` table. The wishlist lives on the user row
// as an integer array and is managed by the wishlist package.
type User struct {
	ID                 int     `json:"userId"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Password           string  `json:"password,omitempty"`
	Phone              string  `json:"phone,omitempty"`
	Role               string  `json:"role"`
	Verified           bool    `json:"verified"`
	AvatarURL          *string `json:"avatarUrl,omitempty"`
	WishlistProductIDs []int   `json:"wishlist,omitempty"`
	CreatedAt          string  `json:"createdAt,omitempty"`
	UpdatedAt          string  `json:"updatedAt,omitempty"`
}
