package content

// Keys for the editable site documents. Each key maps to one jsonb document
// in the site_content table; the admin panel owns their shape.
const (
	KeyHomepage        = "homepage"
	KeyFooter          = "footer"
	KeyPaymentSettings = "payment-settings"
	KeyFeatured        = "featured-collection"
	KeyLatest          = "latest-collection"
)

var Keys = []string{KeyHomepage, KeyFooter, KeyPaymentSettings, KeyFeatured, KeyLatest}

func ValidKey(key string) bool {
	for _, k := range Keys {
		if key == k {
			return true
		}
	}
	return false
}
