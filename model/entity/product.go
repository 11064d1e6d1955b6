package entity

// Product is a catalog entry as served by the remote product-list endpoint.
// Read-only in this service; the price stays in its raw display form and is
// parsed on demand.
type Product struct {
	ID          string   `json:"id" mapstructure:"id"`
	Name        string   `json:"name" mapstructure:"name"`
	Price       string   `json:"price" mapstructure:"price"`
	Description string   `json:"description,omitempty" mapstructure:"description"`
	Colors      []string `json:"colors,omitempty" mapstructure:"colors"`
	Sizes       []string `json:"sizes,omitempty" mapstructure:"sizes"`
	JustIn      bool     `json:"justIn" mapstructure:"justIn"`
	Image       string   `json:"img" mapstructure:"img"`
}

// ParsePrice extracts the numeric magnitude from a display price like
// "Rs 1,000". All non-digit runes are formatting noise; the digits are
// concatenated and parsed as a non-negative integer. No decimal fractions.
func ParsePrice(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

// PriceValue returns the parsed numeric price of the product.
func (p Product) PriceValue() int {
	return ParsePrice(p.Price)
}
