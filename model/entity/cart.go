package entity

// CartItem is one line of a shopper's cart. Name and Price are denormalized
// at add time and not re-synced if the catalog entry changes.
type CartItem struct {
	ProductID string `json:"productId" mapstructure:"productId"`
	Name      string `json:"name" mapstructure:"name"`
	Price     int    `json:"price" mapstructure:"price"`
	Qty       int    `json:"qty" mapstructure:"qty"`
}

// MergeItem applies the single-item-per-product rule: if the product is
// already in the cart its quantity goes up by one, otherwise a new item with
// quantity 1 is appended. The input slice is not mutated.
func MergeItem(items []CartItem, p Product) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ProductID == p.ID {
			out[i].Qty++
			return out
		}
	}
	return append(out, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.PriceValue(),
		Qty:       1,
	})
}

// TotalQty sums the quantities of all items.
func TotalQty(items []CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Qty
	}
	return total
}
