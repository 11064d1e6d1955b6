package models

import (
	entity "storefront.GO/model/entity"
)

// Product is the GraphQL projection of a catalog entry.
type Product struct {
	ID          string
	Name        string
	Price       string
	PriceValue  int32
	Description string
	Colors      []string
	Sizes       []string
	JustIn      bool
	Img         string
}

// CartItem is the GraphQL projection of a cart line.
type CartItem struct {
	ProductID string
	Name      string
	Price     int32
	Qty       int32
}

// Cart bundles a shopper's items with the derived total.
type Cart struct {
	UID      string
	TotalQty int32
	Items    []CartItem
}

func FromProduct(p entity.Product) Product {
	out := Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		PriceValue:  int32(p.PriceValue()),
		Description: p.Description,
		Colors:      p.Colors,
		Sizes:       p.Sizes,
		JustIn:      p.JustIn,
		Img:         p.Image,
	}
	if out.Colors == nil {
		out.Colors = []string{}
	}
	if out.Sizes == nil {
		out.Sizes = []string{}
	}
	return out
}

func FromCart(uid string, items []entity.CartItem) Cart {
	out := Cart{UID: uid, TotalQty: int32(entity.TotalQty(items)), Items: make([]CartItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, CartItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     int32(it.Price),
			Qty:       int32(it.Qty),
		})
	}
	return out
}
