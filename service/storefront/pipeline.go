package storefront

import (
	"sort"
	"strings"

	"storefront.GO/core/cache"
	entity "storefront.GO/model/entity"
)

const viewCacheTag = "view"

// Derive is the pure view pipeline: filter by name substring and recent
// flag, then stable sort by the selected mode. Results are memoized in the
// core cache keyed on the inputs and the catalog snapshot version (version
// 0 = nothing loaded, never cached).
func Derive(products []entity.Product, version uint64, search string, recent entity.RecentFilter, mode entity.SortMode) []entity.Product {
	needle := strings.ToLower(strings.TrimSpace(search))

	if version != 0 {
		if v, ok := cache.GetInstance().GetN(viewCacheTag, version, needle, recent, mode); ok {
			if out, isList := v.([]entity.Product); isList {
				return out
			}
		}
	}

	out := filterProducts(products, needle, recent)
	sortProducts(out, mode)

	if version != 0 {
		cache.GetInstance().SetN([]interface{}{viewCacheTag, version, needle, recent, mode}, out, 300, []string{viewCacheTag})
	}
	return out
}

func filterProducts(products []entity.Product, needle string, recent entity.RecentFilter) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if !recent.Matches(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortProducts orders in place. Stable: price ties keep input order.
func sortProducts(products []entity.Product, mode entity.SortMode) {
	switch mode {
	case entity.SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return compareNames(products[i].Name, products[j].Name) > 0
		})
	case entity.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceValue() < products[j].PriceValue()
		})
	case entity.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceValue() > products[j].PriceValue()
		})
	default: // name ascending
		sort.SliceStable(products, func(i, j int) bool {
			return compareNames(products[i].Name, products[j].Name) < 0
		})
	}
}

// compareNames is a case-folded lexicographic compare (the locale-aware
// compare of the display layer, rendered deterministically).
func compareNames(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
