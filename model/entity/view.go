package entity

// SortMode selects the ordering of the derived product view.
type SortMode string

const (
	SortNameAsc   SortMode = "name_asc"
	SortNameDesc  SortMode = "name_desc"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

// ParseSortMode maps a raw value to a SortMode, defaulting to name ascending.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortNameDesc, SortPriceAsc, SortPriceDesc:
		return SortMode(s)
	default:
		return SortNameAsc
	}
}

// RecentFilter narrows the view by the "just in" flag.
type RecentFilter string

const (
	RecentAll     RecentFilter = "all"
	RecentOnly    RecentFilter = "justIn"
	RecentExclude RecentFilter = "notJustIn"
)

// ParseRecentFilter maps a raw value to a RecentFilter, defaulting to all.
func ParseRecentFilter(s string) RecentFilter {
	switch RecentFilter(s) {
	case RecentOnly, RecentExclude:
		return RecentFilter(s)
	default:
		return RecentAll
	}
}

// Matches reports whether a product passes the recent filter.
func (f RecentFilter) Matches(p Product) bool {
	switch f {
	case RecentOnly:
		return p.JustIn
	case RecentExclude:
		return !p.JustIn
	default:
		return true
	}
}

// ViewState is the ephemeral per-session view configuration. Not persisted;
// it lives only for the UI session that owns it.
type ViewState struct {
	Search string
	Sort   SortMode
	Recent RecentFilter
	Window int
}
