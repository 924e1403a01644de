package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// AllFilter is the UI sentinel meaning "no category/origin filter".
const AllFilter = "すべて"

// SortOrder selects how search results are ordered.
type SortOrder string

const (
	SortVariety   SortOrder = "variety"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
)

// Query filters and orders catalog items.
type Query struct {
	Text     string // substring of variety, description or category
	Category string
	Origin   string
	Sort     SortOrder
}

func matchesFilter(value, filter string) bool {
	return filter == "" || filter == AllFilter || value == filter
}

func (q Query) matches(it Item) bool {
	if !matchesFilter(it.Category, q.Category) || !matchesFilter(it.Origin, q.Origin) {
		return false
	}
	text := strings.ToLower(strings.TrimSpace(q.Text))
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.Variety), text) ||
		strings.Contains(strings.ToLower(it.Description), text) ||
		strings.Contains(strings.ToLower(it.Category), text)
}

func (q Query) compare() (func(a, b Item) int, error) {
	switch q.Sort {
	case "", SortVariety:
		return func(a, b Item) int { return strings.Compare(a.Variety, b.Variety) }, nil
	case SortPriceLow:
		return func(a, b Item) int { return a.Price.Cmp(b.Price) }, nil
	case SortPriceHigh:
		return func(a, b Item) int { return b.Price.Cmp(a.Price) }, nil
	case SortRating:
		return func(a, b Item) int { return cmp.Compare(b.Rating, a.Rating) }, nil
	}
	return nil, fmt.Errorf("unknown sort order %q", q.Sort)
}

// Search returns the items matching q, ordered by q.Sort (variety by default).
func (c *Catalog) Search(q Query) ([]Item, error) {
	compare, err := q.compare()
	if err != nil {
		return nil, err
	}

	var out []Item
	for _, it := range c.Items() {
		if q.matches(it) {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, compare)
	return out, nil
}

// Filter returns items matching category and origin, keeping catalog order.
// This is the selection the shipment calendar renders.
func (c *Catalog) Filter(category, origin string) []Item {
	var out []Item
	for _, it := range c.Items() {
		if matchesFilter(it.Category, category) && matchesFilter(it.Origin, origin) {
			out = append(out, it)
		}
	}
	return out
}
