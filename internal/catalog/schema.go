package catalog

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Fixture schemas are inferred from the wire structs, then tightened with the
// bounds the calendar relies on (months 1-12, known thirds, non-negative volume).

var (
	schemaOnce    sync.Once
	itemsSchema   *jsonschema.Resolved
	dealsSchema   *jsonschema.Resolved
	schemaInitErr error
)

func ptr[T any](v T) *T { return &v }

func thirds() []any { return []any{"early", "mid", "late"} }

// schemaAt walks Properties by name; "[]" steps into Items.
func schemaAt(s *jsonschema.Schema, path ...string) (*jsonschema.Schema, error) {
	cur := s
	for _, step := range path {
		if cur == nil {
			break
		}
		if step == "[]" {
			cur = cur.Items
			continue
		}
		cur = cur.Properties[step]
	}
	if cur == nil {
		return nil, fmt.Errorf("schema path %v not found", path)
	}
	return cur, nil
}

func buildItemsSchema() (*jsonschema.Resolved, error) {
	s, err := jsonschema.For[itemsFile](nil)
	if err != nil {
		return nil, err
	}

	item, err := schemaAt(s, "items", "[]")
	if err != nil {
		return nil, err
	}
	item.Properties["id"].MinLength = ptr(1)
	item.Properties["variety"].MinLength = ptr(1)
	item.Properties["category"].MinLength = ptr(1)
	item.Properties["origin"].MinLength = ptr(1)
	item.Properties["price"].Minimum = ptr(0.0)
	item.Properties["rating"].Minimum = ptr(0.0)
	item.Properties["rating"].Maximum = ptr(5.0)

	period, err := schemaAt(item, "periods", "[]")
	if err != nil {
		return nil, err
	}
	for _, month := range []string{"start_month", "end_month"} {
		period.Properties[month].Minimum = ptr(1.0)
		period.Properties[month].Maximum = ptr(12.0)
	}
	for _, third := range []string{"start_third", "end_third"} {
		period.Properties[third].Enum = thirds()
	}
	period.Properties["total_volume"].Minimum = ptr(0.0)

	sku, err := schemaAt(item, "skus", "[]")
	if err != nil {
		return nil, err
	}
	sku.Properties["price"].Minimum = ptr(0.0)

	return s.Resolve(nil)
}

func buildDealsSchema() (*jsonschema.Resolved, error) {
	s, err := jsonschema.For[dealsFile](nil)
	if err != nil {
		return nil, err
	}

	deal, err := schemaAt(s, "deals", "[]")
	if err != nil {
		return nil, err
	}
	statuses := make([]any, 0, len(DealStatuses()))
	for _, st := range DealStatuses() {
		statuses = append(statuses, string(st))
	}
	deal.Properties["status"].Enum = statuses
	deal.Properties["probability"].Minimum = ptr(0.0)
	deal.Properties["probability"].Maximum = ptr(100.0)
	deal.Properties["expected_amount"].Minimum = ptr(0.0)

	return s.Resolve(nil)
}

func schemas() (items, deals *jsonschema.Resolved, err error) {
	schemaOnce.Do(func() {
		itemsSchema, schemaInitErr = buildItemsSchema()
		if schemaInitErr != nil {
			schemaInitErr = fmt.Errorf("items schema: %w", schemaInitErr)
			return
		}
		dealsSchema, schemaInitErr = buildDealsSchema()
		if schemaInitErr != nil {
			schemaInitErr = fmt.Errorf("deals schema: %w", schemaInitErr)
		}
	})
	return itemsSchema, dealsSchema, schemaInitErr
}
