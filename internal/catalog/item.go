package catalog

import (
	"errors"
	"fmt"
	"strings"

	"produce-mcp/internal/calendar"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when an item or deal ID is unknown.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRecord marks fixture or form data that fails validation.
	ErrInvalidRecord = errors.New("invalid record")
)

// Item is a produce variety offered in the catalog.
type Item struct {
	ID            string
	Variety       string // 品種名
	Category      string // general name, e.g. りんご
	Origin        string // prefecture
	Price         decimal.Decimal
	Season        string // free text, e.g. 11月〜2月
	GrowingMethod string
	Description   string
	Appeals       []string
	Rating        float64
	Available     bool
	Producer      *ProducerGroup
	SKUs          []SKU
	Sales         []SalesRecord
	Periods       []calendar.ShipmentPeriod
}

// SKU is one sellable grade/size/format of an item.
type SKU struct {
	ID      string
	Grade   string // A-C
	Size    string // SS-LL
	Format  string
	Price   decimal.Decimal
	InStock bool
}

// ProducerGroup describes the growers behind an item.
type ProducerGroup struct {
	Name        string
	Prefecture  string
	City        string
	MemberCount int
	FarmArea    string
	Description string
}

// SalesRecord is one historical in-store sales campaign.
type SalesRecord struct {
	Retailer    string
	StartDate   string
	EndDate     string
	Quantity    string
	FloorArea   string
	Description string
}

// TotalVolume sums the declared volume of every shipment period.
func (it Item) TotalVolume() float64 {
	total := 0.0
	for _, p := range it.Periods {
		total += p.TotalVolume
	}
	return total
}

// Validate checks the fields a product form must supply.
func (it Item) Validate() error {
	var missing []string
	if strings.TrimSpace(it.Variety) == "" {
		missing = append(missing, "variety")
	}
	if strings.TrimSpace(it.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(it.Origin) == "" {
		missing = append(missing, "origin")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRecord, strings.Join(missing, ", "))
	}
	if it.Price.IsNegative() {
		return fmt.Errorf("%w: price %s is negative", ErrInvalidRecord, it.Price)
	}
	if it.Rating < 0 || it.Rating > 5 {
		return fmt.Errorf("%w: rating %v is outside 0-5", ErrInvalidRecord, it.Rating)
	}
	for i, p := range it.Periods {
		if _, err := calendar.Expand(p); err != nil {
			return fmt.Errorf("%w: period %d: %w", ErrInvalidRecord, i, err)
		}
	}
	return nil
}

// CalendarItem projects the item onto the fields the shipment calendar needs.
func (it Item) CalendarItem() calendar.Item {
	periods := make([]calendar.ShipmentPeriod, len(it.Periods))
	copy(periods, it.Periods)
	return calendar.Item{
		ID:       it.ID,
		Variety:  it.Variety,
		Category: it.Category,
		Origin:   it.Origin,
		Price:    it.Price.InexactFloat64(),
		Periods:  periods,
	}
}

// CalendarItems projects a filtered item list for calendar.Build.
func CalendarItems(items []Item) []calendar.Item {
	out := make([]calendar.Item, len(items))
	for i, it := range items {
		out[i] = it.CalendarItem()
	}
	return out
}

func (it Item) clone() Item {
	c := it
	c.Appeals = append([]string(nil), it.Appeals...)
	c.SKUs = append([]SKU(nil), it.SKUs...)
	c.Sales = append([]SalesRecord(nil), it.Sales...)
	c.Periods = append([]calendar.ShipmentPeriod(nil), it.Periods...)
	if it.Producer != nil {
		p := *it.Producer
		c.Producer = &p
	}
	return c
}
