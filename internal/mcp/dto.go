package mcp

import (
	"fmt"

	"produce-mcp/internal/calendar"
	"produce-mcp/internal/catalog"
	"produce-mcp/internal/visuals"

	"github.com/shopspring/decimal"
)

// Wire shapes for tool results. Money is carried as decimal strings so no
// precision is lost on the way to the client.

type ItemSummary struct {
	ID          string  `json:"id"`
	Variety     string  `json:"variety"`
	Category    string  `json:"category"`
	Origin      string  `json:"origin"`
	Price       string  `json:"price" jsonschema:"unit price in yen per kg"`
	Season      string  `json:"season,omitempty"`
	Rating      float64 `json:"rating"`
	Available   bool    `json:"available"`
	TotalVolume float64 `json:"total_volume" jsonschema:"sum of shipment period volumes in tonnes"`
}

type PeriodDTO struct {
	StartMonth  int     `json:"start_month" jsonschema:"1-12"`
	StartThird  string  `json:"start_third" jsonschema:"early, mid or late"`
	EndMonth    int     `json:"end_month" jsonschema:"1-12"`
	EndThird    string  `json:"end_third" jsonschema:"early, mid or late"`
	TotalVolume float64 `json:"total_volume" jsonschema:"tonnes shipped over the whole period"`
	Label       string  `json:"label,omitempty"`
}

type SKUDTO struct {
	ID      string `json:"id"`
	Grade   string `json:"grade"`
	Size    string `json:"size"`
	Format  string `json:"format"`
	Price   string `json:"price"`
	InStock bool   `json:"in_stock"`
}

type ProducerDTO struct {
	Name        string `json:"name"`
	Prefecture  string `json:"prefecture"`
	City        string `json:"city"`
	MemberCount int    `json:"member_count"`
	FarmArea    string `json:"farm_area"`
	Description string `json:"description,omitempty"`
}

type SalesDTO struct {
	Retailer    string `json:"retailer"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Quantity    string `json:"quantity"`
	FloorArea   string `json:"floor_area,omitempty"`
	Description string `json:"description,omitempty"`
}

type ItemDetail struct {
	ID            string       `json:"id"`
	Variety       string       `json:"variety"`
	Category      string       `json:"category"`
	Origin        string       `json:"origin"`
	Price         string       `json:"price"`
	Season        string       `json:"season,omitempty"`
	GrowingMethod string       `json:"growing_method,omitempty"`
	Description   string       `json:"description,omitempty"`
	Appeals       []string     `json:"appeals,omitempty"`
	Rating        float64      `json:"rating"`
	Available     bool         `json:"available"`
	Producer      *ProducerDTO `json:"producer,omitempty"`
	SKUs          []SKUDTO     `json:"skus,omitempty"`
	Sales         []SalesDTO   `json:"sales,omitempty"`
	Periods       []PeriodDTO  `json:"periods"`
	TotalVolume   float64      `json:"total_volume"`
}

type DealDTO struct {
	ID                string `json:"id"`
	CompanyName       string `json:"company_name"`
	ContactPerson     string `json:"contact_person,omitempty"`
	ProductName       string `json:"product_name"`
	ExpectedAmount    string `json:"expected_amount"`
	Status            string `json:"status"`
	Probability       int    `json:"probability"`
	WeightedAmount    string `json:"weighted_amount"`
	ExpectedCloseDate string `json:"expected_close_date,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

func periodLabel(p calendar.ShipmentPeriod) string {
	return fmt.Sprintf("%s%s〜%s%s",
		visuals.MonthLabel(p.StartMonth), visuals.ThirdLabel(p.StartThird),
		visuals.MonthLabel(p.EndMonth), visuals.ThirdLabel(p.EndThird))
}

func toPeriodDTO(p calendar.ShipmentPeriod) PeriodDTO {
	return PeriodDTO{
		StartMonth:  p.StartMonth,
		StartThird:  p.StartThird.String(),
		EndMonth:    p.EndMonth,
		EndThird:    p.EndThird.String(),
		TotalVolume: p.TotalVolume,
		Label:       periodLabel(p),
	}
}

// fromPeriodDTO parses the thirds and checks the period expands cleanly.
func fromPeriodDTO(d PeriodDTO) (calendar.ShipmentPeriod, error) {
	start, err := calendar.ParseThird(d.StartThird)
	if err != nil {
		return calendar.ShipmentPeriod{}, err
	}
	end, err := calendar.ParseThird(d.EndThird)
	if err != nil {
		return calendar.ShipmentPeriod{}, err
	}
	p := calendar.ShipmentPeriod{
		StartMonth:  d.StartMonth,
		StartThird:  start,
		EndMonth:    d.EndMonth,
		EndThird:    end,
		TotalVolume: d.TotalVolume,
	}
	if _, err := calendar.Expand(p); err != nil {
		return calendar.ShipmentPeriod{}, err
	}
	return p, nil
}

func toItemSummary(it catalog.Item) ItemSummary {
	return ItemSummary{
		ID:          it.ID,
		Variety:     it.Variety,
		Category:    it.Category,
		Origin:      it.Origin,
		Price:       it.Price.String(),
		Season:      it.Season,
		Rating:      it.Rating,
		Available:   it.Available,
		TotalVolume: it.TotalVolume(),
	}
}

func toItemSummaries(items []catalog.Item) []ItemSummary {
	out := make([]ItemSummary, 0, len(items))
	for _, it := range items {
		out = append(out, toItemSummary(it))
	}
	return out
}

func toItemDetail(it catalog.Item) ItemDetail {
	d := ItemDetail{
		ID:            it.ID,
		Variety:       it.Variety,
		Category:      it.Category,
		Origin:        it.Origin,
		Price:         it.Price.String(),
		Season:        it.Season,
		GrowingMethod: it.GrowingMethod,
		Description:   it.Description,
		Appeals:       it.Appeals,
		Rating:        it.Rating,
		Available:     it.Available,
		Periods:       make([]PeriodDTO, 0, len(it.Periods)),
		TotalVolume:   it.TotalVolume(),
	}
	if it.Producer != nil {
		p := ProducerDTO(*it.Producer)
		d.Producer = &p
	}
	for _, s := range it.SKUs {
		d.SKUs = append(d.SKUs, SKUDTO{
			ID:      s.ID,
			Grade:   s.Grade,
			Size:    s.Size,
			Format:  s.Format,
			Price:   s.Price.String(),
			InStock: s.InStock,
		})
	}
	for _, s := range it.Sales {
		d.Sales = append(d.Sales, SalesDTO(s))
	}
	for _, p := range it.Periods {
		d.Periods = append(d.Periods, toPeriodDTO(p))
	}
	return d
}

func toDealDTO(d catalog.Deal) DealDTO {
	return DealDTO{
		ID:                d.ID,
		CompanyName:       d.CompanyName,
		ContactPerson:     d.ContactPerson,
		ProductName:       d.ProductName,
		ExpectedAmount:    d.ExpectedAmount.String(),
		Status:            string(d.Status),
		Probability:       d.Probability,
		WeightedAmount:    d.Weighted().String(),
		ExpectedCloseDate: d.ExpectedCloseDate,
		Notes:             d.Notes,
	}
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q is not a decimal number", catalog.ErrInvalidRecord, field, s)
	}
	return v, nil
}
