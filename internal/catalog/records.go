package catalog

import (
	"fmt"

	"produce-mcp/internal/calendar"

	"github.com/shopspring/decimal"
)

// Wire form of the fixture files. Field names are snake_case JSON keys.

type itemsFile struct {
	Items []itemRecord `json:"items"`
}

type dealsFile struct {
	Deals []dealRecord `json:"deals"`
}

type itemRecord struct {
	ID            string          `json:"id"`
	Variety       string          `json:"variety"`
	Category      string          `json:"category"`
	Origin        string          `json:"origin"`
	Price         float64         `json:"price"`
	Season        string          `json:"season,omitempty"`
	GrowingMethod string          `json:"growing_method,omitempty"`
	Description   string          `json:"description,omitempty"`
	Appeals       []string        `json:"appeals,omitempty"`
	Rating        float64         `json:"rating,omitempty"`
	Available     *bool           `json:"available,omitempty"`
	Producer      *producerRecord `json:"producer,omitempty"`
	SKUs          []skuRecord     `json:"skus,omitempty"`
	Sales         []salesRecord   `json:"sales,omitempty"`
	Periods       []periodRecord  `json:"periods"`
}

type periodRecord struct {
	StartMonth  int     `json:"start_month"`
	StartThird  string  `json:"start_third"`
	EndMonth    int     `json:"end_month"`
	EndThird    string  `json:"end_third"`
	TotalVolume float64 `json:"total_volume"`
}

type skuRecord struct {
	ID      string  `json:"id"`
	Grade   string  `json:"grade"`
	Size    string  `json:"size"`
	Format  string  `json:"format"`
	Price   float64 `json:"price"`
	InStock bool    `json:"in_stock"`
}

type producerRecord struct {
	Name        string `json:"name"`
	Prefecture  string `json:"prefecture"`
	City        string `json:"city"`
	MemberCount int    `json:"member_count"`
	FarmArea    string `json:"farm_area"`
	Description string `json:"description,omitempty"`
}

type salesRecord struct {
	Retailer    string `json:"retailer"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Quantity    string `json:"quantity"`
	FloorArea   string `json:"floor_area,omitempty"`
	Description string `json:"description,omitempty"`
}

type dealRecord struct {
	ID                string  `json:"id"`
	CompanyName       string  `json:"company_name"`
	ContactPerson     string  `json:"contact_person"`
	ProductName       string  `json:"product_name"`
	ExpectedAmount    float64 `json:"expected_amount"`
	Status            string  `json:"status"`
	Probability       int     `json:"probability"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// toPeriod converts the wire form of a shipment period and checks its bounds.
func (r periodRecord) toPeriod() (calendar.ShipmentPeriod, error) {
	start, err := calendar.ParseThird(r.StartThird)
	if err != nil {
		return calendar.ShipmentPeriod{}, err
	}
	end, err := calendar.ParseThird(r.EndThird)
	if err != nil {
		return calendar.ShipmentPeriod{}, err
	}
	p := calendar.ShipmentPeriod{
		StartMonth:  r.StartMonth,
		StartThird:  start,
		EndMonth:    r.EndMonth,
		EndThird:    end,
		TotalVolume: r.TotalVolume,
	}
	if _, err := calendar.Expand(p); err != nil {
		return calendar.ShipmentPeriod{}, err
	}
	return p, nil
}

func (r itemRecord) toItem() (Item, error) {
	it := Item{
		ID:            r.ID,
		Variety:       r.Variety,
		Category:      r.Category,
		Origin:        r.Origin,
		Price:         decimal.NewFromFloat(r.Price),
		Season:        r.Season,
		GrowingMethod: r.GrowingMethod,
		Description:   r.Description,
		Appeals:       r.Appeals,
		Rating:        r.Rating,
		Available:     r.Available == nil || *r.Available,
	}
	if r.Producer != nil {
		it.Producer = &ProducerGroup{
			Name:        r.Producer.Name,
			Prefecture:  r.Producer.Prefecture,
			City:        r.Producer.City,
			MemberCount: r.Producer.MemberCount,
			FarmArea:    r.Producer.FarmArea,
			Description: r.Producer.Description,
		}
	}
	for _, s := range r.SKUs {
		it.SKUs = append(it.SKUs, SKU{
			ID:      s.ID,
			Grade:   s.Grade,
			Size:    s.Size,
			Format:  s.Format,
			Price:   decimal.NewFromFloat(s.Price),
			InStock: s.InStock,
		})
	}
	for _, s := range r.Sales {
		it.Sales = append(it.Sales, SalesRecord(s))
	}
	for i, pr := range r.Periods {
		p, err := pr.toPeriod()
		if err != nil {
			return Item{}, fmt.Errorf("item %s period %d: %w", r.ID, i, err)
		}
		it.Periods = append(it.Periods, p)
	}
	return it, nil
}

func (r dealRecord) toDeal() Deal {
	return Deal{
		ID:                r.ID,
		CompanyName:       r.CompanyName,
		ContactPerson:     r.ContactPerson,
		ProductName:       r.ProductName,
		ExpectedAmount:    decimal.NewFromFloat(r.ExpectedAmount),
		Status:            DealStatus(r.Status),
		Probability:       r.Probability,
		ExpectedCloseDate: r.ExpectedCloseDate,
		Notes:             r.Notes,
	}
}

func fromPeriod(p calendar.ShipmentPeriod) periodRecord {
	return periodRecord{
		StartMonth:  p.StartMonth,
		StartThird:  p.StartThird.String(),
		EndMonth:    p.EndMonth,
		EndThird:    p.EndThird.String(),
		TotalVolume: p.TotalVolume,
	}
}

func fromItem(it Item) itemRecord {
	available := it.Available
	r := itemRecord{
		ID:            it.ID,
		Variety:       it.Variety,
		Category:      it.Category,
		Origin:        it.Origin,
		Price:         it.Price.InexactFloat64(),
		Season:        it.Season,
		GrowingMethod: it.GrowingMethod,
		Description:   it.Description,
		Appeals:       it.Appeals,
		Rating:        it.Rating,
		Available:     &available,
		Periods:       make([]periodRecord, 0, len(it.Periods)),
	}
	if it.Producer != nil {
		p := producerRecord(*it.Producer)
		r.Producer = &p
	}
	for _, s := range it.SKUs {
		r.SKUs = append(r.SKUs, skuRecord{
			ID:      s.ID,
			Grade:   s.Grade,
			Size:    s.Size,
			Format:  s.Format,
			Price:   s.Price.InexactFloat64(),
			InStock: s.InStock,
		})
	}
	for _, s := range it.Sales {
		r.Sales = append(r.Sales, salesRecord(s))
	}
	for _, p := range it.Periods {
		r.Periods = append(r.Periods, fromPeriod(p))
	}
	return r
}
