package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DealStatus is the stage of a sales negotiation.
type DealStatus string

const (
	StatusInquiry     DealStatus = "引合"
	StatusNegotiating DealStatus = "商談中"
	StatusProposed    DealStatus = "提案済"
	StatusWon         DealStatus = "成約"
	StatusLost        DealStatus = "失注"
)

// DealStatuses lists every status in pipeline order.
func DealStatuses() []DealStatus {
	return []DealStatus{StatusInquiry, StatusNegotiating, StatusProposed, StatusWon, StatusLost}
}

// Valid reports whether s is a known status.
func (s DealStatus) Valid() bool {
	for _, known := range DealStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

const dateLayout = "2006-01-02"

// Deal is a sales representative's negotiation with a retail customer.
type Deal struct {
	ID                string
	CompanyName       string
	ContactPerson     string
	ProductName       string
	ExpectedAmount    decimal.Decimal // yen
	Status            DealStatus
	Probability       int // percent, 0-100
	ExpectedCloseDate string
	Notes             string
}

// Validate checks the fields a deal form must supply.
func (d Deal) Validate() error {
	if strings.TrimSpace(d.CompanyName) == "" {
		return fmt.Errorf("%w: missing company name", ErrInvalidRecord)
	}
	if strings.TrimSpace(d.ProductName) == "" {
		return fmt.Errorf("%w: missing product name", ErrInvalidRecord)
	}
	if !d.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, d.Status)
	}
	if d.Probability < 0 || d.Probability > 100 {
		return fmt.Errorf("%w: probability %d outside [0,100]", ErrInvalidRecord, d.Probability)
	}
	if d.ExpectedAmount.IsNegative() {
		return fmt.Errorf("%w: expected amount %s is negative", ErrInvalidRecord, d.ExpectedAmount)
	}
	if d.ExpectedCloseDate != "" {
		if _, err := time.Parse(dateLayout, d.ExpectedCloseDate); err != nil {
			return fmt.Errorf("%w: expected close date %q is not YYYY-MM-DD", ErrInvalidRecord, d.ExpectedCloseDate)
		}
	}
	return nil
}

// Weighted is the expected amount scaled by the win probability.
func (d Deal) Weighted() decimal.Decimal {
	return d.ExpectedAmount.Mul(decimal.NewFromInt(int64(d.Probability))).Div(decimal.NewFromInt(100))
}

// Pipeline summarises the deal book.
type Pipeline struct {
	Counts   map[DealStatus]int
	Total    decimal.Decimal // sum of expected amounts, lost deals excluded
	Weighted decimal.Decimal // probability-weighted, lost deals excluded
	Won      decimal.Decimal
}

// SummarizePipeline aggregates deals per status with exact decimal arithmetic.
func SummarizePipeline(deals []Deal) Pipeline {
	p := Pipeline{
		Counts:   make(map[DealStatus]int),
		Total:    decimal.Zero,
		Weighted: decimal.Zero,
		Won:      decimal.Zero,
	}
	for _, d := range deals {
		p.Counts[d.Status]++
		if d.Status == StatusLost {
			continue
		}
		p.Total = p.Total.Add(d.ExpectedAmount)
		p.Weighted = p.Weighted.Add(d.Weighted())
		if d.Status == StatusWon {
			p.Won = p.Won.Add(d.ExpectedAmount)
		}
	}
	return p
}
