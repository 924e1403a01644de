package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPipeline_Fixtures(t *testing.T) {
	c := loadFixtures(t)
	p := c.Pipeline()

	if !p.Total.Equal(decimal.NewFromInt(515000)) {
		t.Errorf("total = %s, want 515000", p.Total)
	}
	// 250000*0.6 + 180000*0.8 + 85000*1.0
	if !p.Weighted.Equal(decimal.NewFromInt(379000)) {
		t.Errorf("weighted = %s, want 379000", p.Weighted)
	}
	if !p.Won.Equal(decimal.NewFromInt(85000)) {
		t.Errorf("won = %s, want 85000", p.Won)
	}
	if p.Counts[StatusNegotiating] != 1 || p.Counts[StatusProposed] != 1 || p.Counts[StatusWon] != 1 {
		t.Errorf("unexpected counts: %v", p.Counts)
	}
}

func TestPipeline_ExcludesLostDeals(t *testing.T) {
	deals := []Deal{
		{ExpectedAmount: decimal.NewFromInt(1000), Status: StatusLost, Probability: 0},
		{ExpectedAmount: decimal.RequireFromString("333.33"), Status: StatusInquiry, Probability: 30},
	}

	p := SummarizePipeline(deals)
	if !p.Total.Equal(decimal.RequireFromString("333.33")) {
		t.Errorf("total = %s, want 333.33", p.Total)
	}
	if !p.Weighted.Equal(decimal.RequireFromString("99.999")) {
		t.Errorf("weighted = %s, want 99.999", p.Weighted)
	}
	if p.Counts[StatusLost] != 1 {
		t.Errorf("lost deals should still be counted, got %v", p.Counts)
	}
}

func TestUpsertDeal(t *testing.T) {
	c := New(nil, nil)
	c.newID = func() string { return "01DEAL" }

	d, err := c.UpsertDeal(Deal{
		CompanyName:       "青果センター",
		ProductName:       "白鳳（山梨県産）",
		ExpectedAmount:    decimal.NewFromInt(120000),
		Status:            StatusInquiry,
		Probability:       20,
		ExpectedCloseDate: "2025-07-01",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if d.ID != "01DEAL" {
		t.Errorf("ID = %q, want 01DEAL", d.ID)
	}

	d.Status = StatusWon
	d.Probability = 100
	if _, err := c.UpsertDeal(d); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if got := c.Deals()[0].Status; got != StatusWon {
		t.Errorf("status = %s, want %s", got, StatusWon)
	}

	d.ID = "unknown"
	if _, err := c.UpsertDeal(d); !errors.Is(err, ErrNotFound) {
		t.Errorf("update of unknown deal error = %v, want ErrNotFound", err)
	}
}

func TestDeal_Validate(t *testing.T) {
	base := Deal{CompanyName: "c", ProductName: "p", Status: StatusInquiry, Probability: 10}

	tests := []struct {
		name   string
		mutate func(*Deal)
	}{
		{"MissingCompany", func(d *Deal) { d.CompanyName = " " }},
		{"MissingProduct", func(d *Deal) { d.ProductName = "" }},
		{"UnknownStatus", func(d *Deal) { d.Status = "保留" }},
		{"ProbabilityNegative", func(d *Deal) { d.Probability = -1 }},
		{"ProbabilityTooHigh", func(d *Deal) { d.Probability = 101 }},
		{"NegativeAmount", func(d *Deal) { d.ExpectedAmount = decimal.NewFromInt(-5) }},
		{"BadDate", func(d *Deal) { d.ExpectedCloseDate = "2025/01/30" }},
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("base deal should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			tt.mutate(&d)
			if err := d.Validate(); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}
