package mcp

import (
	"context"
	"fmt"

	"produce-mcp/internal/catalog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"
)

type ProductsListOutput struct {
	Count    int           `json:"count"`
	Products []ItemSummary `json:"products"`
}

type ProductInput struct {
	ID            string      `json:"id,omitempty" jsonschema:"omit to create a new product"`
	Variety       string      `json:"variety"`
	Category      string      `json:"category"`
	Origin        string      `json:"origin"`
	Price         string      `json:"price" jsonschema:"decimal yen per kg"`
	Season        string      `json:"season,omitempty"`
	GrowingMethod string      `json:"growing_method,omitempty"`
	Description   string      `json:"description,omitempty"`
	Appeals       []string    `json:"appeals,omitempty"`
	Rating        float64     `json:"rating,omitempty" jsonschema:"0-5"`
	Available     *bool       `json:"available,omitempty" jsonschema:"defaults to true"`
	Periods       []PeriodDTO `json:"periods,omitempty"`
}

type ProductDeleteInput struct {
	ID string `json:"id"`
}

type ProductDeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (s *Server) handleProductsList(ctx context.Context, req *sdk.CallToolRequest, _ struct{}) (*sdk.CallToolResult, ProductsListOutput, error) {
	items := s.catalog.Items()
	return nil, ProductsListOutput{Count: len(items), Products: toItemSummaries(items)}, nil
}

func (s *Server) handleProductsUpsert(ctx context.Context, req *sdk.CallToolRequest, in ProductInput) (*sdk.CallToolResult, ItemDetail, error) {
	it, err := s.productFromInput(in)
	if err != nil {
		return nil, ItemDetail{}, err
	}

	saved, err := s.catalog.UpsertItem(it)
	if err != nil {
		return nil, ItemDetail{}, err
	}
	return nil, toItemDetail(saved), nil
}

func (s *Server) handleProductsDelete(ctx context.Context, req *sdk.CallToolRequest, in ProductDeleteInput) (*sdk.CallToolResult, ProductDeleteOutput, error) {
	if err := s.catalog.DeleteItem(in.ID); err != nil {
		return nil, ProductDeleteOutput{}, err
	}
	return nil, ProductDeleteOutput{ID: in.ID, Deleted: true}, nil
}

// productFromInput converts the form. Updates keep the producer group, SKUs
// and sales history of the stored item since the form does not carry them.
func (s *Server) productFromInput(in ProductInput) (catalog.Item, error) {
	price := decimal.Zero
	if in.Price != "" {
		var err error
		if price, err = parseAmount("price", in.Price); err != nil {
			return catalog.Item{}, err
		}
	}

	it := catalog.Item{
		ID:            in.ID,
		Variety:       in.Variety,
		Category:      in.Category,
		Origin:        in.Origin,
		Price:         price,
		Season:        in.Season,
		GrowingMethod: in.GrowingMethod,
		Description:   in.Description,
		Appeals:       in.Appeals,
		Rating:        in.Rating,
		Available:     in.Available == nil || *in.Available,
	}
	for i, p := range in.Periods {
		period, err := fromPeriodDTO(p)
		if err != nil {
			return catalog.Item{}, fmt.Errorf("%w: period %d: %v", catalog.ErrInvalidRecord, i, err)
		}
		it.Periods = append(it.Periods, period)
	}

	// An unknown ID is reported by UpsertItem.
	if existing, err := s.catalog.Item(in.ID); in.ID != "" && err == nil {
		it.Producer = existing.Producer
		it.SKUs = existing.SKUs
		it.Sales = existing.Sales
	}
	return it, nil
}
