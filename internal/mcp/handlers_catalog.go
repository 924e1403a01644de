package mcp

import (
	"context"

	"produce-mcp/internal/catalog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type SearchInput struct {
	Text     string `json:"text,omitempty" jsonschema:"case-insensitive text matched against variety, description and category"`
	Category string `json:"category,omitempty" jsonschema:"exact category; すべて or empty matches all"`
	Origin   string `json:"origin,omitempty" jsonschema:"exact origin prefecture; すべて or empty matches all"`
	Sort     string `json:"sort,omitempty" jsonschema:"variety (default), price-low, price-high or rating"`
}

type SearchOutput struct {
	Count int           `json:"count"`
	Items []ItemSummary `json:"items"`
}

type FacetsOutput struct {
	Categories []string `json:"categories"`
	Origins    []string `json:"origins"`
}

type ItemDetailInput struct {
	ID string `json:"id" jsonschema:"item id as returned by catalog_search"`
}

func (s *Server) handleCatalogSearch(ctx context.Context, req *sdk.CallToolRequest, in SearchInput) (*sdk.CallToolResult, SearchOutput, error) {
	items, err := s.catalog.Search(catalog.Query{
		Text:     in.Text,
		Category: in.Category,
		Origin:   in.Origin,
		Sort:     catalog.SortOrder(in.Sort),
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	log.Debug().Str("text", in.Text).Int("hits", len(items)).Msg("Catalog search")
	return nil, SearchOutput{Count: len(items), Items: toItemSummaries(items)}, nil
}

func (s *Server) handleCatalogFacets(ctx context.Context, req *sdk.CallToolRequest, _ struct{}) (*sdk.CallToolResult, FacetsOutput, error) {
	out := FacetsOutput{
		Categories: append([]string{catalog.AllFilter}, s.catalog.Categories()...),
		Origins:    append([]string{catalog.AllFilter}, s.catalog.Origins()...),
	}
	return nil, out, nil
}

func (s *Server) handleItemDetail(ctx context.Context, req *sdk.CallToolRequest, in ItemDetailInput) (*sdk.CallToolResult, ItemDetail, error) {
	it, err := s.catalog.Item(in.ID)
	if err != nil {
		return nil, ItemDetail{}, err
	}
	return nil, toItemDetail(it), nil
}
