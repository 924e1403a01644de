package mcp

import (
	"produce-mcp/internal/roles"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

func (s *Server) registerTools() {
	for _, view := range s.role.Views() {
		switch view {
		case roles.Catalog:
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name:        "catalog_search",
				Description: "Search the produce catalog by free text (variety, description, category), category and origin. Use 'すべて' or omit a filter to match everything. Results are sorted by variety unless 'sort' is price-low, price-high or rating.",
			}, s.handleCatalogSearch)
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name:        "catalog_facets",
				Description: "List the distinct categories and origins present in the catalog, in first-seen order. Call this before filtering so filter values match exactly.",
			}, s.handleCatalogFacets)

		case roles.Detail:
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name:        "catalog_item_detail",
				Description: "Get the full record for one item: producer group, SKUs, sales history and shipment periods.",
			}, s.handleItemDetail)

		case roles.Calendar:
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name: "calendar_build",
				Description: "Build the annual shipment calendar: 36 slots (early/mid/late third of each month) per item, with per-slot volume, tooltip text and a colour shaded by volume relative to the largest single shipment-period total.\n\n" +
					"Periods that cross the new year wrap from December into January. Volume is split evenly over the covered slots.\n" +
					"Set include_chart for a Mermaid gantt chart, save_html to write a standalone HTML page to the output directory.",
			}, s.handleCalendarBuild)

		case roles.Deals:
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name:        "deals_list",
				Description: "List the sales deal book, optionally filtered by status (引合, 商談中, 提案済, 成約, 失注).",
			}, s.handleDealsList)
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name:        "deals_upsert",
				Description: "Create a deal (omit id) or replace an existing one. expected_amount is a decimal string in yen; probability is a percentage 0-100.",
			}, s.handleDealsUpsert)
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name:        "deals_pipeline",
				Description: "Summarise the deal pipeline: count per status, total expected amount, probability-weighted amount and won amount. Lost deals are excluded from the amounts.",
			}, s.handleDealsPipeline)

		case roles.Products:
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name:        "products_list",
				Description: "List every product in catalog order, including unavailable ones.",
			}, s.handleProductsList)
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name:        "products_upsert",
				Description: "Create a product (omit id) or update an existing one. Variety, category and origin are required; price must not be negative; each shipment period needs months 1-12, thirds early/mid/late and a non-negative total volume.",
			}, s.handleProductsUpsert)
			sdk.AddTool(s.mcp, &sdk.Tool{
				Name:        "products_delete",
				Description: "Delete a product by id.",
			}, s.handleProductsDelete)
		}
		log.Debug().Str("role", string(s.role)).Str("view", string(view)).Msg("Registered view tools")
	}
}
