package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"produce-mcp/internal/calendar"
	"produce-mcp/internal/catalog"
	"produce-mcp/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

const calendarTitle = "年間出荷スケジュール"

type CalendarInput struct {
	Category     string `json:"category,omitempty" jsonschema:"exact category; すべて or empty shows all"`
	Origin       string `json:"origin,omitempty" jsonschema:"exact origin prefecture; すべて or empty shows all"`
	IncludeChart bool   `json:"include_chart,omitempty" jsonschema:"attach a Mermaid gantt chart and a per-slot supply bar chart"`
	SaveHTML     bool   `json:"save_html,omitempty" jsonschema:"write a standalone HTML calendar to the output directory"`
}

type CalendarCell struct {
	Slot      int     `json:"slot" jsonschema:"0-35; (month-1)*3 + third"`
	Label     string  `json:"label"`
	Volume    float64 `json:"volume" jsonschema:"tonnes shipped in this slot, summed over overlapping periods"`
	Tooltip   string  `json:"tooltip"`
	Intensity string  `json:"intensity" jsonschema:"lightest, light, medium or darkest"`
	Color     string  `json:"color" jsonschema:"hex colour for the cell"`
}

type CalendarRow struct {
	ItemID      string         `json:"item_id"`
	Variety     string         `json:"variety"`
	Category    string         `json:"category"`
	Origin      string         `json:"origin"`
	BaseColor   string         `json:"base_color"`
	TotalVolume float64        `json:"total_volume"`
	Cells       []CalendarCell `json:"cells" jsonschema:"covered slots only, in slot order"`
}

type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type CalendarOutput struct {
	Slots       []string      `json:"slots" jsonschema:"the 36 column labels"`
	Rows        []CalendarRow `json:"rows"`
	MaxVolume   *float64      `json:"max_volume,omitempty" jsonschema:"largest single shipment-period total in the selection; absent when nothing matched"`
	Message     string        `json:"message,omitempty"`
	Categories  []LegendEntry `json:"categories"`
	Shades      []LegendEntry `json:"shades"`
	Chart       string        `json:"visual_gantt,omitempty"`
	SupplyChart string        `json:"visual_supply_bar,omitempty"`
	HTMLPath    string        `json:"html_path,omitempty"`
	Guidance    []string      `json:"_guidance,omitempty"`
}

func (s *Server) handleCalendarBuild(ctx context.Context, req *sdk.CallToolRequest, in CalendarInput) (*sdk.CallToolResult, CalendarOutput, error) {
	items := s.catalog.Filter(in.Category, in.Origin)
	view, err := calendar.Build(catalog.CalendarItems(items))
	if err != nil {
		return nil, CalendarOutput{}, err
	}

	out := toCalendarOutput(view)
	if view.Empty() {
		out.Message = visuals.EmptyMessage
	}

	if in.IncludeChart && s.enableMermaidCharts {
		out.Chart = visuals.GenerateShipmentGantt(view)
		out.SupplyChart = visuals.GenerateSupplyChart(view)
	}

	if in.SaveHTML {
		path, err := s.saveHTML(view)
		if err != nil {
			return nil, CalendarOutput{}, err
		}
		out.HTMLPath = path
	}

	out.Guidance = []string{
		"Each row lists only covered slots. Intensity compares a cell's volume with max_volume, the largest single shipment-period total in this selection. Ratios below 0.2 are shaded as 0.2.",
		"Changing the category or origin filter changes max_volume, so shades are only comparable within one call.",
	}

	log.Info().
		Str("category", in.Category).
		Str("origin", in.Origin).
		Int("rows", len(out.Rows)).
		Msg("Calendar built")
	return nil, out, nil
}

func toCalendarOutput(view *calendar.View) CalendarOutput {
	out := CalendarOutput{
		Slots:      make([]string, 0, calendar.SlotsPerYear),
		Rows:       make([]CalendarRow, 0, len(view.Rows)),
		Categories: make([]LegendEntry, 0),
		Shades:     make([]LegendEntry, 0, 4),
	}
	for slot := 0; slot < calendar.SlotsPerYear; slot++ {
		out.Slots = append(out.Slots, visuals.SlotLabel(slot))
	}
	if max, ok := view.MaxVolume(); ok {
		out.MaxVolume = &max
	}

	for _, row := range view.Rows {
		r := CalendarRow{
			ItemID:      row.Item.ID,
			Variety:     row.Item.Variety,
			Category:    row.Item.Category,
			Origin:      row.Item.Origin,
			BaseColor:   string(row.Color),
			TotalVolume: row.TotalVolume,
			Cells:       make([]CalendarCell, 0),
		}
		for _, cell := range row.Cells {
			if cell.Empty() {
				continue
			}
			in := view.Intensity(cell)
			r.Cells = append(r.Cells, CalendarCell{
				Slot:      cell.Slot,
				Label:     visuals.SlotLabel(cell.Slot),
				Volume:    cell.Total(),
				Tooltip:   visuals.Tooltip(cell.Total()),
				Intensity: in.String(),
				Color:     visuals.Hex(row.Color, in),
			})
		}
		out.Rows = append(out.Rows, r)
	}

	for _, category := range view.Categories() {
		out.Categories = append(out.Categories, LegendEntry{
			Label: category,
			Color: visuals.Hex(calendar.CategoryColor(category), calendar.Light),
		})
	}
	for _, in := range calendar.Intensities() {
		out.Shades = append(out.Shades, LegendEntry{
			Label: in.String(),
			Color: visuals.Hex(calendar.DefaultColor, in),
		})
	}
	return out
}

func (s *Server) saveHTML(view *calendar.View) (string, error) {
	page, err := visuals.RenderHTML(view, calendarTitle)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", s.outputDir, err)
	}

	path := filepath.Join(s.outputDir, "calendar-"+ulid.Make().String()+".html")
	if err := os.WriteFile(path, page, 0644); err != nil {
		return "", fmt.Errorf("write calendar html: %w", err)
	}
	log.Info().Str("path", path).Msg("Calendar HTML written")

	if s.openBrowser {
		if err := s.openFile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to open calendar in browser")
		}
	}
	return path, nil
}
