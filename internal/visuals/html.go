package visuals

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"sync"

	"produce-mcp/internal/calendar"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
)

const calendarCSS = `
body {
  font-family: "Hiragino Sans", "Noto Sans JP", sans-serif;
  margin: 24px;
  color: #111827;
}
h1 {
  font-size: 1.25rem;
  margin-bottom: 16px;
}
table.calendar {
  border-collapse: separate;
  border-spacing: 2px;
  min-width: 1400px;
}
table.calendar th {
  background: #f3f4f6;
  border-radius: 4px;
  font-size: 0.7rem;
  font-weight: normal;
  padding: 4px 2px;
  text-align: center;
}
table.calendar th span {
  opacity: 0.7;
}
td.info {
  border: 1px solid #e5e7eb;
  border-radius: 4px;
  padding: 8px;
  width: 250px;
}
td.info .meta {
  color: #6b7280;
  font-size: 0.75rem;
}
.badge {
  border-radius: 9999px;
  font-size: 0.75rem;
  padding: 2px 8px;
}
.cell {
  border-radius: 4px;
  height: 32px;
  transition: transform 0.2s;
}
.cell:hover {
  transform: scale(1.05);
}
.legend {
  display: flex;
  gap: 48px;
  margin-top: 24px;
}
.legend .swatch {
  border-radius: 4px;
  display: inline-block;
  height: 16px;
  margin-right: 6px;
  vertical-align: middle;
  width: 16px;
}
.empty {
  color: #6b7280;
  padding: 48px 0;
  text-align: center;
}
`

var (
	cssOnce     sync.Once
	minifiedCSS template.CSS
)

// stylesheet returns the calendar CSS minified with esbuild. A transform
// failure falls back to the unminified source.
func stylesheet() template.CSS {
	cssOnce.Do(func() {
		result := api.Transform(calendarCSS, api.TransformOptions{
			Loader:           api.LoaderCSS,
			MinifyWhitespace: true,
			MinifySyntax:     true,
		})
		if len(result.Errors) > 0 {
			log.Warn().Str("error", result.Errors[0].Text).Msg("CSS minification failed, using source stylesheet")
			minifiedCSS = template.CSS(calendarCSS)
			return
		}
		minifiedCSS = template.CSS(result.Code)
	})
	return minifiedCSS
}

type htmlSlot struct {
	Month string
	Third string
}

type htmlCell struct {
	Filled  bool
	Color   template.CSS
	Tooltip string
}

type htmlRow struct {
	Variety  string
	Category string
	Origin   string
	Price    string
	Total    string
	Badge    template.CSS
	Cells    []htmlCell
}

type htmlLegend struct {
	Label string
	Color template.CSS
}

type htmlPage struct {
	Title      string
	Empty      bool
	Slots      []htmlSlot
	Rows       []htmlRow
	Categories []htmlLegend
	Shades     []htmlLegend
	CSS        template.CSS
}

var pageTemplate = template.Must(template.New("calendar").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Empty}}<p class="empty">` + EmptyMessage + `</p>
{{else}}<table class="calendar">
<thead><tr><th>商品情報</th>{{range .Slots}}<th>{{.Month}}<br><span>{{.Third}}</span></th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>
<td class="info"><span class="badge" style="background:{{.Badge}}">{{.Category}}</span>
<div>{{.Variety}}</div>
<div class="meta">{{.Origin}}</div>
<div class="meta">¥{{.Price}}/kg</div>
<div class="meta">{{.Total}}トン</div></td>
{{range .Cells}}<td>{{if .Filled}}<div class="cell" style="background:{{.Color}}" title="{{.Tooltip}}"></div>{{end}}</td>{{end}}
</tr>
{{end}}</tbody>
</table>
<div class="legend">
<div><h2>凡例（カテゴリ）</h2>{{range .Categories}}<div><span class="swatch" style="background:{{.Color}}"></span>{{.Label}}</div>{{end}}</div>
<div><h2>収量の濃淡</h2>{{range .Shades}}<div><span class="swatch" style="background:{{.Color}}"></span>{{.Label}}</div>{{end}}</div>
</div>
{{end}}</body>
</html>
`))

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderHTML renders the calendar as a standalone HTML page.
func RenderHTML(view *calendar.View, title string) ([]byte, error) {
	page := htmlPage{
		Title: title,
		Empty: view == nil || view.Empty(),
		CSS:   stylesheet(),
	}

	for slot := 0; slot < calendar.SlotsPerYear; slot++ {
		month, third, _ := calendar.SlotPosition(slot)
		page.Slots = append(page.Slots, htmlSlot{Month: MonthLabel(month), Third: ThirdLabel(third)})
	}

	if !page.Empty {
		for _, row := range view.Rows {
			hr := htmlRow{
				Variety:  row.Item.Variety,
				Category: row.Item.Category,
				Origin:   row.Item.Origin,
				Price:    formatNumber(row.Item.Price),
				Total:    formatNumber(row.TotalVolume),
				Badge:    template.CSS(Hex(row.Color, calendar.Lightest)),
				Cells:    make([]htmlCell, 0, calendar.SlotsPerYear),
			}
			for _, cell := range row.Cells {
				if cell.Empty() {
					hr.Cells = append(hr.Cells, htmlCell{})
					continue
				}
				hr.Cells = append(hr.Cells, htmlCell{
					Filled:  true,
					Color:   template.CSS(Hex(row.Color, view.Intensity(cell))),
					Tooltip: Tooltip(cell.Total()),
				})
			}
			page.Rows = append(page.Rows, hr)
		}

		for _, category := range view.Categories() {
			page.Categories = append(page.Categories, htmlLegend{
				Label: category,
				Color: template.CSS(Hex(calendar.CategoryColor(category), calendar.Light)),
			})
		}
		for _, in := range calendar.Intensities() {
			page.Shades = append(page.Shades, htmlLegend{
				Label: intensityLabels[in],
				Color: template.CSS(Hex(calendar.DefaultColor, in)),
			})
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render calendar html: %w", err)
	}
	return buf.Bytes(), nil
}
