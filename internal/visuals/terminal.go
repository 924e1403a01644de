package visuals

import (
	"fmt"
	"strings"

	"produce-mcp/internal/calendar"

	"github.com/charmbracelet/lipgloss"
)

const (
	labelWidth = 28
	cellWidth  = 2
)

// EmptyMessage is shown instead of a grid when no items match the filters.
const EmptyMessage = "該当する商品が見つかりませんでした。"

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Width(labelWidth).MaxWidth(labelWidth).MaxHeight(1)
	monthStyle  = lipgloss.NewStyle().Width(cellWidth * 3).MaxWidth(cellWidth * 3)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// RenderTerminal draws the calendar as a 36-column heat map for a terminal.
// Each filled cell is shaded by its category colour and volume intensity.
func RenderTerminal(view *calendar.View) string {
	if view == nil || view.Empty() {
		return mutedStyle.Render(EmptyMessage) + "\n"
	}

	var sb strings.Builder

	// Header: one label per month spanning its three cells.
	sb.WriteString(labelStyle.Render(headerStyle.Render("商品情報")))
	for m := 1; m <= 12; m++ {
		sb.WriteString(monthStyle.Render(MonthLabel(m)))
	}
	sb.WriteString("\n")

	blank := strings.Repeat(" ", cellWidth)
	for _, row := range view.Rows {
		label := fmt.Sprintf("%s %s (%s)", row.Item.Variety, row.Item.Category, row.Item.Origin)
		sb.WriteString(labelStyle.Render(label))

		for _, cell := range row.Cells {
			if cell.Empty() {
				sb.WriteString(mutedStyle.Render(strings.Repeat("·", cellWidth)))
				continue
			}
			hex := Hex(row.Color, view.Intensity(cell))
			sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(blank))
		}
		sb.WriteString("\n")
	}

	if max, ok := view.MaxVolume(); ok {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("最大出荷量: %.1fトン", max)))
		sb.WriteString("\n")
	}
	sb.WriteString(renderTerminalLegend(view))
	return sb.String()
}

func renderTerminalLegend(view *calendar.View) string {
	var parts []string
	for _, category := range view.Categories() {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(Hex(calendar.CategoryColor(category), calendar.Light))).
			Render(strings.Repeat(" ", cellWidth))
		parts = append(parts, swatch+" "+category)
	}

	var shades []string
	for _, in := range calendar.Intensities() {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(Hex(calendar.DefaultColor, in))).
			Render(strings.Repeat(" ", cellWidth))
		shades = append(shades, swatch+" "+intensityLabels[in])
	}

	return "凡例: " + strings.Join(parts, "  ") + "\n" +
		"濃淡: " + strings.Join(shades, "  ") + "\n"
}

var intensityLabels = map[calendar.Intensity]string{
	calendar.Lightest: "低収量",
	calendar.Light:    "中収量",
	calendar.Medium:   "高収量",
	calendar.Darkest:  "最高収量",
}
