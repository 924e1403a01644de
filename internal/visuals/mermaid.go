package visuals

import (
	"fmt"
	"math"
	"strings"

	"produce-mcp/internal/calendar"
)

// Reference non-leap year used to place slots on a gantt time axis.
const ganttYear = 2001

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func slotStartDate(slot int) string {
	month, third, _ := calendar.SlotPosition(slot)
	return fmt.Sprintf("%04d-%02d-%02d", ganttYear, month, int(third)*10+1)
}

func slotEndDate(slot int) string {
	month, third, _ := calendar.SlotPosition(slot)
	day := int(third)*10 + 10
	if third == calendar.Late {
		day = monthDays[month-1]
	}
	return fmt.Sprintf("%04d-%02d-%02d", ganttYear, month, day)
}

// slotRun is a maximal run of consecutive filled cells within one row.
type slotRun struct {
	start, end int
	volume     float64
}

func filledRuns(row calendar.Row) []slotRun {
	var runs []slotRun
	var cur *slotRun
	for _, cell := range row.Cells {
		if cell.Empty() {
			cur = nil
			continue
		}
		if cur == nil {
			runs = append(runs, slotRun{start: cell.Slot})
			cur = &runs[len(runs)-1]
		}
		cur.end = cell.Slot
		cur.volume += cell.Total()
	}
	return runs
}

func mermaidSafe(s string) string {
	return strings.NewReplacer(":", " ", "#", " ", ";", " ", "\"", "'").Replace(s)
}

// GenerateShipmentGantt creates a Mermaid gantt chart with one section per
// item and one bar per contiguous shipping run. Year-wrapping periods appear
// as two bars, one at each end of the axis.
func GenerateShipmentGantt(view *calendar.View) string {
	if view == nil || view.Empty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("gantt\n")
	sb.WriteString("    title 年間出荷スケジュール（上中下旬別）\n")
	sb.WriteString("    dateFormat YYYY-MM-DD\n")
	sb.WriteString("    axisFormat %m月\n")

	for i, row := range view.Rows {
		sb.WriteString(fmt.Sprintf("    section %s (%s)\n", mermaidSafe(row.Item.Variety), mermaidSafe(row.Item.Origin)))
		for j, run := range filledRuns(row) {
			label := fmt.Sprintf("%s〜%s %.1fトン", SlotLabel(run.start), SlotLabel(run.end), run.volume)
			sb.WriteString(fmt.Sprintf("    %s :r%d_%d, %s, %s\n", label, i, j, slotStartDate(run.start), slotEndDate(run.end)))
		}
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateSupplyChart creates a Mermaid bar chart of the total volume shipped
// per slot across every row of the view.
func GenerateSupplyChart(view *calendar.View) string {
	if view == nil || view.Empty() {
		return ""
	}

	var totals [calendar.SlotsPerYear]float64
	for _, row := range view.Rows {
		for _, cell := range row.Cells {
			totals[cell.Slot] += cell.Total()
		}
	}

	var labels []string
	var values []string
	maxVal := 0.0
	for slot, v := range totals {
		labels = append(labels, fmt.Sprintf("\"%s\"", SlotLabel(slot)))
		values = append(values, fmt.Sprintf("%.1f", v))
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"旬別出荷量\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"トン\" 0 --> %d\n", int(math.Ceil(math.Max(1, maxVal*1.2)))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}
