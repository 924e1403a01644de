package visuals

import (
	"fmt"

	"produce-mcp/internal/calendar"
)

var thirdLabels = map[calendar.Third]string{
	calendar.Early: "上旬",
	calendar.Mid:   "中旬",
	calendar.Late:  "下旬",
}

// MonthLabel renders a 1-based month as "1月".."12月".
func MonthLabel(month int) string {
	return fmt.Sprintf("%d月", month)
}

// ThirdLabel renders a third as 上旬/中旬/下旬.
func ThirdLabel(t calendar.Third) string {
	return thirdLabels[t]
}

// SlotLabel renders a slot index as e.g. "11月上旬". Out-of-range slots render empty.
func SlotLabel(slot int) string {
	month, third, err := calendar.SlotPosition(slot)
	if err != nil {
		return ""
	}
	return MonthLabel(month) + ThirdLabel(third)
}

// Tooltip is the hover text of a filled calendar cell.
func Tooltip(volume float64) string {
	return fmt.Sprintf("収量: %.1fトン", volume)
}
