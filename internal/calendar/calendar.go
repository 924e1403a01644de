package calendar

import "fmt"

// Item is the calendar's view of a catalog entry.
type Item struct {
	ID       string
	Variety  string
	Category string
	Origin   string
	Price    float64 // yen per kg
	Periods  []ShipmentPeriod
}

// Cell holds every allocation that lands on one slot of one item's row.
// Overlapping periods keep one allocation each, in declaration order.
type Cell struct {
	Slot        int
	Allocations []SlotAllocation
}

// Total is the displayed value of the cell: the sum of all allocation shares.
func (c Cell) Total() float64 {
	total := 0.0
	for _, a := range c.Allocations {
		total += a.Share
	}
	return total
}

// Empty reports whether no period covers this slot.
func (c Cell) Empty() bool {
	return len(c.Allocations) == 0
}

// Row is one item's line in the calendar grid.
type Row struct {
	Item        Item
	Color       BaseColor
	TotalVolume float64 // sum of the item's period totals
	Cells       [SlotsPerYear]Cell
}

// View is the per-render calendar for a filtered set of items.
type View struct {
	Rows      []Row
	maxVolume float64
	hasMax    bool
}

// MaxVolume returns the largest single period total in the view. ok is false
// when the view holds no periods, in which case there is nothing to scale.
func (v *View) MaxVolume() (max float64, ok bool) {
	return v.maxVolume, v.hasMax
}

// Empty reports whether the view has no rows to render.
func (v *View) Empty() bool {
	return len(v.Rows) == 0
}

// Intensity buckets a cell's displayed total against the view's maxVolume.
func (v *View) Intensity(c Cell) Intensity {
	return IntensityFor(c.Total(), v.maxVolume)
}

// Categories lists the distinct categories of the view's rows in first-seen order.
func (v *View) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range v.Rows {
		if !seen[r.Item.Category] {
			seen[r.Item.Category] = true
			out = append(out, r.Item.Category)
		}
	}
	return out
}

// Build expands every period of every item into the 36-slot grid. Items are
// kept in input order. An empty input yields an empty view and no error.
func Build(items []Item) (*View, error) {
	view := &View{Rows: make([]Row, 0, len(items))}

	for _, item := range items {
		row := Row{
			Item:  item,
			Color: CategoryColor(item.Category),
		}
		for slot := range row.Cells {
			row.Cells[slot].Slot = slot
		}

		for i, period := range item.Periods {
			allocations, err := Expand(period)
			if err != nil {
				return nil, fmt.Errorf("item %s period %d: %w", item.ID, i, err)
			}
			for _, a := range allocations {
				row.Cells[a.Slot].Allocations = append(row.Cells[a.Slot].Allocations, a)
			}

			row.TotalVolume += period.TotalVolume
			if !view.hasMax || period.TotalVolume > view.maxVolume {
				view.maxVolume = period.TotalVolume
				view.hasMax = true
			}
		}

		view.Rows = append(view.Rows, row)
	}

	return view, nil
}
