package calendar

import (
	"fmt"
	"math"
)

// ShipmentPeriod is one contiguous declared shipping window. A window whose
// end slot precedes its start slot wraps across the year boundary.
type ShipmentPeriod struct {
	StartMonth  int
	StartThird  Third
	EndMonth    int
	EndThird    Third
	TotalVolume float64 // tonnes
}

// SlotAllocation is the share of a period's volume attributed to one slot.
type SlotAllocation struct {
	Slot   int
	Share  float64
	Period ShipmentPeriod
}

// Bounds returns the start and end slot indices of the period.
func (p ShipmentPeriod) Bounds() (start, end int, err error) {
	start, err = SlotIndex(p.StartMonth, p.StartThird)
	if err != nil {
		return 0, 0, fmt.Errorf("period start: %w", err)
	}
	end, err = SlotIndex(p.EndMonth, p.EndThird)
	if err != nil {
		return 0, 0, fmt.Errorf("period end: %w", err)
	}
	return start, end, nil
}

// Wraps reports whether the period crosses the year boundary.
func (p ShipmentPeriod) Wraps() bool {
	start, end, err := p.Bounds()
	return err == nil && start > end
}

// Slots returns the covered slot indices in calendar order, start of window first.
func (p ShipmentPeriod) Slots() ([]int, error) {
	start, end, err := p.Bounds()
	if err != nil {
		return nil, err
	}

	if start <= end {
		slots := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			slots = append(slots, i)
		}
		return slots, nil
	}

	// Year wrap: [start..35] then [0..end]
	slots := make([]int, 0, SlotsPerYear-start+end+1)
	for i := start; i < SlotsPerYear; i++ {
		slots = append(slots, i)
	}
	for i := 0; i <= end; i++ {
		slots = append(slots, i)
	}
	return slots, nil
}

// Expand spreads the period's total volume uniformly across every slot it covers.
func Expand(p ShipmentPeriod) ([]SlotAllocation, error) {
	if math.IsNaN(p.TotalVolume) || math.IsInf(p.TotalVolume, 0) || p.TotalVolume < 0 {
		return nil, fmt.Errorf("%w: total volume %v must be a non-negative finite number", ErrInvalidArgument, p.TotalVolume)
	}

	slots, err := p.Slots()
	if err != nil {
		return nil, err
	}

	share := p.TotalVolume / float64(len(slots))
	allocations := make([]SlotAllocation, len(slots))
	for i, slot := range slots {
		allocations[i] = SlotAllocation{
			Slot:   slot,
			Share:  share,
			Period: p,
		}
	}
	return allocations, nil
}
