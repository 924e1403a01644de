package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// SlotsPerYear is the width of the annual shipment grid (12 months x 3 thirds).
const SlotsPerYear = 36

// ErrInvalidArgument marks malformed period data (month, third or volume out of range).
var ErrInvalidArgument = errors.New("invalid argument")

// Third is one of the three ten-day spans of a month.
type Third int

const (
	Early Third = iota
	Mid
	Late
)

var thirdNames = map[Third]string{
	Early: "early",
	Mid:   "mid",
	Late:  "late",
}

// String returns the canonical lowercase name ("early", "mid", "late").
func (t Third) String() string {
	if name, ok := thirdNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Third(%d)", int(t))
}

// Valid reports whether t is one of Early, Mid or Late.
func (t Third) Valid() bool {
	_, ok := thirdNames[t]
	return ok
}

// ParseThird converts "early", "mid" or "late" (case-insensitive) into a Third.
func ParseThird(s string) (Third, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "early":
		return Early, nil
	case "mid":
		return Mid, nil
	case "late":
		return Late, nil
	}
	return 0, fmt.Errorf("%w: unknown third %q", ErrInvalidArgument, s)
}

// SlotIndex maps a (month, third) pair onto the linear 0-35 annual cycle.
func SlotIndex(month int, third Third) (int, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d outside [1,12]", ErrInvalidArgument, month)
	}
	if !third.Valid() {
		return 0, fmt.Errorf("%w: third %d outside {early, mid, late}", ErrInvalidArgument, int(third))
	}
	return (month-1)*3 + int(third), nil
}

// SlotPosition is the inverse of SlotIndex. The slot must be in [0,35].
func SlotPosition(slot int) (month int, third Third, err error) {
	if slot < 0 || slot >= SlotsPerYear {
		return 0, 0, fmt.Errorf("%w: slot %d outside [0,%d]", ErrInvalidArgument, slot, SlotsPerYear-1)
	}
	return slot/3 + 1, Third(slot % 3), nil
}
