package domain

import (
	"strings"

	"github.com/m04kA/lab-booking-service/pkg/types"
)

// SlotID is the wire identifier of a slot, e.g. "09:00-10:30"
type SlotID string

// Slot is one of the fixed daily booking windows
type Slot struct {
	ID    SlotID
	Label string
	Start types.TimeString
	End   types.TimeString
}

// Contains reports whether t falls into the half-open interval [Start, End)
func (s Slot) Contains(t types.TimeString) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// DurationMinutes returns the slot length
func (s Slot) DurationMinutes() int {
	return s.End.Minutes() - s.Start.Minutes()
}

// slotCalendar is ordered and non-overlapping. Lunch break is 13:30-14:00.
var slotCalendar = []Slot{
	newSlot("09:00", "10:30"),
	newSlot("10:30", "12:00"),
	newSlot("12:00", "13:30"),
	newSlot("14:00", "15:30"),
	newSlot("15:30", "17:00"),
}

func newSlot(start, end string) Slot {
	s := types.MustTimeString(start)
	e := types.MustTimeString(end)
	return Slot{
		ID:    SlotID(s.String() + "-" + e.String()),
		Label: s.Format12h() + " - " + e.Format12h(),
		Start: s,
		End:   e,
	}
}

// AllSlots returns the daily slots in order
func AllSlots() []Slot {
	out := make([]Slot, len(slotCalendar))
	copy(out, slotCalendar)
	return out
}

// AllSlotIDs returns the slot ids in order
func AllSlotIDs() []SlotID {
	ids := make([]SlotID, 0, len(slotCalendar))
	for _, s := range slotCalendar {
		ids = append(ids, s.ID)
	}
	return ids
}

// SlotByID looks a slot up by its id
func SlotByID(id SlotID) (Slot, bool) {
	for _, s := range slotCalendar {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// IsValidSlot returns true if id is one of the daily slots
func IsValidSlot(id SlotID) bool {
	_, ok := SlotByID(id)
	return ok
}

// LabelOf returns the display label for a slot id
func LabelOf(id SlotID) (string, bool) {
	s, ok := SlotByID(id)
	if !ok {
		return "", false
	}
	return s.Label, true
}

// ParseSlot accepts a slot id ("14:00-15:30") or its label ("02:00 PM - 03:30 PM")
func ParseSlot(value string) (Slot, error) {
	normalized := normalizeSlotText(value)
	if normalized == "" {
		return Slot{}, ErrInvalidSlot
	}

	for _, s := range slotCalendar {
		if normalizeSlotText(string(s.ID)) == normalized || normalizeSlotText(s.Label) == normalized {
			return s, nil
		}
	}
	return Slot{}, ErrInvalidSlot
}

func normalizeSlotText(value string) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), ""))
}

// SlotContaining returns the slot that contains t
func SlotContaining(t types.TimeString) (Slot, bool) {
	for _, s := range slotCalendar {
		if s.Contains(t) {
			return s, true
		}
	}
	return Slot{}, false
}

// NextSlotAfter returns the first slot starting strictly after t
func NextSlotAfter(t types.TimeString) (Slot, bool) {
	for _, s := range slotCalendar {
		if s.Start.After(t) {
			return s, true
		}
	}
	return Slot{}, false
}

// EndedSlots returns ids of slots whose end is at or before t
func EndedSlots(t types.TimeString) []SlotID {
	var ids []SlotID
	for _, s := range slotCalendar {
		if !s.End.After(t) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
