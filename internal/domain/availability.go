package domain

import "time"

// CellState is the occupancy state of one (pc, slot) cell on a date
type CellState string

const (
	CellAvailable     CellState = "available"
	CellOccupied      CellState = "occupied"
	CellUnavailable   CellState = "unavailable"
	CellRecentlyFreed CellState = "recently_freed"
)

// Cell is a single grid entry
type Cell struct {
	State    CellState
	Occupied bool
	Booking  *Booking // confirmed booking holding the cell, if any
}

// SlotSummary counts free PCs in one slot across the grid
type SlotSummary struct {
	SlotID         SlotID
	AvailableSpots int
	TotalSpots     int
}

// IsFull returns true if no PC is free in the slot
func (s *SlotSummary) IsFull() bool {
	return s.AvailableSpots <= 0
}

// OccupancyRate returns the occupied share of the slot from 0 to 1
func (s *SlotSummary) OccupancyRate() float64 {
	if s.TotalSpots == 0 {
		return 0
	}
	return float64(s.TotalSpots-s.AvailableSpots) / float64(s.TotalSpots)
}

// Grid is the availability of every registered PC for every slot on a date
type Grid struct {
	Date    time.Time
	Slots   []Slot
	PCs     []*PC
	Cells   map[int64]map[SlotID]Cell
	Summary []SlotSummary
}

// Cell returns the cell for a PC and slot
func (g *Grid) Cell(pcID int64, slot SlotID) (Cell, bool) {
	row, ok := g.Cells[pcID]
	if !ok {
		return Cell{}, false
	}
	cell, ok := row[slot]
	return cell, ok
}
