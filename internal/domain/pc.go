package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PCStatus represents the operational status of a lab computer
type PCStatus string

const (
	PCStatusActive      PCStatus = "active"
	PCStatusMaintenance PCStatus = "maintenance"
	PCStatusInactive    PCStatus = "inactive"
)

// IsValid returns true if the status is one of the known values
func (s PCStatus) IsValid() bool {
	switch s {
	case PCStatusActive, PCStatusMaintenance, PCStatusInactive:
		return true
	}
	return false
}

var pcNumberPattern = regexp.MustCompile(`^[A-Z]{1,3}-[0-9]{1,3}$`)

// PC represents a bookable computer in the lab grid
type PC struct {
	ID        int64
	PCNumber  string
	RowNumber int
	Status    PCStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if new bookings may be placed on this PC
func (p *PC) IsBookable() bool {
	return p.Status == PCStatusActive
}

// Suffix returns the numeric part of the PC number ("CS-10" -> 10)
func (p *PC) Suffix() int {
	return PCNumberSuffix(p.PCNumber)
}

// NormalizePCNumber trims and upper-cases a PC number
func NormalizePCNumber(pcNumber string) string {
	return strings.ToUpper(strings.TrimSpace(pcNumber))
}

// ValidatePCNumber checks the PC number pattern (1-3 letters, dash, 1-3 digits)
func ValidatePCNumber(pcNumber string) error {
	if !pcNumberPattern.MatchString(pcNumber) {
		return ErrInvalidPCNumber
	}
	return nil
}

// ValidateRowNumber checks that the row is within the lab grid
func ValidateRowNumber(row int) error {
	if row < MinRowNumber || row > MaxRowNumber {
		return ErrInvalidRowNumber
	}
	return nil
}

// PCNumberSuffix returns the numeric suffix of a PC number or 0 if there is none
func PCNumberSuffix(pcNumber string) int {
	idx := strings.LastIndex(pcNumber, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(pcNumber[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// SortPCs orders PCs by row, then numeric suffix, then PC number
func SortPCs(pcs []*PC) {
	sort.SliceStable(pcs, func(i, j int) bool {
		if pcs[i].RowNumber != pcs[j].RowNumber {
			return pcs[i].RowNumber < pcs[j].RowNumber
		}
		if si, sj := pcs[i].Suffix(), pcs[j].Suffix(); si != sj {
			return si < sj
		}
		return pcs[i].PCNumber < pcs[j].PCNumber
	})
}

// GroupByRow groups PCs by row; each row is sorted by numeric suffix
func GroupByRow(pcs []*PC) map[int][]*PC {
	sorted := make([]*PC, len(pcs))
	copy(sorted, pcs)
	SortPCs(sorted)

	rows := make(map[int][]*PC)
	for _, pc := range sorted {
		rows[pc.RowNumber] = append(rows[pc.RowNumber], pc)
	}
	return rows
}
