package get_availability

import (
	"strconv"

	"github.com/m04kA/lab-booking-service/internal/domain"
	bookingModels "github.com/m04kA/lab-booking-service/internal/service/bookings/models"
	pcModels "github.com/m04kA/lab-booking-service/internal/service/pcs/models"
)

// SlotResponse слот календаря
type SlotResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// CellResponse состояние ячейки (ПК, слот)
type CellResponse struct {
	State      string                         `json:"state"`
	IsOccupied bool                           `json:"isOccupied"`
	Booking    *bookingModels.BookingResponse `json:"booking,omitempty"`
}

// SummaryResponse сводка по слоту
type SummaryResponse struct {
	TimeSlot       string  `json:"timeSlot"`
	AvailableSpots int     `json:"availableSpots"`
	TotalSpots     int     `json:"totalSpots"`
	IsFull         bool    `json:"isFull"`
	OccupancyRate  float64 `json:"occupancyRate"`
}

// AvailabilityResponse HTTP response model
// Grid: ID ПК -> ID слота -> ячейка
type AvailabilityResponse struct {
	Date      string                             `json:"date"`
	TimeSlots []SlotResponse                     `json:"timeSlots"`
	PCs       []pcModels.PCResponse              `json:"pcs"`
	Grid      map[string]map[string]CellResponse `json:"grid"`
	Summary   []SummaryResponse                  `json:"summary"`
}

// FromDomainGrid конвертирует сетку в HTTP ответ
func FromDomainGrid(grid *domain.Grid) *AvailabilityResponse {
	pcNumbers := make(map[int64]string, len(grid.PCs))
	for _, pc := range grid.PCs {
		pcNumbers[pc.ID] = pc.PCNumber
	}

	resp := &AvailabilityResponse{
		Date:      grid.Date.Format(domain.DateFormat),
		TimeSlots: make([]SlotResponse, 0, len(grid.Slots)),
		PCs:       pcModels.FromDomainPCList(grid.PCs).PCs,
		Grid:      make(map[string]map[string]CellResponse, len(grid.Cells)),
		Summary:   make([]SummaryResponse, 0, len(grid.Summary)),
	}

	for _, slot := range grid.Slots {
		resp.TimeSlots = append(resp.TimeSlots, SlotResponse{
			ID:    string(slot.ID),
			Label: slot.Label,
			Start: slot.Start.String(),
			End:   slot.End.String(),
		})
	}

	for pcID, row := range grid.Cells {
		cells := make(map[string]CellResponse, len(row))
		for slotID, cell := range row {
			cells[string(slotID)] = CellResponse{
				State:      string(cell.State),
				IsOccupied: cell.Occupied,
				Booking:    bookingModels.FromDomainBooking(cell.Booking, pcNumbers[pcID]),
			}
		}
		resp.Grid[strconv.FormatInt(pcID, 10)] = cells
	}

	for i := range grid.Summary {
		s := grid.Summary[i]
		resp.Summary = append(resp.Summary, SummaryResponse{
			TimeSlot:       string(s.SlotID),
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
			IsFull:         s.IsFull(),
			OccupancyRate:  s.OccupancyRate(),
		})
	}

	return resp
}
