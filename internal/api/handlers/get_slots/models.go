package get_slots

import "github.com/m04kA/lab-booking-service/internal/domain"

// SlotResponse слот календаря
type SlotResponse struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
}

// SlotsResponse календарь слотов и текущее положение в нем
type SlotsResponse struct {
	Timezone    string         `json:"timezone"`
	Today       string         `json:"today"`
	Now         string         `json:"now"`
	TimeSlots   []SlotResponse `json:"timeSlots"`
	CurrentSlot *SlotResponse  `json:"currentSlot"`
	NextSlot    *SlotResponse  `json:"nextSlot"`
}

func fromDomainSlot(s domain.Slot) SlotResponse {
	return SlotResponse{
		ID:              string(s.ID),
		Label:           s.Label,
		Start:           s.Start.String(),
		End:             s.End.String(),
		DurationMinutes: s.DurationMinutes(),
	}
}
