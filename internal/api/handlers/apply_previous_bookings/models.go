package apply_previous_bookings

import (
	"github.com/m04kA/lab-booking-service/internal/domain"
	"github.com/m04kA/lab-booking-service/internal/service/bookings/models"
	"github.com/m04kA/lab-booking-service/internal/usecase/apply_previous_bookings"
)

// ApplyPreviousRequest HTTP request model
type ApplyPreviousRequest struct {
	TargetDate string  `json:"targetDate" validate:"required"`
	SourceDate *string `json:"sourceDate,omitempty"`
}

// ApplyPreviousResponse HTTP response model
type ApplyPreviousResponse struct {
	SourceDate   string                             `json:"sourceDate"`
	TargetDate   string                             `json:"targetDate"`
	AppliedCount int                                `json:"appliedCount"`
	SkippedCount int                                `json:"skippedCount"`
	Conflicts    []apply_previous_bookings.Conflict `json:"conflicts"`
	Bookings     []models.BookingResponse           `json:"bookings"`
}

func toResponse(result *apply_previous_bookings.Response) ApplyPreviousResponse {
	conflicts := result.Conflicts
	if conflicts == nil {
		conflicts = []apply_previous_bookings.Conflict{}
	}

	return ApplyPreviousResponse{
		SourceDate:   result.SourceDate.Format(domain.DateFormat),
		TargetDate:   result.TargetDate.Format(domain.DateFormat),
		AppliedCount: result.AppliedCount,
		SkippedCount: result.SkippedCount,
		Conflicts:    conflicts,
		Bookings:     models.FromDomainBookingList(result.Applied, result.PCNumbers).Bookings,
	}
}
