package clear_booked_slots

import "github.com/m04kA/lab-booking-service/internal/domain"

// Request запрос на массовую очистку
type Request struct {
	Date         string  // YYYY-MM-DD
	TimeSlot     string  // ID, подпись слота или "all"
	PCIDs        []int64 // пустой список означает все ПК
	ConfirmClear bool
	Actor        string
}

// ClearError запись, которую не удалось удалить
type ClearError struct {
	BookingID int64         `json:"bookingId"`
	PCID      int64         `json:"pc"`
	TimeSlot  domain.SlotID `json:"timeSlot"`
	Reason    string        `json:"reason"`
	Message   string        `json:"message"`
}

// Response результат очистки
// ClearedCount + len(Errors) всегда равно MatchedCount
type Response struct {
	MatchedCount int          `json:"matchedCount"`
	ClearedCount int          `json:"clearedCount"`
	Errors       []ClearError `json:"errors"`
}
