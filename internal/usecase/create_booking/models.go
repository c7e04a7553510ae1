package create_booking

import "github.com/m04kA/lab-booking-service/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	PCID     int64  // ID ПК
	Date     string // Дата в формате YYYY-MM-DD
	TimeSlot string // ID или подпись слота

	BookedFor string  // Свободный текст (обязателен, если не задан ни один из student/teacher/batch)
	Student   *string // Ссылка на студента
	Teacher   *string // Ссылка на преподавателя
	Batch     *string // Ссылка на группу

	TeacherName string
	Purpose     string
	Notes       *string
	Priority    string // normal по умолчанию

	CreatedBy      string  // Идентификатор автора (X-User-ID)
	IdempotencyKey *string // Ключ идемпотентности (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking  *domain.Booking
	PCNumber string
	Replayed bool // true, если возвращено бронирование первого запроса с тем же ключом
}
