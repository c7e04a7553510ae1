package apply_previous_bookings

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

// resolveDates разбирает целевую и исходную даты
func resolveDates(req *Request) (source, target time.Time, err error) {
	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		return source, target, ErrMissingActor
	}
	if utf8.RuneCountInString(actor) > domain.MaxActorLength {
		return source, target, domain.ErrActorTooLong
	}

	target, err = domain.ParseDate(req.TargetDate)
	if err != nil {
		return source, target, err
	}

	source = previousDay(target)
	if req.SourceDate != nil && strings.TrimSpace(*req.SourceDate) != "" {
		source, err = domain.ParseDate(*req.SourceDate)
		if err != nil {
			return source, target, err
		}
	}

	if domain.SameDate(source, target) {
		return source, target, ErrSameDate
	}
	return source, target, nil
}

func previousDay(date time.Time) time.Time {
	return domain.DateOf(date).AddDate(0, 0, -1)
}
