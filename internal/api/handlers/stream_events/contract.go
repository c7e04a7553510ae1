package stream_events

import "github.com/m04kA/lab-booking-service/internal/service/availability"

type Subscriber interface {
	Subscribe(scope availability.Scope) (*availability.Subscription, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
