package availability

import (
	"sync"
	"time"

	"github.com/m04kA/lab-booking-service/internal/domain"
)

const defaultBufferSize = 16

// Scope ограничивает поток изменений подписчика; пустые поля означают "любой"
type Scope struct {
	PCID   *int64
	Date   *time.Time
	SlotID *domain.SlotID
}

// Matches проверяет, попадает ли изменение в область подписки
func (s Scope) Matches(c domain.Change) bool {
	if s.PCID != nil && *s.PCID != c.PCID {
		return false
	}
	if s.Date != nil && !domain.SameDate(*s.Date, c.Date) {
		return false
	}
	if s.SlotID != nil && *s.SlotID != c.SlotID {
		return false
	}
	return true
}

// Subscription подписка на изменения журнала бронирований
type Subscription struct {
	C <-chan domain.Change

	ch       chan domain.Change
	scope    Scope
	registry *Observers
	once     sync.Once
}

// Close отписывается и закрывает канал C. Повторный вызов безопасен
func (s *Subscription) Close() {
	s.registry.remove(s)
}

// Observers реестр подписчиков на изменения
type Observers struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool

	bufferSize int
	metrics    Metrics
	logger     Logger
}

// NewObservers создает реестр подписчиков. bufferSize <= 0 заменяется значением по умолчанию
func NewObservers(metrics Metrics, logger Logger, bufferSize int) *Observers {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Observers{
		subs:       make(map[*Subscription]struct{}),
		bufferSize: bufferSize,
		metrics:    metrics,
		logger:     logger,
	}
}

// Subscribe регистрирует нового подписчика
func (o *Observers) Subscribe(scope Scope) (*Subscription, error) {
	ch := make(chan domain.Change, o.bufferSize)
	sub := &Subscription{C: ch, ch: ch, scope: scope, registry: o}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, ErrObserverClosed
	}
	o.subs[sub] = struct{}{}
	o.metrics.SetEventSubscribers(len(o.subs))

	return sub, nil
}

// Publish рассылает изменение подписчикам. Никогда не блокируется:
// при заполненном буфере изменение для этого подписчика отбрасывается
func (o *Observers) Publish(change domain.Change) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		return
	}

	for sub := range o.subs {
		if !sub.scope.Matches(change) {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			o.metrics.IncEventsDropped()
			o.logger.Warn("Publish: subscriber buffer full, dropped %s change for booking %d", change.Kind, change.BookingID)
		}
	}
}

// Close закрывает все подписки; последующие Publish игнорируются
func (o *Observers) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	o.closed = true

	for sub := range o.subs {
		sub.once.Do(func() { close(sub.ch) })
		delete(o.subs, sub)
	}
	o.metrics.SetEventSubscribers(0)
}

// Subscribers возвращает число активных подписок
func (o *Observers) Subscribers() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.subs)
}

func (o *Observers) remove(sub *Subscription) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.subs[sub]; ok {
		delete(o.subs, sub)
		o.metrics.SetEventSubscribers(len(o.subs))
	}
	sub.once.Do(func() { close(sub.ch) })
}
