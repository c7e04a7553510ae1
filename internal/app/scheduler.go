package app

import (
	"context"
	"sync"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingCompleter переводит подтвержденные бронирования прошедших слотов в completed
type BookingCompleter interface {
	CompleteElapsed(ctx context.Context, now time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	completer    BookingCompleter
	location     *time.Location
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик.
// Время слотов сравнивается в часовом поясе лаборатории location
func NewScheduler(completer BookingCompleter, location *time.Location, interval time.Duration, logger Logger) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		completer:    completer,
		location:     location,
		interval:     interval,
		timeProvider: RealTimeProvider{},
		logger:       logger,
		stopChan:     make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// WithTimeProvider подменяет источник времени
func (s *Scheduler) WithTimeProvider(tp TimeProvider) *Scheduler {
	s.timeProvider = tp
	return s
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler (completion interval=%s, tz=%s)", s.interval, s.location)
	go s.runCompletionTask(ctx)
}

// Stop останавливает фоновые задачи и дожидается их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) runCompletionTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.completeElapsed(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.completeElapsed(ctx)
		case <-s.stopChan:
			s.logger.Info("Completion task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Completion task cancelled")
			return
		}
	}
}

// RunOnce выполняет один проход завершения бронирований
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	return s.completer.CompleteElapsed(ctx, s.timeProvider.Now().In(s.location))
}

func (s *Scheduler) completeElapsed(ctx context.Context) {
	count, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("Failed to complete elapsed bookings: %v", err)
		return
	}
	if count > 0 {
		s.logger.Info("Completed %d elapsed bookings", count)
	}
}
