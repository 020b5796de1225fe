package get_free_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/schedule"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Бронирования перечитываются из хранилища при каждом вызове: между запросами
// расписание могло измениться, кэшировать снимок нельзя.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSlots: date=%s, duration=%d",
		req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Заблокированная дата - пустой результат без обхода дня
	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to check blocked date: %v", err)
		return nil, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}
	if blocked {
		uc.logger.Info("GetFreeSlots: date %s is blocked", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            req.Date,
			DurationMinutes: req.DurationMinutes,
			Blocked:         true,
			Slots:           []Slot{},
		}, nil
	}

	// 3. Дата в прошлом - пустой результат, это не ошибка
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Info("GetFreeSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            req.Date,
			DurationMinutes: req.DurationMinutes,
			Slots:           []Slot{},
		}, nil
	}

	// 4. Настройки календаря; при отсутствии строки настроек - дефолты
	config, err := uc.currentConfig(ctx)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get calendar config: %v", err)
		return nil, fmt.Errorf("%w: failed to get calendar config: %v", ErrInternal, err)
	}

	// 5. Переопределение обеда на дату, если задано
	override, err := uc.scheduleRepo.GetLunchOverride(ctx, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("GetFreeSlots: failed to get lunch override: %v", err)
		return nil, fmt.Errorf("%w: failed to get lunch override: %v", ErrInternal, err)
	}

	day, err := resolveDaySchedule(config, override, req.Date)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to resolve day schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve day schedule: %v", ErrInternal, err)
	}

	// 6. Свежий снимок бронирований дня
	bookings, err := uc.bookingRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Обход дня
	candidates := generateFreeSlots(day, req.DurationMinutes, bookings)

	slots := make([]Slot, len(candidates))
	for i, c := range candidates {
		slots[i] = Slot{
			StartTime:       c.StartTime,
			EndTime:         c.EndTime,
			DurationMinutes: c.DurationMinutes,
		}
	}

	uc.logger.Info("GetFreeSlots: generated %d slots for date=%s, duration=%d",
		len(slots), req.Date.Format(domain.DateFormat), req.DurationMinutes)

	return &Response{
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}

// currentConfig получает настройки календаря, подставляя дефолты при их отсутствии
func (uc *UseCase) currentConfig(ctx context.Context) (*domain.CalendarConfig, error) {
	config, err := uc.scheduleRepo.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Info("GetFreeSlots: calendar config not found, using defaults")
			return defaultConfig(), nil
		}
		return nil, err
	}
	return config, nil
}

// defaultConfig настройки по умолчанию из исходного расписания школы
func defaultConfig() *domain.CalendarConfig {
	return &domain.CalendarConfig{
		WorkWindow: domain.TimeWindow{
			Start: domain.DefaultWorkStart,
			End:   domain.DefaultWorkEnd,
		},
		LunchStart:                 domain.DefaultLunchStart,
		LunchDurationMinutes:       domain.DefaultLunchDurationMinutes,
		BufferMinutes:              domain.DefaultBufferMinutes,
		AllowAdminOverrideConflict: true,
	}
}
