package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/schedule"
)

// UseCase use case для создания бронирования (разового или еженедельной серии)
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	activityLog  ActivityLog
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	activityLog ActivityLog,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		activityLog:  activityLog,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Проверка занятости слота и дубликата имени выполняется внутри сериализуемой
// транзакции по свежему списку бронирований дня, а не по снимку, который видел
// клиент при выборе слота: между показом слотов и отправкой формы другой клиент
// мог успеть записаться. Все занятия еженедельной серии записываются атомарно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: subject=%q, date=%s, time=%s, duration=%d, party=%d, repeat=%v",
		req.SubjectName, req.Date.Format(domain.DateFormat), req.StartTime,
		req.DurationMinutes, req.PartySize, req.Repeat)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что дата не в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Проверяем, что дата не заблокирована
	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check blocked date: %v", err)
		return nil, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}
	if blocked {
		uc.logger.Warn("CreateBooking: date %s is blocked", req.Date.Format(domain.DateFormat))
		return nil, ErrDateBlocked
	}

	candidateEnd, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid time slot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	// Переменная для хранения результата
	var created []*domain.Booking
	var repeatGroupID string

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Настройки календаря; при отсутствии строки настроек - дефолты
		config, err := uc.scheduleRepo.GetConfig(txCtx)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Error("CreateBooking: failed to get calendar config: %v", err)
				return fmt.Errorf("%w: failed to get calendar config: %v", ErrInternal, err)
			}
			config = &domain.CalendarConfig{
				WorkWindow: domain.TimeWindow{
					Start: domain.DefaultWorkStart,
					End:   domain.DefaultWorkEnd,
				},
				LunchStart:                 domain.DefaultLunchStart,
				LunchDurationMinutes:       domain.DefaultLunchDurationMinutes,
				BufferMinutes:              domain.DefaultBufferMinutes,
				AllowAdminOverrideConflict: true,
			}
			uc.logger.Info("CreateBooking: calendar config not found, using defaults")
		}

		// 5.2. Слот должен помещаться в рабочее окно
		if err := validateSlotFits(config.WorkWindow, req.StartTime, req.DurationMinutes); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 5.3. Свежий список бронирований дня с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.4. Дубликат по имени: пересечение или примыкание на то же имя
		if hasDuplicateName(req.SubjectName, req.StartTime, candidateEnd, bookings) {
			uc.logger.Warn("CreateBooking: duplicate booking for subject=%q on %s",
				req.SubjectName, req.Date.Format(domain.DateFormat))
			return ErrDuplicateName
		}

		// 5.5. Повторная проверка занятости слота в момент коммита
		if overlapsAny(req.StartTime, candidateEnd, bookings) {
			uc.logger.Warn("CreateBooking: slot %s-%s on %s is already taken",
				req.StartTime, candidateEnd, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 5.6. Разворачиваем еженедельную серию. Занятость и дубликат
		// проверяются только по запрошенной дате: последующие занятия серии
		// записываются без проверки своих недель
		dates := expandRecurringDates(req.Date, config.RepeatHorizonWeeks)
		if !req.Repeat {
			dates = dates[:1]
		} else {
			repeatGroupID = uuid.NewString()
		}

		rows := make([]*domain.Booking, 0, len(dates))
		for _, d := range dates {
			rows = append(rows, &domain.Booking{
				Date:            d,
				SubjectName:     req.SubjectName,
				Horses:          []string{}, // Лошадей назначает админ позже, по каждому занятию отдельно
				StartTime:       req.StartTime,
				DurationMinutes: req.DurationMinutes,
				PartySize:       req.PartySize,
				IsRecurring:     req.Repeat,
				RepeatGroupID:   repeatGroupID,
				Note:            req.Note,
			})
		}

		// 5.7. Сохраняем все строки серии одной транзакцией
		created, err = uc.bookingRepo.CreateSeries(txCtx, rows)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create bookings: %v", err)
			return fmt.Errorf("%w: failed to create bookings: %v", ErrInternal, err)
		}

		// 5.8. Журналируем действие
		details := fmt.Sprintf("%s %s-%s x%d", req.Date.Format(domain.DateFormat),
			req.StartTime, candidateEnd, len(created))
		if err := uc.activityLog.Log(txCtx, req.SubjectName, "create_booking", details); err != nil {
			uc.logger.Error("CreateBooking: failed to write activity log: %v", err)
			return fmt.Errorf("%w: failed to write activity log: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created %d booking(s) for subject=%q, group=%q",
		len(created), req.SubjectName, repeatGroupID)

	resp := &Response{
		RepeatGroupID: repeatGroupID,
		Bookings:      make([]Booking, len(created)),
	}
	for i, b := range created {
		resp.Bookings[i] = Booking{
			ID:              b.ID,
			Date:            b.Date,
			SubjectName:     b.SubjectName,
			StartTime:       b.StartTime,
			DurationMinutes: b.DurationMinutes,
			PartySize:       b.PartySize,
			IsRecurring:     b.IsRecurring,
			RepeatGroupID:   b.RepeatGroupID,
			Note:            b.Note,
			CreatedAt:       b.CreatedAt,
		}
	}

	return resp, nil
}
