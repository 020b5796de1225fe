package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

// Service сервис административных операций над бронированиями
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	activityLog  ActivityLog
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	activityLog ActivityLog,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		activityLog:  activityLog,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetDayBookings получает бронирования на дату в порядке времени начала
func (s *Service) GetDayBookings(ctx context.Context, date time.Time) (*models.BookingListResponse, error) {
	s.logger.Info("GetDayBookings: date=%s", date.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetDayBookings: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetWeekBookings получает бронирования за ISO-неделю (админская недельная сводка)
func (s *Service) GetWeekBookings(ctx context.Context, year, isoWeek int) (*models.BookingListResponse, error) {
	s.logger.Info("GetWeekBookings: year=%d, week=%d", year, isoWeek)

	monday, err := mondayOfISOWeek(year, isoWeek)
	if err != nil {
		s.logger.Warn("GetWeekBookings: invalid week: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	sunday := monday.AddDate(0, 0, 6)

	filter := domain.BookingsFilter{
		StartDate: &monday,
		EndDate:   &sunday,
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetWeekBookings: repository error for week=%d/%d: %v", year, isoWeek, err)
		return nil, fmt.Errorf("%w: GetWeekBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Move переносит бронирование на новое время начала.
//
// Перенос - привилегия админа и обычную проверку занятости не проходит:
// попадание на занятый интервал либо возвращается предупреждением
// (AllowAdminOverrideConflict = true), либо отклоняется (false).
func (s *Service) Move(ctx context.Context, bookingID int64, req *models.MoveBookingRequest) (*models.MoveBookingResponse, error) {
	s.logger.Info("Move: booking id=%d to %s by %s", bookingID, req.NewStartTime, req.Actor)

	newStart, err := types.NewTimeStringFromString(req.NewStartTime)
	if err != nil {
		s.logger.Warn("Move: invalid new start time %q: %v", req.NewStartTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidMoveTime, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Move: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Move: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Move - repository error: %v", ErrInternal, err)
	}

	config, err := s.currentConfig(ctx)
	if err != nil {
		s.logger.Error("Move: failed to get calendar config: %v", err)
		return nil, fmt.Errorf("%w: Move - failed to get calendar config: %v", ErrInternal, err)
	}

	// Новое время должно лежать на сетке переноса внутри рабочего окна
	if err := validateMoveTime(config.WorkWindow, newStart, booking.DurationMinutes); err != nil {
		s.logger.Warn("Move: %v", err)
		return nil, err
	}

	newEnd, err := newStart.AddMinutes(booking.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMoveTime, err)
	}

	// Конфликт считаем по остальным бронированиям дня: сама переносимая
	// запись из проверки исключается
	dayBookings, err := s.bookingRepo.ListByDate(ctx, booking.Date)
	if err != nil {
		s.logger.Error("Move: failed to list day bookings: %v", err)
		return nil, fmt.Errorf("%w: Move - failed to list day bookings: %v", ErrInternal, err)
	}

	conflict := false
	for _, other := range dayBookings {
		if other.ID == bookingID {
			continue
		}
		if other.ConflictsWith(newStart, newEnd) {
			conflict = true
			break
		}
	}

	if conflict && !config.AllowAdminOverrideConflict {
		s.logger.Warn("Move: destination %s-%s conflicts and override is disabled", newStart, newEnd)
		return nil, ErrMoveConflict
	}

	if err := s.bookingRepo.UpdateStartTime(ctx, bookingID, newStart.String()); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Move: failed to update start time for id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Move - failed to update start time: %v", ErrInternal, err)
	}

	details := fmt.Sprintf("%s %s -> %s", booking.Date.Format(domain.DateFormat), booking.StartTime, newStart)
	if err := s.activityLog.Log(ctx, req.Actor, "move_booking", details); err != nil {
		s.logger.Error("Move: failed to write activity log: %v", err)
	}

	booking.StartTime = newStart

	if conflict {
		s.logger.Warn("Move: booking id=%d moved to %s with conflict warning", bookingID, newStart)
	} else {
		s.logger.Info("Move: booking id=%d moved to %s", bookingID, newStart)
	}

	return &models.MoveBookingResponse{
		Booking:         *models.FromDomainBooking(booking),
		ConflictWarning: conflict,
	}, nil
}

// UpdateAssignments изменяет назначенных лошадей и заметку бронирования
func (s *Service) UpdateAssignments(ctx context.Context, bookingID int64, req *models.UpdateAssignmentsRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateAssignments: booking id=%d, horses=%v by %s", bookingID, req.Horses, req.Actor)

	for _, h := range req.Horses {
		if !domain.IsRosterHorse(h) {
			s.logger.Warn("UpdateAssignments: unknown horse %q for booking id=%d", h, bookingID)
			return nil, fmt.Errorf("%w: %q", ErrUnknownHorse, h)
		}
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return nil, fmt.Errorf("%w: note is too long", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateAssignments: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateAssignments: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateAssignments - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.UpdateAssignments(ctx, bookingID, req.Horses, req.Note); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateAssignments: failed to update booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateAssignments - failed to update: %v", ErrInternal, err)
	}

	if err := s.activityLog.Log(ctx, req.Actor, "update_assignments", booking.SubjectName); err != nil {
		s.logger.Error("UpdateAssignments: failed to write activity log: %v", err)
	}

	booking.Horses = req.Horses
	booking.Note = req.Note

	s.logger.Info("UpdateAssignments: booking id=%d updated", bookingID)
	return models.FromDomainBooking(booking), nil
}

// Delete удаляет одно бронирование
func (s *Service) Delete(ctx context.Context, bookingID int64, actor string) error {
	s.logger.Info("Delete: booking id=%d by %s", bookingID, actor)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: failed to delete booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - failed to delete: %v", ErrInternal, err)
	}

	details := fmt.Sprintf("%s %s %s", booking.Date.Format(domain.DateFormat), booking.StartTime, booking.SubjectName)
	if err := s.activityLog.Log(ctx, actor, "delete_booking", details); err != nil {
		s.logger.Error("Delete: failed to write activity log: %v", err)
	}

	s.logger.Info("Delete: booking id=%d deleted", bookingID)
	return nil
}

// StopRecurrenceFrom удаляет все занятия серии с датой >= cutoffDate.
// Прошедшие занятия серии остаются нетронутыми.
func (s *Service) StopRecurrenceFrom(ctx context.Context, req *models.StopRecurrenceRequest) (*models.StopRecurrenceResponse, error) {
	s.logger.Info("StopRecurrenceFrom: group=%s from %s by %s",
		req.RepeatGroupID, req.CutoffDate.Format(domain.DateFormat), req.Actor)

	if req.RepeatGroupID == "" {
		return nil, fmt.Errorf("%w: repeatGroupId is required", ErrInvalidInput)
	}
	if req.CutoffDate.IsZero() {
		return nil, fmt.Errorf("%w: cutoffDate is required", ErrInvalidInput)
	}

	exists, err := s.bookingRepo.SeriesExists(ctx, req.RepeatGroupID)
	if err != nil {
		s.logger.Error("StopRecurrenceFrom: repository error for group=%s: %v", req.RepeatGroupID, err)
		return nil, fmt.Errorf("%w: StopRecurrenceFrom - repository error: %v", ErrInternal, err)
	}
	if !exists {
		s.logger.Warn("StopRecurrenceFrom: series group=%s not found", req.RepeatGroupID)
		return nil, ErrSeriesNotFound
	}

	removed, err := s.bookingRepo.DeleteSeriesFrom(ctx, req.RepeatGroupID, req.CutoffDate)
	if err != nil {
		s.logger.Error("StopRecurrenceFrom: failed to delete series group=%s: %v", req.RepeatGroupID, err)
		return nil, fmt.Errorf("%w: StopRecurrenceFrom - failed to delete series: %v", ErrInternal, err)
	}

	details := fmt.Sprintf("group=%s from=%s removed=%d",
		req.RepeatGroupID, req.CutoffDate.Format(domain.DateFormat), removed)
	if err := s.activityLog.Log(ctx, req.Actor, "stop_recurrence", details); err != nil {
		s.logger.Error("StopRecurrenceFrom: failed to write activity log: %v", err)
	}

	s.logger.Info("StopRecurrenceFrom: removed %d occurrence(s) of group=%s", removed, req.RepeatGroupID)
	return &models.StopRecurrenceResponse{RemovedCount: removed}, nil
}

// Вспомогательные методы

// currentConfig получает настройки календаря, подставляя дефолты при их отсутствии
func (s *Service) currentConfig(ctx context.Context) (*domain.CalendarConfig, error) {
	config, err := s.scheduleRepo.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			return &domain.CalendarConfig{
				WorkWindow: domain.TimeWindow{
					Start: domain.DefaultWorkStart,
					End:   domain.DefaultWorkEnd,
				},
				LunchStart:                 domain.DefaultLunchStart,
				LunchDurationMinutes:       domain.DefaultLunchDurationMinutes,
				BufferMinutes:              domain.DefaultBufferMinutes,
				AllowAdminOverrideConflict: true,
			}, nil
		}
		return nil, err
	}
	return config, nil
}

// validateMoveTime проверяет, что новое время начала лежит на сетке переноса
// (шаг domain.MoveGridStepMinutes от открытия) и занятие помещается до закрытия
func validateMoveTime(workWindow domain.TimeWindow, newStart types.TimeString, durationMinutes int) error {
	if newStart.IsBefore(workWindow.Start) {
		return fmt.Errorf("%w: %s is before opening %s", ErrInvalidMoveTime, newStart, workWindow.Start)
	}

	end, err := newStart.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMoveTime, err)
	}
	if end.IsAfter(workWindow.End) {
		return fmt.Errorf("%w: %s ends after closing %s", ErrInvalidMoveTime, end, workWindow.End)
	}

	startMin, err := newStart.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMoveTime, err)
	}
	openMin, err := workWindow.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMoveTime, err)
	}
	if (startMin-openMin)%domain.MoveGridStepMinutes != 0 {
		return fmt.Errorf("%w: %s is not on the %d-minute grid", ErrInvalidMoveTime, newStart, domain.MoveGridStepMinutes)
	}

	return nil
}

// mondayOfISOWeek возвращает понедельник ISO-недели
func mondayOfISOWeek(year, week int) (time.Time, error) {
	if week < 1 || week > 53 {
		return time.Time{}, fmt.Errorf("week %d is out of range", week)
	}

	// 4 января всегда лежит в первой ISO-неделе года
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	firstMonday := jan4.AddDate(0, 0, 1-weekday)

	return firstMonday.AddDate(0, 0, (week-1)*7), nil
}
