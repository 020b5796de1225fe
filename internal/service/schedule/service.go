package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-RidingSchoolService/internal/service/schedule/models"
	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

// Service сервис настроек календаря: рабочее окно, обед, буфер,
// переопределения обеда по датам и заблокированные даты
type Service struct {
	scheduleRepo ScheduleRepository
	activityLog  ActivityLog
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек календаря
func NewService(
	scheduleRepo ScheduleRepository,
	activityLog ActivityLog,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		activityLog:  activityLog,
		logger:       logger,
	}
}

// GetConfig получает текущие настройки календаря.
// При отсутствии строки настроек возвращаются дефолты школы.
func (s *Service) GetConfig(ctx context.Context) (*models.ConfigResponse, error) {
	config, err := s.currentConfig(ctx)
	if err != nil {
		s.logger.Error("GetConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// UpdateConfig обновляет настройки календаря.
// Поддерживает частичное обновление - обновляются только указанные поля.
// Новые настройки валидируются целиком до сохранения: сохраненная строка
// настроек никогда не нарушает инварианты календаря.
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating calendar config by %s", req.Actor)

	// 1. Валидация строковых времен до применения
	for name, v := range map[string]*string{
		"workStart":  req.WorkStart,
		"workEnd":    req.WorkEnd,
		"lunchStart": req.LunchStart,
	} {
		if v == nil {
			continue
		}
		if err := types.TimeString(*v).Validate(); err != nil {
			s.logger.Warn("UpdateConfig: invalid %s %q: %v", name, *v, err)
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
		}
	}

	// 2. Текущие настройки (или дефолты) как база для частичного обновления
	config, err := s.currentConfig(ctx)
	if err != nil {
		s.logger.Error("UpdateConfig: failed to get current config: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfig - failed to get current config: %v", ErrInternal, err)
	}

	// 3. Применяем обновления и валидируем результат целиком
	req.ApplyToConfig(config)
	if err := config.Validate(); err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// 4. Сохраняем
	if err := s.scheduleRepo.SaveConfig(ctx, config); err != nil {
		s.logger.Error("UpdateConfig: failed to save config: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfig - failed to save config: %v", ErrInternal, err)
	}

	details := fmt.Sprintf("work=%s-%s lunch=%s+%dm buffer=%dm",
		config.WorkWindow.Start, config.WorkWindow.End,
		config.LunchStart, config.LunchDurationMinutes, config.BufferMinutes)
	if err := s.activityLog.Log(ctx, req.Actor, "update_calendar_config", details); err != nil {
		s.logger.Error("UpdateConfig: failed to write activity log: %v", err)
	}

	s.logger.Info("UpdateConfig: calendar config updated by %s", req.Actor)
	return models.FromDomainConfig(config), nil
}

// SetLunchOverride устанавливает переопределение обеда на дату
func (s *Service) SetLunchOverride(ctx context.Context, req *models.SetLunchOverrideRequest) error {
	s.logger.Info("SetLunchOverride: date=%s, lunch=%s+%dm by %s",
		req.Date.Format(domain.DateFormat), req.LunchStart, req.LunchDurationMinutes, req.Actor)

	lunchStart := types.TimeString(req.LunchStart)
	if err := lunchStart.Validate(); err != nil {
		s.logger.Warn("SetLunchOverride: invalid lunch start %q: %v", req.LunchStart, err)
		return fmt.Errorf("%w: lunchStart: %v", ErrInvalidInput, err)
	}
	if req.LunchDurationMinutes < 0 || req.LunchDurationMinutes > domain.MaxLunchDurationMinutes {
		return fmt.Errorf("%w: lunchDurationMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxLunchDurationMinutes)
	}

	// Переопределенный обед должен помещаться в рабочее окно
	config, err := s.currentConfig(ctx)
	if err != nil {
		s.logger.Error("SetLunchOverride: failed to get config: %v", err)
		return fmt.Errorf("%w: SetLunchOverride - failed to get config: %v", ErrInternal, err)
	}
	if req.LunchDurationMinutes > 0 {
		lunchEnd, err := lunchStart.AddMinutes(req.LunchDurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if lunchStart.IsBefore(config.WorkWindow.Start) || lunchEnd.IsAfter(config.WorkWindow.End) {
			s.logger.Warn("SetLunchOverride: lunch %s-%s is outside working hours", lunchStart, lunchEnd)
			return fmt.Errorf("%w: lunch window is outside working hours", ErrInvalidInput)
		}
	}

	override := &domain.LunchOverride{
		Date:                 req.Date,
		LunchStart:           lunchStart,
		LunchDurationMinutes: req.LunchDurationMinutes,
	}
	if err := s.scheduleRepo.SaveLunchOverride(ctx, override); err != nil {
		s.logger.Error("SetLunchOverride: failed to save override: %v", err)
		return fmt.Errorf("%w: SetLunchOverride - failed to save override: %v", ErrInternal, err)
	}

	details := fmt.Sprintf("%s lunch=%s+%dm", req.Date.Format(domain.DateFormat),
		lunchStart, req.LunchDurationMinutes)
	if err := s.activityLog.Log(ctx, req.Actor, "set_lunch_override", details); err != nil {
		s.logger.Error("SetLunchOverride: failed to write activity log: %v", err)
	}

	return nil
}

// DeleteLunchOverride удаляет переопределение обеда на дату
func (s *Service) DeleteLunchOverride(ctx context.Context, date time.Time, actor string) error {
	s.logger.Info("DeleteLunchOverride: date=%s by %s", date.Format(domain.DateFormat), actor)

	if err := s.scheduleRepo.DeleteLunchOverride(ctx, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteLunchOverride: override for %s not found", date.Format(domain.DateFormat))
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteLunchOverride: repository error: %v", err)
		return fmt.Errorf("%w: DeleteLunchOverride - repository error: %v", ErrInternal, err)
	}

	if err := s.activityLog.Log(ctx, actor, "delete_lunch_override", date.Format(domain.DateFormat)); err != nil {
		s.logger.Error("DeleteLunchOverride: failed to write activity log: %v", err)
	}

	return nil
}

// ListBlockedDates получает заблокированные даты за период
func (s *Service) ListBlockedDates(ctx context.Context, from, to time.Time) (*models.BlockedDateListResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end is before its start", ErrInvalidInput)
	}

	blocked, err := s.scheduleRepo.ListBlockedDates(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDates(blocked), nil
}

// BlockDate блокирует дату для бронирований (праздник, закрытый день)
func (s *Service) BlockDate(ctx context.Context, req *models.BlockDateRequest) error {
	s.logger.Info("BlockDate: date=%s, reason=%q by %s",
		req.Date.Format(domain.DateFormat), req.Reason, req.Actor)

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	blocked := &domain.BlockedDate{Date: req.Date, Reason: req.Reason}
	if err := s.scheduleRepo.AddBlockedDate(ctx, blocked); err != nil {
		s.logger.Error("BlockDate: repository error: %v", err)
		return fmt.Errorf("%w: BlockDate - repository error: %v", ErrInternal, err)
	}

	details := req.Date.Format(domain.DateFormat)
	if req.Reason != "" {
		details = fmt.Sprintf("%s (%s)", details, req.Reason)
	}
	if err := s.activityLog.Log(ctx, req.Actor, "block_date", details); err != nil {
		s.logger.Error("BlockDate: failed to write activity log: %v", err)
	}

	return nil
}

// UnblockDate снимает блокировку с даты
func (s *Service) UnblockDate(ctx context.Context, date time.Time, actor string) error {
	s.logger.Info("UnblockDate: date=%s by %s", date.Format(domain.DateFormat), actor)

	if err := s.scheduleRepo.RemoveBlockedDate(ctx, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("UnblockDate: blocked date %s not found", date.Format(domain.DateFormat))
			return ErrBlockedDateNotFound
		}
		s.logger.Error("UnblockDate: repository error: %v", err)
		return fmt.Errorf("%w: UnblockDate - repository error: %v", ErrInternal, err)
	}

	if err := s.activityLog.Log(ctx, actor, "unblock_date", date.Format(domain.DateFormat)); err != nil {
		s.logger.Error("UnblockDate: failed to write activity log: %v", err)
	}

	return nil
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
