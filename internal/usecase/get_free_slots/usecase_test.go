package get_free_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/schedule"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	config   *domain.CalendarConfig
	override *domain.LunchOverride
	blocked  bool
}

func (f *fakeScheduleRepo) GetConfig(ctx context.Context) (*domain.CalendarConfig, error) {
	if f.config == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return f.config, nil
}

func (f *fakeScheduleRepo) GetLunchOverride(ctx context.Context, date time.Time) (*domain.LunchOverride, error) {
	if f.override == nil {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return f.override, nil
}

func (f *fakeScheduleRepo) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	return f.blocked, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase(bookings *fakeBookingRepo, schedule *fakeScheduleRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookings, schedule, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute_UsesDefaultsWhenConfigMissing(t *testing.T) {
	now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, Slot{StartTime: "09:00", EndTime: "10:00", DurationMinutes: 60}, resp.Slots[0])
}

func TestExecute_BlockedDateShortCircuits(t *testing.T) {
	now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{blocked: true}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateYieldsEmptyResult(t *testing.T) {
	now := time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.False(t, resp.Blocked)
	assert.Empty(t, resp.Slots)
}

func TestExecute_RejectsUnknownDuration(t *testing.T) {
	now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
	})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_AppliesLunchOverride(t *testing.T) {
	now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	schedule := &fakeScheduleRepo{
		override: &domain.LunchOverride{
			Date:                 time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			LunchStart:           "10:00",
			LunchDurationMinutes: 60,
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, schedule, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	// Курсор 10:10 попадает в переопределённое окно [10:00, 11:00)
	// и сдвигается на час вместо стандартного обеда в полдень
	assert.Equal(t, Slot{StartTime: "09:00", EndTime: "10:00", DurationMinutes: 60}, resp.Slots[0])
	assert.Equal(t, Slot{StartTime: "11:10", EndTime: "12:10", DurationMinutes: 60}, resp.Slots[1])
}
