package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RidingSchoolService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-RidingSchoolService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-RidingSchoolService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	byID         map[int64]*domain.Booking
	byDate       []*domain.Booking
	seriesGroups map[string]int64 // repeatGroupID -> сколько строк удалит DeleteSeriesFrom

	movedTo       string
	deletedID     int64
	updatedHorses []string
	deletedSeries string
	deletedCutoff time.Time
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	return f.byDate, nil
}

func (f *fakeBookingRepo) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.byDate, nil
}

func (f *fakeBookingRepo) UpdateStartTime(ctx context.Context, id int64, startTime string) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.movedTo = startTime
	return nil
}

func (f *fakeBookingRepo) UpdateAssignments(ctx context.Context, id int64, horses []string, note *string) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedHorses = horses
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.deletedID = id
	return nil
}

func (f *fakeBookingRepo) DeleteSeriesFrom(ctx context.Context, repeatGroupID string, cutoff time.Time) (int64, error) {
	f.deletedSeries = repeatGroupID
	f.deletedCutoff = cutoff
	return f.seriesGroups[repeatGroupID], nil
}

func (f *fakeBookingRepo) SeriesExists(ctx context.Context, repeatGroupID string) (bool, error) {
	_, ok := f.seriesGroups[repeatGroupID]
	return ok, nil
}

type fakeScheduleRepo struct {
	config *domain.CalendarConfig
}

func (f *fakeScheduleRepo) GetConfig(ctx context.Context) (*domain.CalendarConfig, error) {
	if f.config == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeActivityLog struct {
	actions []string
}

func (f *fakeActivityLog) Log(ctx context.Context, actor, action, details string) error {
	f.actions = append(f.actions, action)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func configWithOverride(allow bool) *domain.CalendarConfig {
	return &domain.CalendarConfig{
		WorkWindow:                 domain.TimeWindow{Start: "09:00", End: "20:30"},
		LunchStart:                 "12:00",
		LunchDurationMinutes:       45,
		BufferMinutes:              10,
		AllowAdminOverrideConflict: allow,
	}
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		SubjectName:     "Anna",
		StartTime:       "10:00",
		DurationMinutes: 60,
		PartySize:       1,
	}
}

func newTestService(repo *fakeBookingRepo, schedule *fakeScheduleRepo, activity *fakeActivityLog) *Service {
	return NewService(repo, schedule, activity, nopLogger{})
}

func TestMove_Success(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	activity := &fakeActivityLog{}
	svc := newTestService(repo, &fakeScheduleRepo{config: configWithOverride(true)}, activity)

	resp, err := svc.Move(context.Background(), 1, &models.MoveBookingRequest{
		Actor:        "admin",
		NewStartTime: "14:05",
	})
	require.NoError(t, err)

	assert.Equal(t, "14:05", repo.movedTo)
	assert.False(t, resp.ConflictWarning)
	assert.Equal(t, "14:05", resp.Booking.StartTime)
	assert.Contains(t, activity.actions, "move_booking")
}

func TestMove_ConflictWithOverrideAllowed(t *testing.T) {
	moved := testBooking()
	other := &domain.Booking{ID: 2, StartTime: "14:00", DurationMinutes: 60}
	repo := &fakeBookingRepo{
		byID:   map[int64]*domain.Booking{1: moved},
		byDate: []*domain.Booking{moved, other},
	}
	svc := newTestService(repo, &fakeScheduleRepo{config: configWithOverride(true)}, &fakeActivityLog{})

	resp, err := svc.Move(context.Background(), 1, &models.MoveBookingRequest{
		Actor:        "admin",
		NewStartTime: "14:30",
	})
	require.NoError(t, err)

	// Перенос состоялся, но с предупреждением о пересечении
	assert.True(t, resp.ConflictWarning)
	assert.Equal(t, "14:30", repo.movedTo)
}

func TestMove_ConflictWithOverrideDisabled(t *testing.T) {
	moved := testBooking()
	other := &domain.Booking{ID: 2, StartTime: "14:00", DurationMinutes: 60}
	repo := &fakeBookingRepo{
		byID:   map[int64]*domain.Booking{1: moved},
		byDate: []*domain.Booking{moved, other},
	}
	svc := newTestService(repo, &fakeScheduleRepo{config: configWithOverride(false)}, &fakeActivityLog{})

	_, err := svc.Move(context.Background(), 1, &models.MoveBookingRequest{
		Actor:        "admin",
		NewStartTime: "14:30",
	})
	assert.ErrorIs(t, err, ErrMoveConflict)
	assert.Empty(t, repo.movedTo)
}

func TestMove_IgnoresOwnInterval(t *testing.T) {
	moved := testBooking()
	repo := &fakeBookingRepo{
		byID:   map[int64]*domain.Booking{1: moved},
		byDate: []*domain.Booking{moved},
	}
	svc := newTestService(repo, &fakeScheduleRepo{config: configWithOverride(false)}, &fakeActivityLog{})

	// Сдвиг на 5 минут пересекается со старым интервалом самой записи,
	// но собственный интервал из проверки исключается
	resp, err := svc.Move(context.Background(), 1, &models.MoveBookingRequest{
		Actor:        "admin",
		NewStartTime: "10:05",
	})
	require.NoError(t, err)
	assert.False(t, resp.ConflictWarning)
}

func TestMove_OffGridTime(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, &fakeScheduleRepo{config: configWithOverride(true)}, &fakeActivityLog{})

	_, err := svc.Move(context.Background(), 1, &models.MoveBookingRequest{
		Actor:        "admin",
		NewStartTime: "14:03",
	})
	assert.ErrorIs(t, err, ErrInvalidMoveTime)
}

func TestMove_OutsideWorkWindow(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, &fakeScheduleRepo{config: configWithOverride(true)}, &fakeActivityLog{})

	// 20:00 + 60 минут выходит за 20:30
	_, err := svc.Move(context.Background(), 1, &models.MoveBookingRequest{
		Actor:        "admin",
		NewStartTime: "20:00",
	})
	assert.ErrorIs(t, err, ErrInvalidMoveTime)

	_, err = svc.Move(context.Background(), 1, &models.MoveBookingRequest{
		Actor:        "admin",
		NewStartTime: "08:55",
	})
	assert.ErrorIs(t, err, ErrInvalidMoveTime)
}

func TestMove_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{}}
	svc := newTestService(repo, &fakeScheduleRepo{config: configWithOverride(true)}, &fakeActivityLog{})

	_, err := svc.Move(context.Background(), 99, &models.MoveBookingRequest{
		Actor:        "admin",
		NewStartTime: "14:00",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateAssignments(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	activity := &fakeActivityLog{}
	svc := newTestService(repo, &fakeScheduleRepo{}, activity)

	resp, err := svc.UpdateAssignments(context.Background(), 1, &models.UpdateAssignmentsRequest{
		Actor:  "admin",
		Horses: []string{"Eni", "Vera"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Eni", "Vera"}, repo.updatedHorses)
	assert.Equal(t, []string{"Eni", "Vera"}, resp.Horses)
	assert.Contains(t, activity.actions, "update_assignments")
}

func TestUpdateAssignments_UnknownHorse(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, &fakeScheduleRepo{}, &fakeActivityLog{})

	_, err := svc.UpdateAssignments(context.Background(), 1, &models.UpdateAssignmentsRequest{
		Actor:  "admin",
		Horses: []string{"Eni", "Rocinante"},
	})
	assert.ErrorIs(t, err, ErrUnknownHorse)
	assert.Nil(t, repo.updatedHorses)
}

func TestDelete(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	activity := &fakeActivityLog{}
	svc := newTestService(repo, &fakeScheduleRepo{}, activity)

	require.NoError(t, svc.Delete(context.Background(), 1, "admin"))
	assert.Equal(t, int64(1), repo.deletedID)
	assert.Contains(t, activity.actions, "delete_booking")

	assert.ErrorIs(t, svc.Delete(context.Background(), 99, "admin"), ErrBookingNotFound)
}

func TestStopRecurrenceFrom(t *testing.T) {
	repo := &fakeBookingRepo{seriesGroups: map[string]int64{"group-1": 3}}
	activity := &fakeActivityLog{}
	svc := newTestService(repo, &fakeScheduleRepo{}, activity)

	cutoff := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)
	resp, err := svc.StopRecurrenceFrom(context.Background(), &models.StopRecurrenceRequest{
		Actor:         "admin",
		RepeatGroupID: "group-1",
		CutoffDate:    cutoff,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.RemovedCount)
	assert.Equal(t, "group-1", repo.deletedSeries)
	assert.Equal(t, cutoff, repo.deletedCutoff)
	assert.Contains(t, activity.actions, "stop_recurrence")
}

func TestStopRecurrenceFrom_SeriesNotFound(t *testing.T) {
	repo := &fakeBookingRepo{seriesGroups: map[string]int64{}}
	svc := newTestService(repo, &fakeScheduleRepo{}, &fakeActivityLog{})

	_, err := svc.StopRecurrenceFrom(context.Background(), &models.StopRecurrenceRequest{
		Actor:         "admin",
		RepeatGroupID: "missing",
		CutoffDate:    time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrSeriesNotFound)
}

func TestGetWeekBookings_InvalidWeek(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeScheduleRepo{}, &fakeActivityLog{})

	_, err := svc.GetWeekBookings(context.Background(), 2025, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetWeekBookings(context.Background(), 2025, 54)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMondayOfISOWeek(t *testing.T) {
	// ISO-неделя 42 в 2025 году начинается 13 октября
	monday, err := mondayOfISOWeek(2025, 42)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), monday)
	assert.Equal(t, time.Monday, monday.Weekday())

	year, week := monday.ISOWeek()
	assert.Equal(t, 2025, year)
	assert.Equal(t, 42, week)

	// Первая неделя года, начинающегося в четверг (2026)
	monday, err = mondayOfISOWeek(2026, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, monday.Weekday())
	year, week = monday.ISOWeek()
	assert.Equal(t, 2026, year)
	assert.Equal(t, 1, week)
}
