package create_booking

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
	existing []*domain.Booking
	created  []*domain.Booking
}

func (f *fakeBookingRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	return f.existing, nil
}

func (f *fakeBookingRepo) CreateSeries(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, b := range bookings {
		b.ID = int64(i + 1)
		b.CreatedAt = now
		b.UpdatedAt = now
	}
	f.created = bookings
	return bookings, nil
}

type fakeScheduleRepo struct {
	config  *domain.CalendarConfig
	blocked bool
}

func (f *fakeScheduleRepo) GetConfig(ctx context.Context) (*domain.CalendarConfig, error) {
	if f.config == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return f.config, nil
}

func (f *fakeScheduleRepo) GetLunchOverride(ctx context.Context, date time.Time) (*domain.LunchOverride, error) {
	return nil, scheduleRepo.ErrOverrideNotFound
}

func (f *fakeScheduleRepo) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	return f.blocked, nil
}

type fakeActivityLog struct {
	entries []string
}

func (f *fakeActivityLog) Log(ctx context.Context, actor, action, details string) error {
	f.entries = append(f.entries, action)
	return nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase(bookings *fakeBookingRepo, schedule *fakeScheduleRepo, activity *fakeActivityLog) *UseCase {
	uc := NewUseCase(bookings, schedule, activity, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)}
	return uc
}

func singleRequest() *Request {
	return &Request{
		SubjectName:     "Anna",
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		PartySize:       2,
	}
}

func TestExecute_CreatesSingleBooking(t *testing.T) {
	bookings := &fakeBookingRepo{}
	activity := &fakeActivityLog{}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, activity)

	resp, err := uc.Execute(context.Background(), singleRequest())
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Empty(t, resp.RepeatGroupID)
	assert.False(t, resp.Bookings[0].IsRecurring)
	assert.Equal(t, "Anna", resp.Bookings[0].SubjectName)
	assert.Contains(t, activity.entries, "create_booking")
}

func TestExecute_ExpandsWeeklySeries(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, &fakeActivityLog{})

	// Первый вторник октября: серия покрывает все вторники до конца месяца
	req := singleRequest()
	req.Date = time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	req.Repeat = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 4)
	require.NotEmpty(t, resp.RepeatGroupID)
	for i, b := range resp.Bookings {
		assert.True(t, b.IsRecurring)
		assert.Equal(t, resp.RepeatGroupID, b.RepeatGroupID)
		assert.Equal(t, req.Date.AddDate(0, 0, 7*i), b.Date)
	}
}

func TestExecute_SeriesRespectsExplicitHorizon(t *testing.T) {
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{
		config: &domain.CalendarConfig{
			WorkWindow:           domain.TimeWindow{Start: "09:00", End: "20:30"},
			LunchStart:           "12:00",
			LunchDurationMinutes: 45,
			BufferMinutes:        10,
			RepeatHorizonWeeks:   8,
		},
	}
	uc := newTestUseCase(bookings, schedule, &fakeActivityLog{})

	req := singleRequest()
	req.Date = time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)
	req.Repeat = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 8)
}

func TestExecute_RejectsDuplicateName(t *testing.T) {
	bookings := &fakeBookingRepo{
		existing: []*domain.Booking{
			{SubjectName: "Anna", StartTime: "09:00", DurationMinutes: 60},
		},
	}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, &fakeActivityLog{})

	// Примыкание впритык на то же имя - дубликат
	req := singleRequest()
	req.StartTime = "10:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Nil(t, bookings.created)
}

func TestExecute_RejectsTakenSlot(t *testing.T) {
	bookings := &fakeBookingRepo{
		existing: []*domain.Booking{
			{SubjectName: "Béla", StartTime: "10:30", DurationMinutes: 60},
		},
	}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, &fakeActivityLog{})

	_, err := uc.Execute(context.Background(), singleRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, bookings.created)
}

func TestExecute_AllowsTouchingDifferentName(t *testing.T) {
	bookings := &fakeBookingRepo{
		existing: []*domain.Booking{
			{SubjectName: "Béla", StartTime: "09:00", DurationMinutes: 60},
		},
	}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, &fakeActivityLog{})

	resp, err := uc.Execute(context.Background(), singleRequest())
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestExecute_RejectsUnpaddedStartTime(t *testing.T) {
	// Без ведущего нуля "9:45" лексикографически больше "10:30", и проверка
	// пересечений пропустила бы реальный конфликт - такие значения
	// отсекаются на валидации
	bookings := &fakeBookingRepo{
		existing: []*domain.Booking{
			{SubjectName: "Béla", StartTime: "09:30", DurationMinutes: 60},
		},
	}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{}, &fakeActivityLog{})

	req := singleRequest()
	req.StartTime = "9:45"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, bookings.created)
}

func TestExecute_RejectsBlockedDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{blocked: true}, &fakeActivityLog{})

	_, err := uc.Execute(context.Background(), singleRequest())
	assert.ErrorIs(t, err, ErrDateBlocked)
}

func TestExecute_RejectsPastDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, &fakeActivityLog{})

	req := singleRequest()
	req.Date = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_RejectsSlotOutsideWorkWindow(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, &fakeActivityLog{})

	req := singleRequest()
	req.StartTime = "20:00" // 20:00 + 60 минут выходит за 20:30

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}
