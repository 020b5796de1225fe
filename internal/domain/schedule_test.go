package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

func validConfig() CalendarConfig {
	return CalendarConfig{
		WorkWindow:           TimeWindow{Start: "09:00", End: "20:30"},
		LunchStart:           "12:00",
		LunchDurationMinutes: 45,
		BufferMinutes:        10,
	}
}

func TestTimeWindow_Validate(t *testing.T) {
	assert.NoError(t, TimeWindow{Start: "09:00", End: "20:30"}.Validate())
	assert.ErrorIs(t, TimeWindow{Start: "20:30", End: "09:00"}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, TimeWindow{Start: "09:00", End: "09:00"}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, TimeWindow{Start: "bad", End: "20:30"}.Validate(), ErrInvalidConfig)
}

func TestTimeWindow_Contains(t *testing.T) {
	w := TimeWindow{Start: "12:00", End: "12:45"}
	assert.True(t, w.Contains("12:00"))
	assert.True(t, w.Contains("12:30"))
	assert.False(t, w.Contains("12:45")) // полуоткрытый интервал
	assert.False(t, w.Contains("11:59"))
}

func TestCalendarConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CalendarConfig)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(c *CalendarConfig) {}},
		{name: "no lunch is valid", mutate: func(c *CalendarConfig) { c.LunchDurationMinutes = 0 }},
		{name: "negative buffer", mutate: func(c *CalendarConfig) { c.BufferMinutes = -1 }, wantErr: true},
		{name: "buffer too large", mutate: func(c *CalendarConfig) { c.BufferMinutes = MaxBufferMinutes + 1 }, wantErr: true},
		{name: "negative lunch", mutate: func(c *CalendarConfig) { c.LunchDurationMinutes = -5 }, wantErr: true},
		{name: "lunch too long", mutate: func(c *CalendarConfig) { c.LunchDurationMinutes = MaxLunchDurationMinutes + 1 }, wantErr: true},
		{name: "lunch before opening", mutate: func(c *CalendarConfig) { c.LunchStart = "08:00" }, wantErr: true},
		{name: "lunch runs past closing", mutate: func(c *CalendarConfig) { c.LunchStart = "20:00" }, wantErr: true},
		{name: "inverted work window", mutate: func(c *CalendarConfig) { c.WorkWindow = TimeWindow{Start: "20:00", End: "09:00"} }, wantErr: true},
		{name: "negative repeat horizon", mutate: func(c *CalendarConfig) { c.RepeatHorizonWeeks = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalendarConfig_LunchWindow(t *testing.T) {
	cfg := validConfig()
	lunch, err := cfg.LunchWindow()
	require.NoError(t, err)
	assert.Equal(t, TimeWindow{Start: "12:00", End: "12:45"}, lunch)

	cfg.LunchDurationMinutes = 0
	lunch, err = cfg.LunchWindow()
	require.NoError(t, err)
	assert.True(t, lunch.Start.IsZero())
}

func TestDaySchedule_LastBookableStart(t *testing.T) {
	day := DaySchedule{WorkWindow: TimeWindow{Start: "09:00", End: "20:30"}}

	last, ok := day.LastBookableStart(60)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("19:30"), last)

	last, ok = day.LastBookableStart(30)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("20:00"), last)

	// Длительность больше рабочего окна - слоты не производятся
	_, ok = day.LastBookableStart(12 * 60)
	assert.False(t, ok)
}
