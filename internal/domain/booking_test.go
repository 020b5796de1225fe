package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

func TestBooking_ConflictsWith(t *testing.T) {
	booking := &Booking{StartTime: "14:00", DurationMinutes: 30}

	tests := []struct {
		name      string
		candStart types.TimeString
		candEnd   types.TimeString
		want      bool
	}{
		{name: "identical interval", candStart: "14:00", candEnd: "14:30", want: true},
		{name: "overlaps from the left", candStart: "13:50", candEnd: "14:20", want: true},
		{name: "overlaps from the right", candStart: "14:20", candEnd: "14:50", want: true},
		{name: "fully contains booking", candStart: "13:30", candEnd: "15:00", want: true},
		{name: "touching end is not overlap", candStart: "14:30", candEnd: "15:00", want: false},
		{name: "touching start is not overlap", candStart: "13:30", candEnd: "14:00", want: false},
		{name: "disjoint before", candStart: "12:00", candEnd: "13:00", want: false},
		{name: "disjoint after", candStart: "15:00", candEnd: "16:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.ConflictsWith(tt.candStart, tt.candEnd))
		})
	}
}

func TestBooking_TouchesOrConflicts(t *testing.T) {
	booking := &Booking{StartTime: "10:00", DurationMinutes: 30}

	tests := []struct {
		name      string
		candStart types.TimeString
		candEnd   types.TimeString
		want      bool
	}{
		{name: "overlap", candStart: "10:15", candEnd: "10:45", want: true},
		{name: "touching end counts", candStart: "10:30", candEnd: "11:00", want: true},
		{name: "touching start counts", candStart: "09:30", candEnd: "10:00", want: true},
		{name: "gap after", candStart: "10:31", candEnd: "11:01", want: false},
		{name: "gap before", candStart: "09:00", candEnd: "09:59", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.TouchesOrConflicts(tt.candStart, tt.candEnd))
		})
	}
}

func TestBooking_IsSeriesMember(t *testing.T) {
	assert.False(t, (&Booking{}).IsSeriesMember())
	assert.True(t, (&Booking{RepeatGroupID: "a4c2"}).IsSeriesMember())
}

func TestBooking_EndTime(t *testing.T) {
	end, err := (&Booking{StartTime: "19:30", DurationMinutes: 60}).EndTime()
	assert.NoError(t, err)
	assert.Equal(t, types.TimeString("20:30"), end)
}
