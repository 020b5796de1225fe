package domain

// Default calendar settings, matching the stable's historical schedule
const (
	DefaultWorkStart            = "09:00"
	DefaultWorkEnd              = "20:30"
	DefaultLunchStart           = "12:00"
	DefaultLunchDurationMinutes = 45
	DefaultBufferMinutes        = 10
)

// Business validation constants
const (
	DurationStepMinutes     = 30
	MaxDurationMinutes      = 90
	MaxPartySize            = 7
	MaxBufferMinutes        = 60
	MaxLunchDurationMinutes = 180
	MaxNoteLength           = 500
	MaxSubjectNameLength    = 200

	// MoveGridStepMinutes is the step of the start-time grid offered to the
	// admin when sliding a booking to a new time
	MoveGridStepMinutes = 5
)

// AllowedDurations перечень допустимых длительностей занятия в минутах
var AllowedDurations = []int{30, 60, 90}

// HorseRoster список лошадей школы; назначения валидируются по нему
var HorseRoster = []string{"Eni", "Vera", "Lord", "Pinty", "Szerencse lovag", "Herceg"}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// IsAllowedDuration reports whether the duration is one of the bookable lengths
func IsAllowedDuration(minutes int) bool {
	for _, d := range AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// IsRosterHorse reports whether the name belongs to the fixed horse roster
func IsRosterHorse(name string) bool {
	for _, h := range HorseRoster {
		if h == name {
			return true
		}
	}
	return false
}
