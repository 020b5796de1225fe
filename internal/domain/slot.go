package domain

import "github.com/m04kA/SMC-RidingSchoolService/pkg/types"

// CandidateSlot is a bookable interval produced by the slot generator.
// Ephemeral: computed per request, never persisted.
type CandidateSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}
