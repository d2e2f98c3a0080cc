package timetable

import "github.com/matzehuels/weekgrid/pkg/errors"

// WeekSelection identifies the session collection in scope.
type WeekSelection struct {
	SemesterID string `json:"semesterId"`
	WeekID     string `json:"weekId"`
}

// Validate checks both identifiers are path-safe.
func (w WeekSelection) Validate() error {
	if err := errors.ValidateIdentifier("semester", w.SemesterID); err != nil {
		return err
	}
	return errors.ValidateIdentifier("week", w.WeekID)
}

// IsZero reports whether no week has been selected.
func (w WeekSelection) IsZero() bool { return w.SemesterID == "" && w.WeekID == "" }

func (w WeekSelection) String() string { return w.SemesterID + "/" + w.WeekID }
