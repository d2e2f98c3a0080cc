package timetable

import "github.com/matzehuels/weekgrid/pkg/errors"

// Validate checks the preconditions the layout engine assumes but never
// enforces: day within {2..8}, 1 <= StartPeriod <= EndPeriod <= 12, and an
// ISO date.
func Validate(s ClassSession) error {
	if !s.DayOfWeek.Valid() {
		return errors.New(errors.ErrCodeInvalidDay, "session %s: day %d outside %d..%d", s.ID, int(s.DayOfWeek), int(MinDay), int(MaxDay))
	}
	if s.StartPeriod < MinPeriod || s.EndPeriod > MaxPeriod || s.StartPeriod > s.EndPeriod {
		return errors.New(errors.ErrCodeInvalidPeriod, "session %s: periods %d..%d outside %d..%d", s.ID, s.StartPeriod, s.EndPeriod, MinPeriod, MaxPeriod)
	}
	if err := errors.ValidateDate(s.Date); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDate, err, "session %s", s.ID)
	}
	return nil
}

// CheckTimes reports whether the session's clock strings match the table
// for its start and end periods.
func CheckTimes(s ClassSession, t *PeriodTable) error {
	start, ok := t.Lookup(s.StartPeriod)
	if !ok {
		return errors.New(errors.ErrCodeInvalidPeriod, "session %s: no period %d", s.ID, s.StartPeriod)
	}
	end, ok := t.Lookup(s.EndPeriod)
	if !ok {
		return errors.New(errors.ErrCodeInvalidPeriod, "session %s: no period %d", s.ID, s.EndPeriod)
	}
	if s.StartTime != start.Start || s.EndTime != end.End {
		return errors.New(errors.ErrCodeInconsistentTime, "session %s: %s does not match periods %d..%d (%s - %s)",
			s.ID, s.TimeRange(), s.StartPeriod, s.EndPeriod, start.Start, end.End)
	}
	return nil
}

// Partition splits sessions into those passing [Validate] and the rest,
// preserving input order in both.
func Partition(sessions []ClassSession) (valid []ClassSession, rejected []error) {
	for _, s := range sessions {
		if err := Validate(s); err != nil {
			rejected = append(rejected, err)
			continue
		}
		valid = append(valid, s)
	}
	return valid, rejected
}

// FillTimes returns a copy of s with empty StartTime/EndTime derived from t.
func FillTimes(s ClassSession, t *PeriodTable) ClassSession {
	if s.StartTime == "" {
		if p, ok := t.Lookup(s.StartPeriod); ok {
			s.StartTime = p.Start
		}
	}
	if s.EndTime == "" {
		if p, ok := t.Lookup(s.EndPeriod); ok {
			s.EndTime = p.End
		}
	}
	return s
}
