package timetable

import "time"

// ClassSession is one scheduled occurrence of a course section on a concrete
// date within the selected week.
//
// StartTime and EndTime are carried as delivered by the source. They are
// expected to agree with the period table but nothing re-derives them; see
// [CheckTimes].
type ClassSession struct {
	ID          string `json:"id" csv:"id" bson:"session_id"`
	CourseCode  string `json:"courseCode" csv:"course_code" bson:"course_code"`
	CourseName  string `json:"courseName" csv:"course_name" bson:"course_name"`
	Room        string `json:"room" csv:"room" bson:"room"`
	Instructor  string `json:"instructor" csv:"instructor" bson:"instructor"`
	ClassName   string `json:"className" csv:"class_name" bson:"class_name"`
	DayOfWeek   Day    `json:"dayOfWeek" csv:"day_of_week" bson:"day_of_week"`
	StartPeriod int    `json:"startPeriod" csv:"start_period" bson:"start_period"`
	EndPeriod   int    `json:"endPeriod" csv:"end_period" bson:"end_period"`
	StartTime   string `json:"startTime" csv:"start_time" bson:"start_time"`
	EndTime     string `json:"endTime" csv:"end_time" bson:"end_time"`
	Date        string `json:"date" csv:"date" bson:"date"`
}

// RowSpan returns the number of periods the session occupies.
func (s ClassSession) RowSpan() int { return s.EndPeriod - s.StartPeriod + 1 }

// TimeRange formats the session's clock times as "07:00 - 08:40".
func (s ClassSession) TimeRange() string { return s.StartTime + " - " + s.EndTime }

// DayOfMonth returns the day-of-month component of Date without leading
// zero ("4" for "2024-09-04"), or "" when Date does not parse.
func (s ClassSession) DayOfMonth() string {
	t, err := time.Parse(time.DateOnly, s.Date)
	if err != nil {
		return ""
	}
	return t.Format("2")
}

// Overlaps reports whether the inclusive period ranges of s and o intersect.
// Day is not considered.
func (s ClassSession) Overlaps(o ClassSession) bool {
	return s.StartPeriod <= o.EndPeriod && o.StartPeriod <= s.EndPeriod
}
