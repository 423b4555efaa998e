package dateformat

import "time"

// WeekRule decides where weeks start and which week of the year is week 1.
//
// Dow is the first day of the week (0 = Sunday). Doy is chosen so that
// 7 + Dow - Doy is the January date that always falls in week 1.
type WeekRule struct {
	Dow int
	Doy int
}

var (
	// SundayStart is the US rule: weeks start on Sunday and the week
	// containing January 1st is week 1.
	SundayStart = WeekRule{Dow: 0, Doy: 6}

	// MondayStart matches ISO 8601: weeks start on Monday and the week
	// containing January 4th is week 1.
	MondayStart = WeekRule{Dow: 1, Doy: 4}
)

// firstWeekOffset returns the day-of-year offset of the first day of week 1,
// relative to January 1st. It may be negative.
func firstWeekOffset(year int, rule WeekRule) int {
	fwd := 7 + rule.Dow - rule.Doy
	fwdlw := (7 + int(time.Date(year, time.January, fwd, 0, 0, 0, 0, time.UTC).Weekday()) - rule.Dow) % 7
	return -fwdlw + fwd - 1
}

func daysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}

func weeksInYear(year int, rule WeekRule) int {
	offset := firstWeekOffset(year, rule)
	next := firstWeekOffset(year+1, rule)
	return (daysInYear(year) - offset + next) / 7
}

// Week returns the week-year and week number of t under rule.
func (rule WeekRule) Week(t time.Time) (year, week int) {
	offset := firstWeekOffset(t.Year(), rule)
	week = floorDiv(t.YearDay()-offset-1, 7) + 1

	switch {
	case week < 1:
		year = t.Year() - 1
		week += weeksInYear(year, rule)
	case week > weeksInYear(t.Year(), rule):
		week -= weeksInYear(t.Year(), rule)
		year = t.Year() + 1
	default:
		year = t.Year()
	}
	return year, week
}

// Weekday returns the day number within the week, 0 being rule.Dow.
func (rule WeekRule) Weekday(t time.Time) int {
	return (int(t.Weekday()) - rule.Dow + 7) % 7
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
