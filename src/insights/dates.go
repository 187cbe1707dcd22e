package insights

import "time"

// monthStart returns the first instant of the month offset months away from t,
// in t's location. Offsets may cross year boundaries.
func monthStart(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// dayKey is the UTC calendar day of t; time of day is ignored.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func daysInMonth(t time.Time) int {
	return monthStart(t, 1).AddDate(0, 0, -1).Day()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// LookbackStart is the first day of the month months before now's month.
func LookbackStart(now time.Time, months int) time.Time {
	return monthStart(now, -months)
}
