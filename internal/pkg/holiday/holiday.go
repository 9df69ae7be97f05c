// Package holiday answers "which days of this month are off" for the
// monthly-threshold property pay mode: Saturdays, Sundays, plus a configured
// public-holiday list.
package holiday

import "time"

type Calendar struct {
	public map[time.Time]struct{}
}

// NewCalendar builds a calendar from the configured public-holiday dates.
// Times are normalized to UTC midnight before lookup.
func NewCalendar(publicHolidays []time.Time) *Calendar {
	public := make(map[time.Time]struct{}, len(publicHolidays))
	for _, d := range publicHolidays {
		public[normalize(d)] = struct{}{}
	}
	return &Calendar{public: public}
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DatesInMonth returns the set of holiday dates in the month: every Saturday
// and Sunday plus any configured public holiday falling in the month.
func (c *Calendar) DatesInMonth(year, month int) map[time.Time]struct{} {
	out := make(map[time.Time]struct{})
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for day := 1; day <= lastDay; day++ {
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			out[d] = struct{}{}
			continue
		}
		if _, ok := c.public[d]; ok {
			out[d] = struct{}{}
		}
	}
	return out
}
