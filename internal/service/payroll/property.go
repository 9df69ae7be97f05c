package payroll

import (
	"sort"
	"time"

	"github.com/guardsite/payroll-backend-go/internal/domain/payroll"
)

const (
	// A property week counts as completed once its summed hours reach 2.
	weeklyHourThreshold = 2.0
	// A monthly-threshold day counts as effective once it reaches 8 hours.
	effectiveDayHourThreshold = 8.0
)

type isoWeek struct {
	year, week int
}

func weekOf(d time.Time) isoWeek {
	y, w := d.ISOWeek()
	return isoWeek{year: y, week: w}
}

// requiredWeeksInMonth counts the distinct ISO weeks the month touches.
func requiredWeeksInMonth(year, month int) int {
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	weeks := map[isoWeek]struct{}{}
	for day := 1; day <= lastDay; day++ {
		weeks[weekOf(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))] = struct{}{}
	}
	return len(weeks)
}

func completedWeeks(dailyHours map[time.Time]float64, year, month int) int {
	totals := map[isoWeek]float64{}
	for d, hours := range dailyHours {
		if d.Year() != year || int(d.Month()) != month {
			continue
		}
		totals[weekOf(d)] += hours
	}
	n := 0
	for _, total := range totals {
		if total >= weeklyHourThreshold {
			n++
		}
	}
	return n
}

// weeklyAccrualSplit computes the weekly-accrual gross for one employee and
// apportions it across the sites they appeared at: integer division with the
// remainder handed out one unit at a time in alphabetical site order.
// A zero-valued map with a gap status means the mode is not configured.
func weeklyAccrualSplit(
	cfg payroll.PayModeConfig,
	siteDailyHours map[string]map[time.Time]float64,
	year, month int,
) (map[string]int64, payroll.AttendanceStatus) {
	if cfg.FixedMonthlySalary <= 0 {
		return nil, payroll.AttendanceStatus{Kind: payroll.StatusMissingPropertySalary}
	}
	if cfg.WeeklyAmount <= 0 {
		return nil, payroll.AttendanceStatus{Kind: payroll.StatusMissingWeeklyAmount}
	}

	required := requiredWeeksInMonth(year, month)
	weekTotals := map[isoWeek]float64{}
	var sites []string
	for siteName, dayMap := range siteDailyHours {
		appeared := false
		for d, hours := range dayMap {
			if d.Year() != year || int(d.Month()) != month {
				continue
			}
			appeared = true
			weekTotals[weekOf(d)] += hours
		}
		if appeared {
			sites = append(sites, siteName)
		}
	}

	completed := 0
	for _, total := range weekTotals {
		if total >= weeklyHourThreshold {
			completed++
		}
	}

	gross := cfg.WeeklyAmount * int64(completed)
	if gross > cfg.FixedMonthlySalary {
		gross = cfg.FixedMonthlySalary
	}
	if gross < 0 {
		gross = 0
	}

	status := payroll.AttendanceStatus{
		Kind:      payroll.StatusWeeklyAccrual,
		Completed: completed,
		Required:  required,
	}
	if len(sites) == 0 {
		return map[string]int64{}, status
	}

	sort.Strings(sites)
	base := gross / int64(len(sites))
	remainder := gross % int64(len(sites))
	split := make(map[string]int64, len(sites))
	for i, siteName := range sites {
		split[siteName] = base
		if int64(i) < remainder {
			split[siteName]++
		}
	}
	return split, status
}

// monthlyThresholdGross prorates the fixed salary by effective days over the
// month's required working days (calendar days minus holidays).
func monthlyThresholdGross(
	cfg payroll.PayModeConfig,
	dailyHours map[time.Time]float64,
	year, month int,
	holidayDates map[time.Time]struct{},
) (int64, payroll.AttendanceStatus) {
	if cfg.FixedMonthlySalary <= 0 {
		return 0, payroll.AttendanceStatus{Kind: payroll.StatusMissingPropertySalary}
	}

	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	requiredDays := lastDay - len(holidayDates)
	if requiredDays <= 0 {
		return 0, payroll.AttendanceStatus{Kind: payroll.StatusZeroRequiredDays}
	}

	effectiveDays := 0
	for d, hours := range dailyHours {
		if d.Year() != year || int(d.Month()) != month {
			continue
		}
		if hours >= effectiveDayHourThreshold {
			effectiveDays++
		}
	}
	if effectiveDays > requiredDays {
		effectiveDays = requiredDays
	}

	gross := roundHalfUp(float64(cfg.FixedMonthlySalary) * float64(effectiveDays) / float64(requiredDays))
	if gross > cfg.FixedMonthlySalary {
		gross = cfg.FixedMonthlySalary
	}
	if gross < 0 {
		gross = 0
	}
	return gross, payroll.AttendanceStatus{
		Kind:      payroll.StatusMonthlyThreshold,
		Completed: effectiveDays,
		Required:  requiredDays,
	}
}
