package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/guardsite/payroll-backend-go/internal/domain/insurance"
	"github.com/guardsite/payroll-backend-go/internal/domain/payroll"
	"github.com/guardsite/payroll-backend-go/internal/domain/site"
	"github.com/guardsite/payroll-backend-go/internal/pkg/proration"
	"github.com/shopspring/decimal"
)

const (
	// Monthly employees reaching this many hours in the period are paid the
	// full monthly salary regardless of the summed daily amounts.
	fullAttendanceHours = 288.0
	// A day of at least this many hours counts as a full day at the daily
	// rate for monthly/daily pay types.
	fullDayHours = 12.0
	maxDayHours  = 24.0
)

// HolidayCalendar supplies the month's non-working days (weekends plus
// configured public holidays) for the monthly-threshold property mode.
type HolidayCalendar interface {
	DatesInMonth(year, month int) map[time.Time]struct{}
}

// Calculator is the gross-pay aggregator and insurance/deduction engine:
// a pure function of the attendance records and the lookup boundary, safe
// to re-run with identical inputs.
type Calculator struct {
	resolver *CrossRegistrationResolver
	sites    site.SiteRepository
	brackets insurance.BracketRepository
	holidays HolidayCalendar

	defaultGroupFee decimal.Decimal
	logger          *slog.Logger
}

func NewCalculator(
	employees employee.EmployeeRepository,
	sites site.SiteRepository,
	brackets insurance.BracketRepository,
	holidays HolidayCalendar,
	defaultGroupFee decimal.Decimal,
	logger *slog.Logger,
) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		resolver:        NewCrossRegistrationResolver(employees),
		sites:           sites,
		brackets:        brackets,
		holidays:        holidays,
		defaultGroupFee: defaultGroupFee,
		logger:          logger,
	}
}

type siteEmployeeKey struct {
	site, employee string
}

// siteEmployeeAggregate accumulates one (site, employee) pair during the
// single linear pass over the attendance rows, then drains into a result
// row. Daily amounts are stored already rounded; the gross is the sum of
// rounded amounts, never the rounded sum.
type siteEmployeeAggregate struct {
	hours            []float64
	dailyRounded     []int64
	cfg              payroll.PayModeConfig
	enrollDate       *time.Time
	cancelDate       *time.Time
	registration     employee.RegistrationType
	dailyHoursByDate map[time.Time]float64
	siteOnFile       bool

	traceDays  []payroll.TraceDay
	traceRaw   float64
	traceCount int
}

type resolvedEmployee struct {
	found bool
	emp   employee.Employee
	cfg   *payroll.PayModeConfig
}

type errorCollector struct {
	errs []payroll.CalcError
	seen map[string]bool
}

func newErrorCollector() *errorCollector {
	return &errorCollector{seen: map[string]bool{}}
}

func (ec *errorCollector) add(e payroll.CalcError) {
	ec.errs = append(ec.errs, e)
}

// addOnce deduplicates by (type, natural key) so a problem repeated across
// many attendance rows surfaces once.
func (ec *errorCollector) addOnce(key string, e payroll.CalcError) {
	k := string(e.Type) + "\x00" + key
	if ec.seen[k] {
		return
	}
	ec.seen[k] = true
	ec.errs = append(ec.errs, e)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Calculate runs the full aggregate-then-insure pipeline over parsed
// attendance records. Per-entity problems are collected into the returned
// error list; only structural problems (invalid period, a failing lookup
// backend) return a Go error.
func (c *Calculator) Calculate(
	ctx context.Context,
	records []payroll.AttendanceRecord,
	req payroll.CalculateRequest,
) ([]payroll.ResultRow, []payroll.CalcError, *payroll.Trace, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, nil, err
	}
	if _, err := proration.DaysInMonth(req.Year, req.Month); err != nil {
		return nil, nil, nil, err
	}

	ec := newErrorCollector()
	empCache := map[string]*resolvedEmployee{}
	siteCache := map[string]bool{}
	groups := map[siteEmployeeKey]*siteEmployeeAggregate{}

	for _, rec := range records {
		siteName := strings.TrimSpace(rec.Site)
		empName := strings.TrimSpace(rec.Employee)
		hours := rec.Hours

		if hours < 0 || hours > maxDayHours {
			detail := "negative hours"
			if hours > maxDayHours {
				detail = "exceeds 24 hours"
			}
			ec.add(payroll.CalcError{
				Type:         payroll.CalcErrValidation,
				EmployeeName: empName,
				Message: fmt.Sprintf("employee %q: invalid hours on %s (%s)",
					empName, rec.Date.Format("2006-01-02"), detail),
			})
			continue
		}

		entry, err := c.resolveEmployee(ctx, empName, req, empCache, ec)
		if err != nil {
			return nil, nil, nil, err
		}
		if !entry.found || entry.cfg == nil {
			continue
		}

		onFile, err := c.siteOnFile(ctx, siteName, siteCache, ec)
		if err != nil {
			return nil, nil, nil, err
		}

		key := siteEmployeeKey{site: siteName, employee: empName}
		agg, ok := groups[key]
		if !ok {
			agg = &siteEmployeeAggregate{dailyHoursByDate: map[time.Time]float64{}}
			groups[key] = agg
		}
		agg.cfg = *entry.cfg
		agg.enrollDate = entry.emp.EnrollDate
		agg.cancelDate = entry.emp.CancelDate
		agg.registration = entry.emp.RegistrationType
		agg.siteOnFile = onFile
		agg.hours = append(agg.hours, hours)
		agg.dailyHoursByDate[dateOnly(rec.Date)] += hours

		if agg.cfg.PropertySpecial() {
			continue
		}

		raw := dailyAmountRaw(agg.cfg, hours)
		rounded := roundHalfUp(raw)
		agg.dailyRounded = append(agg.dailyRounded, rounded)

		if req.TraceEmployee != "" && empName == req.TraceEmployee {
			agg.traceRaw += raw
			agg.traceCount++
			if len(agg.traceDays) < 5 {
				agg.traceDays = append(agg.traceDays, payroll.TraceDay{
					Day:           agg.traceCount,
					Hours:         hours,
					RawAmount:     raw,
					RoundedAmount: rounded,
				})
			}
		}
	}

	siteRows := c.drainGroups(groups, req)

	rows, err := c.applyInsurance(ctx, siteRows, req, ec)
	if err != nil {
		return nil, nil, nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Site != rows[j].Site {
			return rows[i].Site < rows[j].Site
		}
		return rows[i].Employee < rows[j].Employee
	})

	trace := buildTrace(groups, rows, req.TraceEmployee)
	return rows, ec.errs, trace, nil
}

// dailyAmountRaw applies the standard (non-property-special) daily rule:
// monthly/daily pay 12+ hours as a full day at the daily rate, anything
// shorter at the hourly rate; hourly is always hours times the rate.
func dailyAmountRaw(cfg payroll.PayModeConfig, hours float64) float64 {
	switch cfg.PayType {
	case payroll.PayTypeMonthly, payroll.PayTypeDaily:
		if hours >= fullDayHours {
			return float64(cfg.DailyWage)
		}
		return float64(cfg.HourlyWage) * hours
	default:
		return float64(cfg.HourlyWage) * hours
	}
}

func (c *Calculator) resolveEmployee(
	ctx context.Context,
	name string,
	req payroll.CalculateRequest,
	cache map[string]*resolvedEmployee,
	ec *errorCollector,
) (*resolvedEmployee, error) {
	if entry, ok := cache[name]; ok {
		return entry, nil
	}

	emp, err := c.resolver.Resolve(ctx, name, req.Category, req.ExtraCategories)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			entry := &resolvedEmployee{found: false}
			cache[name] = entry
			ec.addOnce(name, payroll.CalcError{
				Type:              payroll.CalcErrEmployeeNotFound,
				EmployeeName:      name,
				RequestedCategory: req.Category,
				Message:           fmt.Sprintf("employee %q is not on file", name),
			})
			return entry, nil
		}
		return nil, fmt.Errorf("resolve employee %q: %w", name, err)
	}

	entry := &resolvedEmployee{found: true, emp: emp}
	entry.cfg = ResolvePayModeConfig(emp, req.Category, c.defaultGroupFee)
	if entry.cfg == nil {
		calcErr := payroll.CalcError{
			Type:              payroll.CalcErrMissingPayConfig,
			EmployeeName:      name,
			RequestedCategory: req.Category,
			Message:           fmt.Sprintf("employee %q has no %s pay configuration", name, req.Category),
		}
		if emp.RegistrationType != req.Category {
			calcErr.SourceCategory = emp.RegistrationType
			calcErr.Message += fmt.Sprintf(" (matched under %s)", emp.RegistrationType)
		}
		ec.addOnce(name, calcErr)
	}
	cache[name] = entry
	return entry, nil
}

func (c *Calculator) siteOnFile(
	ctx context.Context,
	name string,
	cache map[string]bool,
	ec *errorCollector,
) (bool, error) {
	if onFile, ok := cache[name]; ok {
		return onFile, nil
	}
	_, err := c.sites.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, site.ErrSiteNotFound) {
			cache[name] = false
			ec.addOnce(name, payroll.CalcError{
				Type:     payroll.CalcErrSiteNotFound,
				SiteName: name,
				Message:  fmt.Sprintf("site %q is not on file", name),
			})
			return false, nil
		}
		return false, fmt.Errorf("lookup site %q: %w", name, err)
	}
	cache[name] = true
	return true, nil
}

// siteRow is one (site, employee) pair after gross computation, before the
// per-employee insurance pass.
type siteRow struct {
	site         string
	employee     string
	totalHours   float64
	gross        int64
	status       payroll.AttendanceStatus
	cfg          payroll.PayModeConfig
	enrollDate   *time.Time
	cancelDate   *time.Time
	registration employee.RegistrationType
	dailyHours   map[time.Time]float64
	siteOnFile   bool
}

func (c *Calculator) drainGroups(
	groups map[siteEmployeeKey]*siteEmployeeAggregate,
	req payroll.CalculateRequest,
) []*siteRow {
	keys := make([]siteEmployeeKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].site != keys[j].site {
			return keys[i].site < keys[j].site
		}
		return keys[i].employee < keys[j].employee
	})

	out := make([]*siteRow, 0, len(keys))
	for _, k := range keys {
		agg := groups[k]
		total := 0.0
		for _, h := range agg.hours {
			total += h
		}

		row := &siteRow{
			site:         k.site,
			employee:     k.employee,
			totalHours:   total,
			cfg:          agg.cfg,
			enrollDate:   agg.enrollDate,
			cancelDate:   agg.cancelDate,
			registration: agg.registration,
			dailyHours:   agg.dailyHoursByDate,
			siteOnFile:   agg.siteOnFile,
		}

		if agg.cfg.PropertySpecial() {
			// Gross and status are assigned in the per-employee pass.
			row.status = payroll.AttendanceStatus{Kind: payroll.StatusMissingPropertyMode}
		} else {
			var gross int64
			for _, amount := range agg.dailyRounded {
				gross += amount
			}
			switch agg.cfg.PayType {
			case payroll.PayTypeMonthly:
				if total >= fullAttendanceHours {
					gross = agg.cfg.MonthlySalary
					row.status = payroll.AttendanceStatus{Kind: payroll.StatusFullAttendance}
				} else {
					row.status = payroll.AttendanceStatus{Kind: payroll.StatusPartialAttendance}
				}
			case payroll.PayTypeDaily:
				row.status = payroll.AttendanceStatus{Kind: payroll.StatusDailyRate}
			default:
				row.status = payroll.AttendanceStatus{Kind: payroll.StatusHourlyRate}
			}
			row.gross = gross
		}
		row.status.SiteNotOnFile = !agg.siteOnFile
		out = append(out, row)
	}
	return out
}

func buildTrace(
	groups map[siteEmployeeKey]*siteEmployeeAggregate,
	rows []payroll.ResultRow,
	traceEmployee string,
) *payroll.Trace {
	if traceEmployee == "" {
		return nil
	}
	keys := make([]siteEmployeeKey, 0, len(groups))
	for k := range groups {
		if k.employee == traceEmployee {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].site < keys[j].site })

	agg := groups[keys[0]]
	var rounded int64
	for _, amount := range agg.dailyRounded {
		rounded += amount
	}
	var grossFinal int64
	for _, row := range rows {
		if row.Site == keys[0].site && row.Employee == traceEmployee {
			grossFinal = row.GrossSalary
			break
		}
	}
	return &payroll.Trace{
		Employee:          traceEmployee,
		PayType:           agg.cfg.PayType,
		MonthlySalary:     agg.cfg.MonthlySalary,
		DailyWage:         agg.cfg.DailyWage,
		HourlyWage:        agg.cfg.HourlyWage,
		FirstDays:         agg.traceDays,
		GrossBySumRaw:     roundHalfUp(agg.traceRaw),
		GrossBySumRounded: rounded,
		GrossFinal:        grossFinal,
	}
}
