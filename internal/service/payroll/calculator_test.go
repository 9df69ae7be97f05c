package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/guardsite/payroll-backend-go/internal/domain/insurance"
	"github.com/guardsite/payroll-backend-go/internal/domain/payroll"
	"github.com/guardsite/payroll-backend-go/internal/domain/site"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	byKey map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byKey: map[string]employee.Employee{}}
}

func (r *fakeEmployeeRepo) add(emp employee.Employee) {
	r.byKey[emp.Name+"|"+string(emp.RegistrationType)] = emp
}

func (r *fakeEmployeeRepo) GetByNameAndRegistration(
	_ context.Context, name string, registration employee.RegistrationType,
) (employee.Employee, error) {
	emp, ok := r.byKey[name+"|"+string(registration)]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeSiteRepo struct {
	names map[string]bool
}

func (r *fakeSiteRepo) GetByName(_ context.Context, name string) (site.Site, error) {
	if !r.names[name] {
		return site.Site{}, site.ErrSiteNotFound
	}
	return site.Site{ID: "site-" + name, Name: name}, nil
}

type fakeBracketRepo struct {
	imp      *insurance.BracketImport
	brackets map[int]insurance.Bracket
}

func (r *fakeBracketRepo) LatestImport(_ context.Context) (insurance.BracketImport, error) {
	if r.imp == nil {
		return insurance.BracketImport{}, insurance.ErrNoBracketImport
	}
	return *r.imp, nil
}

func (r *fakeBracketRepo) BracketByLevel(_ context.Context, _ string, level int) (insurance.Bracket, error) {
	b, ok := r.brackets[level]
	if !ok {
		return insurance.Bracket{}, insurance.ErrBracketNotFound
	}
	return b, nil
}

type stubCalendar struct {
	dates map[time.Time]struct{}
}

func (c stubCalendar) DatesInMonth(int, int) map[time.Time]struct{} {
	return c.dates
}

type fixture struct {
	employees *fakeEmployeeRepo
	sites     *fakeSiteRepo
	brackets  *fakeBracketRepo
	holidays  stubCalendar
}

func newFixture() *fixture {
	return &fixture{
		employees: newFakeEmployeeRepo(),
		sites:     &fakeSiteRepo{names: map[string]bool{"Alpha": true, "Bravo": true}},
		brackets: &fakeBracketRepo{
			imp: &insurance.BracketImport{ID: "imp-1", FileName: "table.xlsx", Levels: []int{28800, 45800}},
			brackets: map[int]insurance.Bracket{
				28800: {ID: "b-1", ImportID: "imp-1", InsuredSalaryLevel: 28800,
					LaborEmployee: decimal.NewFromInt(631), HealthEmployee: decimal.NewFromInt(443)},
				45800: {ID: "b-2", ImportID: "imp-1", InsuredSalaryLevel: 45800,
					LaborEmployee: decimal.NewFromInt(1009), HealthEmployee: decimal.NewFromInt(705)},
			},
		},
		holidays: stubCalendar{dates: map[time.Time]struct{}{}},
	}
}

func (f *fixture) calculator() *Calculator {
	return NewCalculator(f.employees, f.sites, f.brackets, f.holidays,
		decimal.NewFromInt(350), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func boolPtr(v bool) *bool { return &v }

func day(d int) time.Time {
	return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC)
}

func records(siteName, empName string, hours float64, days ...int) []payroll.AttendanceRecord {
	out := make([]payroll.AttendanceRecord, 0, len(days))
	for _, d := range days {
		out = append(out, payroll.AttendanceRecord{
			Site: siteName, Employee: empName, Date: day(d), Hours: hours,
		})
	}
	return out
}

func septemberRequest() payroll.CalculateRequest {
	return payroll.CalculateRequest{Year: 2025, Month: 9, Category: employee.RegistrationSecurity}
}

func TestCalculateHourlyRoundsEachDayBeforeSumming(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:             "Chen",
		RegistrationType: employee.RegistrationSecurity,
		SecurityPayMode:  "hourly",
		SalaryValue:      decPtr(906),
		EnrollDate:       timePtr(day(1)),
		Profile:          &employee.SalaryProfile{GroupInsuranceEnabled: boolPtr(false)},
	})

	recs := records("Alpha", "Chen", 11, 1, 2, 3, 4, 5)
	rows, errs, _, err := f.calculator().Calculate(context.Background(), recs, septemberRequest())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// 906 * 11 = 9966 per day, five days.
	assert.Equal(t, int64(49830), rows[0].GrossSalary)
	assert.Equal(t, payroll.PayTypeHourly, rows[0].PayType)
	assert.Equal(t, 55.0, rows[0].TotalHours)
	assert.Equal(t, "hourly rate", rows[0].StatusText)

	// No insured level configured: reported once, gross unaffected.
	require.Len(t, errs, 1)
	assert.Equal(t, payroll.CalcErrMissingInsuredLevel, errs[0].Type)
}

func TestCalculateTraceShowsRoundingDivergence(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:             "Chen",
		RegistrationType: employee.RegistrationSecurity,
		SecurityPayMode:  "hourly",
		SalaryValue:      decPtr(906),
		EnrollDate:       timePtr(day(1)),
		Profile:          &employee.SalaryProfile{GroupInsuranceEnabled: boolPtr(false)},
	})

	days := make([]int, 0, 30)
	for d := 1; d <= 30; d++ {
		days = append(days, d)
	}
	recs := records("Alpha", "Chen", 11.3, days...)

	req := septemberRequest()
	req.TraceEmployee = "Chen"
	rows, _, trace, err := f.calculator().Calculate(context.Background(), recs, req)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, trace)

	// 906 * 11.3 = 10237.8: rounded per day to 10238 before summing.
	assert.Equal(t, int64(307140), rows[0].GrossSalary)
	assert.Equal(t, int64(307140), trace.GrossBySumRounded)
	assert.Equal(t, int64(307134), trace.GrossBySumRaw)
	assert.Equal(t, rows[0].GrossSalary, trace.GrossFinal)
	require.Len(t, trace.FirstDays, 5)
	assert.InDelta(t, 10237.8, trace.FirstDays[0].RawAmount, 0.001)
	assert.Equal(t, int64(10238), trace.FirstDays[0].RoundedAmount)
}

func TestCalculateMonthlyFullAttendanceOverride(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:               "Lin",
		RegistrationType:   employee.RegistrationSecurity,
		SecurityPayMode:    "monthly",
		SalaryValue:        decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
		EnrollDate:         timePtr(day(1)),
		Profile:            &employee.SalaryProfile{GroupInsuranceEnabled: boolPtr(false)},
	})

	// 24 days of 12 hours reaches the 288-hour override.
	days := make([]int, 0, 24)
	for d := 1; d <= 24; d++ {
		days = append(days, d)
	}
	rows, errs, _, err := f.calculator().Calculate(context.Background(),
		records("Alpha", "Lin", 12, days...), septemberRequest())
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(50000), rows[0].GrossSalary)
	assert.Equal(t, "full attendance", rows[0].StatusText)

	// One day short: sum of rounded daily amounts at the derived daily
	// wage, round(50000/24) = 2083.
	rows, _, _, err = f.calculator().Calculate(context.Background(),
		records("Alpha", "Lin", 12, days[:23]...), septemberRequest())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(23*2083), rows[0].GrossSalary)
	assert.Equal(t, "partial attendance", rows[0].StatusText)
}

func TestCalculateMonthlyShortDayUsesHourlyRate(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:             "Lin",
		RegistrationType: employee.RegistrationSecurity,
		SecurityPayMode:  "monthly",
		SalaryValue:      decPtr(50000),
		EnrollDate:       timePtr(day(1)),
		Profile:          &employee.SalaryProfile{GroupInsuranceEnabled: boolPtr(false)},
	})

	// daily = 2083, hourly = round(2083/12) = 174. 8 hours < 12 pays
	// hourly: 174 * 8 = 1392.
	rows, _, _, err := f.calculator().Calculate(context.Background(),
		records("Alpha", "Lin", 8, 1), septemberRequest())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1392), rows[0].GrossSalary)
}

func TestCalculateSingleInsuranceChargeAcrossSites(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:               "Wang",
		RegistrationType:   employee.RegistrationSecurity,
		SecurityPayMode:    "monthly",
		SalaryValue:        decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
		SelfPensionEnabled: true,
		EnrollDate:         timePtr(day(1)),
	})

	recs := append(records("Bravo", "Wang", 12, 1, 2, 3),
		records("Alpha", "Wang", 12, 4, 5, 6)...)
	rows, errs, _, err := f.calculator().Calculate(context.Background(), recs, septemberRequest())
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, rows, 2)

	// Output sorted by site; Alpha is the owner row.
	alpha, bravo := rows[0], rows[1]
	require.Equal(t, "Alpha", alpha.Site)
	require.Equal(t, "Bravo", bravo.Site)

	assert.Equal(t, int64(631), alpha.LaborInsuranceEmployee)
	assert.Equal(t, int64(443), alpha.HealthInsuranceEmployee)
	assert.Equal(t, int64(350), alpha.GroupInsurance)
	assert.Equal(t, int64(1728), alpha.SelfPension) // round(28800 * 0.06)
	assert.Equal(t, alpha.GrossSalary-631-443-350-1728, alpha.NetSalary)
	assert.Equal(t, 30, alpha.GroupInsuranceDays)

	assert.Zero(t, bravo.LaborInsuranceEmployee)
	assert.Zero(t, bravo.HealthInsuranceEmployee)
	assert.Zero(t, bravo.GroupInsurance)
	assert.Zero(t, bravo.SelfPension)
	assert.Equal(t, bravo.GrossSalary, bravo.NetSalary)

	assert.Contains(t, alpha.StatusText, "computed across sites (insurance charged once)")
}

func TestCalculateGroupInsuranceProratedByEnrollment(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:               "Liu",
		RegistrationType:   employee.RegistrationSecurity,
		SecurityPayMode:    "monthly",
		SalaryValue:        decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
		EnrollDate:         timePtr(day(16)),
	})

	rows, _, _, err := f.calculator().Calculate(context.Background(),
		records("Alpha", "Liu", 12, 20, 21), septemberRequest())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Enrolled Sep 16: 15 insured days, 350/30*15 = 175.
	assert.Equal(t, int64(175), rows[0].GroupInsurance)
	assert.Equal(t, 15, rows[0].GroupInsuranceDays)
	assert.Equal(t, int64(350), rows[0].GroupInsuranceMonthlyFee)
}

func TestCalculateGroupInsuranceStopsAtCancellation(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:               "Liu",
		RegistrationType:   employee.RegistrationSecurity,
		SecurityPayMode:    "monthly",
		SalaryValue:        decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
		EnrollDate:         timePtr(day(1)),
		CancelDate:         timePtr(day(11)),
	})

	rows, _, _, err := f.calculator().Calculate(context.Background(),
		records("Alpha", "Liu", 12, 2, 3), septemberRequest())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Covered [Sep 1, Sep 11): 10 days, round(350/30*10) = 117.
	assert.Equal(t, int64(117), rows[0].GroupInsurance)
	assert.Equal(t, 10, rows[0].GroupInsuranceDays)
}

func TestCalculateMissingEnrollDateSkipsGroupInsurance(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:               "Liu",
		RegistrationType:   employee.RegistrationSecurity,
		SecurityPayMode:    "monthly",
		SalaryValue:        decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
	})

	rows, errs, _, err := f.calculator().Calculate(context.Background(),
		records("Alpha", "Liu", 12, 2), septemberRequest())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].GroupInsurance)
	require.Len(t, errs, 1)
	assert.Equal(t, payroll.CalcErrMissingEnrollDate, errs[0].Type)
}

func TestCalculateWeeklyAccrual(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:               "Zhao",
		RegistrationType:   employee.RegistrationProperty,
		PropertyPayMode:    "WEEKLY_2H", // legacy spelling still accepted
		WeeklyAmount:       decPtr(10000),
		PropertySalary:     decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
		EnrollDate:         timePtr(day(1)),
	})

	req := septemberRequest()
	req.Category = employee.RegistrationProperty

	// September 2025 touches ISO weeks 36..40: five required weeks. Two
	// hours on one day of each week completes all five.
	recs := records("Alpha", "Zhao", 2, 1, 8, 15, 22, 29)
	rows, errs, _, err := f.calculator().Calculate(context.Background(), recs, req)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(50000), rows[0].GrossSalary)
	assert.Contains(t, rows[0].StatusText, "completed 5/5 weeks")

	// Two completed weeks accrue two weekly amounts.
	rows, _, _, err = f.calculator().Calculate(context.Background(),
		records("Alpha", "Zhao", 2, 1, 8), req)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(20000), rows[0].GrossSalary)
	assert.Contains(t, rows[0].StatusText, "completed 2/5 weeks")

	// Sub-threshold days do not complete a week.
	rows, _, _, err = f.calculator().Calculate(context.Background(),
		records("Alpha", "Zhao", 1.5, 1, 8), req)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0].GrossSalary)
}

func TestCalculateWeeklyAccrualSplitsAcrossSites(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:               "Zhao",
		RegistrationType:   employee.RegistrationProperty,
		PropertyPayMode:    "WEEKLY_ACCRUAL",
		WeeklyAmount:       decPtr(10001),
		PropertySalary:     decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
		EnrollDate:         timePtr(day(1)),
	})

	req := septemberRequest()
	req.Category = employee.RegistrationProperty

	// One completed week worked across two sites: 10001 splits 5001/5000
	// with the remainder to the alphabetically first site.
	recs := append(records("Bravo", "Zhao", 1, 2),
		records("Alpha", "Zhao", 1, 1)...)
	rows, _, _, err := f.calculator().Calculate(context.Background(), recs, req)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	alpha, bravo := rows[0], rows[1]
	require.Equal(t, "Alpha", alpha.Site)
	assert.Equal(t, int64(5001), alpha.GrossSalary)
	assert.Equal(t, int64(5000), bravo.GrossSalary)

	// Insurance on the first positive-gross row only.
	assert.Equal(t, int64(631), alpha.LaborInsuranceEmployee)
	assert.Zero(t, bravo.LaborInsuranceEmployee)
}

func TestCalculatePropertyCompanyModeChargesFirstSite(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:               "Zhou",
		RegistrationType:   employee.RegistrationProperty,
		PropertyPayMode:    "hourly",
		SalaryValue:        decPtr(906),
		InsuredSalaryLevel: intPtr(28800),
		EnrollDate:         timePtr(day(1)),
	})

	req := septemberRequest()
	req.Category = employee.RegistrationProperty

	// Hourly-paid property employee posted to two sites. The positive-
	// gross owner search is reserved for weekly accrual: here the charge
	// stays on the first site in sort order even though it earned nothing.
	recs := append(records("Bravo", "Zhou", 8, 1),
		records("Alpha", "Zhou", 0, 2)...)
	rows, _, _, err := f.calculator().Calculate(context.Background(), recs, req)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	alpha, bravo := rows[0], rows[1]
	require.Equal(t, "Alpha", alpha.Site)
	assert.Equal(t, int64(0), alpha.GrossSalary)
	assert.Equal(t, int64(7248), bravo.GrossSalary)

	assert.Equal(t, int64(631), alpha.LaborInsuranceEmployee)
	assert.Equal(t, int64(443), alpha.HealthInsuranceEmployee)
	assert.Equal(t, int64(350), alpha.GroupInsurance)
	assert.Zero(t, bravo.DeductionsTotal)
	assert.Equal(t, int64(7248), bravo.NetSalary)
}

func TestCalculateMonthlyThreshold(t *testing.T) {
	f := newFixture()
	// Eight non-working days leaves 22 required days in September.
	holidays := map[time.Time]struct{}{}
	for _, d := range []int{6, 7, 13, 14, 20, 21, 27, 28} {
		holidays[day(d)] = struct{}{}
	}
	f.holidays = stubCalendar{dates: holidays}

	f.employees.add(employee.Employee{
		Name:               "Sun",
		RegistrationType:   employee.RegistrationProperty,
		PropertyPayMode:    "MONTHLY_8H_HOLIDAY",
		PropertySalary:     decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
		EnrollDate:         timePtr(day(1)),
	})

	req := septemberRequest()
	req.Category = employee.RegistrationProperty

	// Eleven effective days out of 22: round(50000 * 11/22) = 25000.
	days := []int{1, 2, 3, 4, 5, 8, 9, 10, 11, 12, 15}
	rows, errs, _, err := f.calculator().Calculate(context.Background(),
		records("Alpha", "Sun", 8, days...), req)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(25000), rows[0].GrossSalary)
	assert.Contains(t, rows[0].StatusText, "attended 11/22 days (prorated)")

	// A 7-hour day is not effective.
	rows, _, _, err = f.calculator().Calculate(context.Background(),
		records("Alpha", "Sun", 7, days...), req)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0].GrossSalary)
}

func TestCalculatePropertyZeroGrossCarriesNoDeductions(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:               "Zhao",
		RegistrationType:   employee.RegistrationProperty,
		PropertyPayMode:    "WEEKLY_ACCRUAL",
		PropertySalary:     decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
		EnrollDate:         timePtr(day(1)),
	})

	req := septemberRequest()
	req.Category = employee.RegistrationProperty

	// Weekly amount not configured: zero-gross row with a descriptive
	// status, and the insurance pass is suppressed entirely.
	rows, errs, _, err := f.calculator().Calculate(context.Background(),
		records("Alpha", "Zhao", 8, 1), req)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0].GrossSalary)
	assert.Equal(t, int64(0), rows[0].NetSalary)
	assert.Zero(t, rows[0].DeductionsTotal)
	assert.Contains(t, rows[0].StatusText, "weekly amount not configured")
}

func TestCalculateCrossRegistrationFallback(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:             "Qian",
		RegistrationType: employee.RegistrationSmith,
		SmithPayMode:     "daily",
		SalaryValue:      decPtr(2000),
		EnrollDate:       timePtr(day(1)),
		Profile:          &employee.SalaryProfile{GroupInsuranceEnabled: boolPtr(false)},
	})

	req := septemberRequest()
	req.ExtraCategories = []employee.RegistrationType{employee.RegistrationSmith}

	rows, errs, _, err := f.calculator().Calculate(context.Background(),
		records("Alpha", "Qian", 12, 1), req)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2000), rows[0].GrossSalary)
	assert.Equal(t, employee.RegistrationSmith, rows[0].SourceRegistrationType)
	assert.Contains(t, rows[0].StatusText, "source: smith")

	// missing_insured_level is still reported for the matched record.
	require.Len(t, errs, 1)
	assert.Equal(t, payroll.CalcErrMissingInsuredLevel, errs[0].Type)

	// Without the fallback the name does not resolve, and the problem is
	// reported once no matter how many rows mention it.
	rows, errs, _, err = f.calculator().Calculate(context.Background(),
		records("Alpha", "Qian", 12, 1, 2, 3), septemberRequest())
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.Len(t, errs, 1)
	assert.Equal(t, payroll.CalcErrEmployeeNotFound, errs[0].Type)
	assert.Equal(t, "Qian", errs[0].EmployeeName)
}

func TestCalculateRejectsOutOfRangeHours(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:             "Chen",
		RegistrationType: employee.RegistrationSecurity,
		SecurityPayMode:  "hourly",
		SalaryValue:      decPtr(906),
		EnrollDate:       timePtr(day(1)),
		Profile:          &employee.SalaryProfile{GroupInsuranceEnabled: boolPtr(false)},
	})

	recs := records("Alpha", "Chen", 8, 1)
	recs = append(recs, payroll.AttendanceRecord{Site: "Alpha", Employee: "Chen", Date: day(2), Hours: 25})
	recs = append(recs, payroll.AttendanceRecord{Site: "Alpha", Employee: "Chen", Date: day(3), Hours: -1})

	rows, errs, _, err := f.calculator().Calculate(context.Background(), recs, septemberRequest())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Only the valid day contributes.
	assert.Equal(t, int64(906*8), rows[0].GrossSalary)
	var validation int
	for _, e := range errs {
		if e.Type == payroll.CalcErrValidation {
			validation++
		}
	}
	assert.Equal(t, 2, validation)
}

func TestCalculateUnknownSiteFlagsRow(t *testing.T) {
	f := newFixture()
	f.employees.add(employee.Employee{
		Name:             "Chen",
		RegistrationType: employee.RegistrationSecurity,
		SecurityPayMode:  "hourly",
		SalaryValue:      decPtr(906),
		EnrollDate:       timePtr(day(1)),
		Profile:          &employee.SalaryProfile{GroupInsuranceEnabled: boolPtr(false)},
	})

	rows, errs, _, err := f.calculator().Calculate(context.Background(),
		records("Ghost", "Chen", 8, 1, 2), septemberRequest())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].StatusText, "site not on file")

	var siteErrs int
	for _, e := range errs {
		if e.Type == payroll.CalcErrSiteNotFound {
			siteErrs++
			assert.Equal(t, "Ghost", e.SiteName)
		}
	}
	assert.Equal(t, 1, siteErrs)
}

func TestCalculateMissingBracketTable(t *testing.T) {
	f := newFixture()
	f.brackets.imp = nil
	f.employees.add(employee.Employee{
		Name:               "Lin",
		RegistrationType:   employee.RegistrationSecurity,
		SecurityPayMode:    "monthly",
		SalaryValue:        decPtr(50000),
		InsuredSalaryLevel: intPtr(28800),
		EnrollDate:         timePtr(day(1)),
	})

	rows, errs, _, err := f.calculator().Calculate(context.Background(),
		records("Alpha", "Lin", 12, 1), septemberRequest())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].LaborInsuranceEmployee)
	assert.Zero(t, rows[0].HealthInsuranceEmployee)

	require.Len(t, errs, 1)
	assert.Equal(t, payroll.CalcErrMissingBracket, errs[0].Type)
	require.NotNil(t, errs[0].InsuredSalaryLevel)
	assert.Equal(t, 28800, *errs[0].InsuredSalaryLevel)
}

func TestCalculateInvalidRequest(t *testing.T) {
	f := newFixture()
	_, _, _, err := f.calculator().Calculate(context.Background(), nil,
		payroll.CalculateRequest{Year: 2025, Month: 13, Category: employee.RegistrationSecurity})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, _, _, err = f.calculator().Calculate(context.Background(), nil,
		payroll.CalculateRequest{Year: 2025, Month: 9, Category: "janitorial"})
	assert.ErrorIs(t, err, payroll.ErrInvalidCategory)
}
