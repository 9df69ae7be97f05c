package payroll

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/guardsite/payroll-backend-go/internal/domain/insurance"
	"github.com/guardsite/payroll-backend-go/internal/domain/payroll"
	"github.com/guardsite/payroll-backend-go/internal/pkg/proration"
)

// Statutory self-managed pension: 6% of the insured salary level.
const selfPensionRate = 0.06

// deductionSet holds one employee's monthly deductions. Charged on exactly
// one result row per employee; every other row carries zeros.
type deductionSet struct {
	labor       int64
	health      int64
	group       int64
	selfPension int64

	groupDays       int
	groupMonthlyFee int64
}

func (d deductionSet) total() int64 {
	return d.labor + d.health + d.group + d.selfPension
}

// bracketContext caches the latest bracket import and per-level lookups for
// the duration of one calculation run.
type bracketContext struct {
	available bool
	importID  string
	byLevel   map[int]insurance.Bracket
	missing   map[int]bool
}

func (c *Calculator) loadBracketContext(ctx context.Context) (*bracketContext, error) {
	bc := &bracketContext{
		byLevel: map[int]insurance.Bracket{},
		missing: map[int]bool{},
	}
	imp, err := c.brackets.LatestImport(ctx)
	if err != nil {
		if errors.Is(err, insurance.ErrNoBracketImport) {
			return bc, nil
		}
		return nil, fmt.Errorf("load bracket import: %w", err)
	}
	bc.available = true
	bc.importID = imp.ID
	return bc, nil
}

func (bc *bracketContext) bracket(
	ctx context.Context,
	repo insurance.BracketRepository,
	level int,
) (insurance.Bracket, bool, error) {
	if b, ok := bc.byLevel[level]; ok {
		return b, true, nil
	}
	if bc.missing[level] {
		return insurance.Bracket{}, false, nil
	}
	b, err := repo.BracketByLevel(ctx, bc.importID, level)
	if err != nil {
		if errors.Is(err, insurance.ErrBracketNotFound) {
			bc.missing[level] = true
			return insurance.Bracket{}, false, nil
		}
		return insurance.Bracket{}, false, fmt.Errorf("lookup bracket level %d: %w", level, err)
	}
	bc.byLevel[level] = b
	return b, true, nil
}

// applyInsurance turns the per-site gross rows into final result rows:
// property accrual modes are resolved across the employee's sites, then
// labor, health, group insurance and self-pension are charged once per
// employee on the owner row.
func (c *Calculator) applyInsurance(
	ctx context.Context,
	siteRows []*siteRow,
	req payroll.CalculateRequest,
	ec *errorCollector,
) ([]payroll.ResultRow, error) {
	bc, err := c.loadBracketContext(ctx)
	if err != nil {
		return nil, err
	}

	// siteRows arrive sorted by (site, employee); group by employee while
	// keeping each employee's rows in site order.
	byEmployee := map[string][]*siteRow{}
	var names []string
	for _, sr := range siteRows {
		if _, ok := byEmployee[sr.employee]; !ok {
			names = append(names, sr.employee)
		}
		byEmployee[sr.employee] = append(byEmployee[sr.employee], sr)
	}

	var out []payroll.ResultRow
	for _, name := range names {
		rows := byEmployee[name]
		cfg := rows[0].cfg

		if cfg.PropertySpecial() {
			c.resolvePropertyGross(name, rows, cfg, req)
		}

		hasGross := false
		for _, sr := range rows {
			if sr.gross > 0 {
				hasGross = true
				break
			}
		}
		// A property employee with zero gross for the month carries no
		// deductions at all, and the missing-level check is suppressed.
		propertyZero := req.Category == employee.RegistrationProperty && !hasGross

		var ded deductionSet
		if !propertyZero {
			ded, err = c.employeeDeductions(ctx, name, cfg, rows[0].enrollDate, rows[0].cancelDate, req, bc, ec)
			if err != nil {
				return nil, err
			}
		}

		// Deductions land on the first row in site order, except under
		// weekly accrual where the first site with a positive share owns
		// the charge.
		ownerIdx := 0
		if cfg.PropertyPayMode == payroll.PropertyModeWeeklyAccrual {
			for i, sr := range rows {
				if sr.gross > 0 {
					ownerIdx = i
					break
				}
			}
		}

		for i, sr := range rows {
			st := sr.status
			st.CrossSite = len(rows) > 1
			if sr.registration != "" && sr.registration != req.Category {
				st.SourceRegistration = sr.registration
			}

			row := payroll.ResultRow{
				Site:                   sr.site,
				Employee:               name,
				PayType:                cfg.PayType,
				TotalHours:             sr.totalHours,
				GrossSalary:            sr.gross,
				Status:                 st,
				SourceRegistrationType: sr.registration,
				EnrollDate:             sr.enrollDate,
			}
			if i == ownerIdx && !propertyZero {
				row.LaborInsuranceEmployee = ded.labor
				row.HealthInsuranceEmployee = ded.health
				row.GroupInsurance = ded.group
				row.SelfPension = ded.selfPension
				row.GroupInsuranceDays = ded.groupDays
				row.GroupInsuranceMonthlyFee = ded.groupMonthlyFee
			}
			row.DeductionsTotal = row.LaborInsuranceEmployee + row.HealthInsuranceEmployee +
				row.GroupInsurance + row.SelfPension
			row.NetSalary = row.GrossSalary - row.DeductionsTotal
			row.StatusText = st.String()
			out = append(out, row)
		}
	}
	return out, nil
}

// resolvePropertyGross fills in gross and status for the rows of one
// property-accrual employee, merging hours across their sites.
func (c *Calculator) resolvePropertyGross(
	name string,
	rows []*siteRow,
	cfg payroll.PayModeConfig,
	req payroll.CalculateRequest,
) {
	perSite := make(map[string]map[time.Time]float64, len(rows))
	merged := map[time.Time]float64{}
	for _, sr := range rows {
		perSite[sr.site] = sr.dailyHours
		for d, hours := range sr.dailyHours {
			merged[d] += hours
		}
	}

	var status payroll.AttendanceStatus
	switch cfg.PropertyPayMode {
	case payroll.PropertyModeWeeklyAccrual:
		split, st := weeklyAccrualSplit(cfg, perSite, req.Year, req.Month)
		status = st
		for _, sr := range rows {
			sr.gross = split[sr.site]
		}
	case payroll.PropertyModeMonthlyThreshold:
		gross, st := monthlyThresholdGross(cfg, merged, req.Year, req.Month,
			c.holidays.DatesInMonth(req.Year, req.Month))
		status = st
		for i, sr := range rows {
			if i == 0 {
				sr.gross = gross
			} else {
				sr.gross = 0
			}
		}
	default:
		status = payroll.AttendanceStatus{Kind: payroll.StatusMissingPropertyMode}
		for _, sr := range rows {
			sr.gross = 0
		}
	}

	switch status.Kind {
	case payroll.StatusMissingPropertySalary, payroll.StatusMissingWeeklyAmount, payroll.StatusMissingPropertyMode:
		c.logger.Warn("property pay configuration incomplete",
			"employee", name, "status", string(status.Kind))
	}

	for _, sr := range rows {
		siteFlag := sr.status.SiteNotOnFile
		sr.status = status
		sr.status.SiteNotOnFile = siteFlag
	}
}

// employeeDeductions computes the once-per-employee deduction set.
// Recoverable gaps (unknown level, missing bracket, missing enrollment
// date) land in the error list and the affected component stays zero.
func (c *Calculator) employeeDeductions(
	ctx context.Context,
	name string,
	cfg payroll.PayModeConfig,
	enrollDate, cancelDate *time.Time,
	req payroll.CalculateRequest,
	bc *bracketContext,
	ec *errorCollector,
) (deductionSet, error) {
	var ded deductionSet

	level := cfg.InsuredSalaryLevel
	if level == nil {
		ec.addOnce(name, payroll.CalcError{
			Type:         payroll.CalcErrMissingInsuredLevel,
			EmployeeName: name,
			Message:      fmt.Sprintf("employee %q has no insured salary level", name),
		})
	} else if !bc.available {
		ec.addOnce(strconv.Itoa(*level), payroll.CalcError{
			Type:               payroll.CalcErrMissingBracket,
			EmployeeName:       name,
			InsuredSalaryLevel: level,
			Message:            "no insurance bracket table imported",
		})
	} else {
		b, ok, err := bc.bracket(ctx, c.brackets, *level)
		if err != nil {
			return ded, err
		}
		if !ok {
			ec.addOnce(strconv.Itoa(*level), payroll.CalcError{
				Type:               payroll.CalcErrMissingBracket,
				EmployeeName:       name,
				InsuredSalaryLevel: level,
				Message:            fmt.Sprintf("insured salary level %d not in bracket table", *level),
			})
		} else {
			ded.labor = roundDecimal(b.LaborEmployee)
			ded.health = roundDecimal(b.HealthEmployee)
		}
	}

	if cfg.GroupInsuranceEnabled {
		if enrollDate == nil {
			ec.addOnce(name, payroll.CalcError{
				Type:         payroll.CalcErrMissingEnrollDate,
				EmployeeName: name,
				Message:      fmt.Sprintf("employee %q has no enrollment date; group insurance skipped", name),
			})
		} else {
			days, err := proration.InsuredDaysInMonth(req.Year, req.Month, *enrollDate, cancelDate)
			if err != nil {
				return ded, err
			}
			fee, err := proration.ProratedMonthlyFee(cfg.GroupInsuranceFee, days, req.Year, req.Month)
			if err != nil {
				return ded, err
			}
			ded.group = roundDecimal(fee)
			ded.groupDays = days
			ded.groupMonthlyFee = roundDecimal(cfg.GroupInsuranceFee)
		}
	}

	if cfg.SelfPensionEnabled && level != nil {
		ded.selfPension = roundHalfUp(float64(*level) * selfPensionRate)
	}

	return ded, nil
}
