// Package timesheet turns uploaded attendance spreadsheets into a flat list
// of per-day hour records. Two layouts are auto-detected: a multi-sheet
// calendar matrix (one sheet per site, day-number columns, paired day/night
// rows per employee) and a flat one-row-per-record table with alias-mapped
// headers. Parsing is deliberately lenient: manually edited files produce
// warnings and zeroed cells, not hard failures.
package timesheet

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupportedFormat is returned when no known layout yields any record.
// The wrapped message carries a human-readable diagnostic.
var ErrUnsupportedFormat = errors.New("unsupported time sheet format")

// Record is one employee's hours at one site on one calendar day.
type Record struct {
	Site     string
	Employee string
	Date     time.Time
	Hours    float64
}

// UnspecifiedSite labels matrix sheets that carry no site name anywhere.
const UnspecifiedSite = "(unspecified site)"

var supportedExtensions = map[string]bool{
	"xlsx": true,
	"xls":  true,
	"ods":  true,
}

// Header aliases for the flat layout, matched case-insensitively. The
// Chinese spellings keep legacy exports parseable.
var columnAliases = map[string][]string{
	"site":     {"site", "site_name", "location", "案場", "案場名稱"},
	"employee": {"employee", "employee_name", "name", "員工", "員工姓名", "姓名"},
	"date":     {"date", "work_date", "日期"},
	"hours":    {"hours", "worked_hours", "工時"},
}

var headerCategoryAliases = []string{"category", "類別"}
var headerNameAliases = []string{"name", "姓名"}
var headerDateAliases = []string{"date", "日期"}

var shiftDayAliases = map[string]bool{"day": true, "日": true}
var shiftNightAliases = map[string]bool{"night": true, "夜": true}

var sheetNamePrefix = regexp.MustCompile(`^\d+_?\s*(.*)$`)

const headerDiagnostic = "header not found: category/name/date/1..31"

// Parse converts spreadsheet content into attendance records. When year and
// month are non-zero the multi-sheet calendar matrix layout is tried first,
// then the flat table. Unparseable sheets contribute warnings; only a file
// with no parseable layout at all fails, with ErrUnsupportedFormat.
func Parse(content []byte, filename string, year, month int) ([]Record, []string, error) {
	ext := strings.ToLower(strings.TrimPrefix(extension(filename), "."))
	if !supportedExtensions[ext] {
		return nil, nil, fmt.Errorf("%w: unsupported file extension %q (want xlsx/xls/ods)", ErrUnsupportedFormat, ext)
	}

	sheets, err := readSheets(content, ext)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	var warnings []string

	if year > 0 && month > 0 {
		var records []Record
		for _, sheet := range sheets {
			if len(sheet.rows) == 0 {
				continue
			}
			recs, warns := parseCalendarMatrixSheet(sheet.rows, year, month, sheet.name)
			warnings = append(warnings, warns...)
			records = append(records, recs...)
		}
		if len(records) > 0 {
			return records, warnings, nil
		}
	}

	// Flat one-row-per-record table on the first sheet.
	if len(sheets) > 0 {
		if records := parseFlatTable(sheets[0].rows); len(records) > 0 {
			return records, nil, nil
		}
	}

	return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, headerDiagnostic)
}

func extension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}

func cellStr(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// cellFloat coerces a cell to a number, defaulting to 0 so hand-edited
// hour cells never abort a parse.
func cellFloat(row []string, idx int) float64 {
	s := cellStr(row, idx)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func matchesAny(s string, aliases []string) bool {
	lower := strings.ToLower(s)
	for _, a := range aliases {
		if lower == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// siteFromSheetName strips a numeric prefix from a sheet title,
// e.g. "01_Seattle" -> "Seattle". Empty result means no site name.
func siteFromSheetName(sheetName string) string {
	s := strings.TrimSpace(sheetName)
	if s == "" {
		return ""
	}
	if m := sheetNamePrefix.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// isTwoDigitLabel reports whether a cell looks like the "01"/"02" site tag
// used in the matrix layout's preamble rows.
func isTwoDigitLabel(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type shiftRow struct {
	shift string
	cells []string
}

func parseCalendarMatrixSheet(rows [][]string, year, month int, sheetName string) ([]Record, []string) {
	warnPrefix := fmt.Sprintf("sheet %q: ", sheetName)
	if len(rows) < 3 {
		return nil, []string{warnPrefix + headerDiagnostic}
	}

	headerRow := -1
	dayColumns := map[int]int{}
	for i, row := range rows {
		if !matchesAny(cellStr(row, 0), headerCategoryAliases) ||
			!matchesAny(cellStr(row, 1), headerNameAliases) ||
			!matchesAny(cellStr(row, 2), headerDateAliases) {
			continue
		}
		dayColumns = map[int]int{}
		for j := 3; j < len(row) && j < 3+35; j++ {
			v := cellStr(row, j)
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				if fv, ferr := strconv.ParseFloat(v, 64); ferr == nil {
					n = int(fv)
				} else {
					continue
				}
			}
			if n >= 1 && n <= 31 {
				dayColumns[n] = j
			}
		}
		if len(dayColumns) == 0 {
			return nil, []string{warnPrefix + "no day-number columns (1..31)"}
		}
		headerRow = i
		break
	}
	if headerRow < 0 {
		return nil, []string{warnPrefix + headerDiagnostic}
	}

	// Site name: sheet title prefix wins, then a two-digit-label row in the
	// preamble above the header.
	site := siteFromSheetName(sheetName)
	if site == "" {
		for r := headerRow - 1; r >= 0; r-- {
			if isTwoDigitLabel(cellStr(rows[r], 0)) && cellStr(rows[r], 1) != "" {
				site = cellStr(rows[r], 1)
				break
			}
		}
	}
	if site == "" {
		site = UnspecifiedSite
	}

	dataStart := headerRow + 2
	if dataStart >= len(rows) {
		return nil, []string{warnPrefix + "no day/night employee rows"}
	}

	// Merged cells leave blanks: forward-fill category and name columns,
	// then keep only the day/night shift rows.
	employeeRows := map[string][]shiftRow{}
	var employeeOrder []string
	prevCategory, prevName := "", ""
	for _, row := range rows[dataStart:] {
		category := cellStr(row, 0)
		if category == "" {
			category = prevCategory
		}
		prevCategory = category
		name := cellStr(row, 1)
		if name == "" {
			name = prevName
		}
		prevName = name

		shift := strings.ToLower(cellStr(row, 2))
		if !shiftDayAliases[shift] && !shiftNightAliases[shift] {
			continue
		}
		if name == "" {
			continue
		}
		if _, ok := employeeRows[name]; !ok {
			employeeOrder = append(employeeOrder, name)
		}
		employeeRows[name] = append(employeeRows[name], shiftRow{shift: shift, cells: row})
	}
	if len(employeeRows) == 0 {
		return nil, []string{warnPrefix + "no day/night employee rows"}
	}

	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	var out []Record
	for _, name := range employeeOrder {
		for day := 1; day <= lastDay; day++ {
			col, ok := dayColumns[day]
			if !ok {
				continue
			}
			hours := 0.0
			for _, sr := range employeeRows[name] {
				hours += cellFloat(sr.cells, col)
			}
			out = append(out, Record{
				Site:     site,
				Employee: name,
				Date:     time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
				Hours:    hours,
			})
		}
	}
	return out, nil
}

func parseFlatTable(rows [][]string) []Record {
	if len(rows) < 2 {
		return nil
	}

	colFor := map[string]int{}
	for field, aliases := range columnAliases {
		found := -1
		for j := range rows[0] {
			if matchesAny(cellStr(rows[0], j), aliases) {
				found = j
				break
			}
		}
		if found < 0 {
			return nil
		}
		colFor[field] = found
	}

	var out []Record
	for _, row := range rows[1:] {
		site := cellStr(row, colFor["site"])
		employee := cellStr(row, colFor["employee"])
		dateCell := cellStr(row, colFor["date"])
		hoursCell := cellStr(row, colFor["hours"])
		if site == "" && employee == "" && dateCell == "" && hoursCell == "" {
			continue
		}
		date, ok := parseDateCell(dateCell)
		if !ok {
			continue
		}
		out = append(out, Record{
			Site:     site,
			Employee: employee,
			Date:     date,
			Hours:    cellFloat(row, colFor["hours"]),
		})
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// excelEpoch is the serial-number day zero used by xlsx files.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

func parseDateCell(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return t, true
	}
	return time.Time{}, false
}
