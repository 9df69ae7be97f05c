package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/guardsite/payroll-backend-go/internal/domain/employee"
	"github.com/guardsite/payroll-backend-go/internal/domain/payroll"
	"github.com/guardsite/payroll-backend-go/internal/handler/http/response"
)

const maxUploadBytes = 20 << 20

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	Results(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Calculate accepts a multipart form with the time-sheet file plus the
// period and category fields, runs the engine and returns rows, errors and
// warnings together. commit=true additionally persists the rows.
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	req, details := calculateRequestFromForm(r)
	if details != nil {
		response.BadRequest(w, "Invalid calculation parameters", details)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Time sheet file is required", map[string]string{"file": "missing"})
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}

	result, err := h.payrollService.CalculateFromFile(r.Context(), content, fileHeader.Filename, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Results returns the committed rows for one period.
func (h *payrollHandlerImpl) Results(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Invalid year", map[string]string{"year": "must be an integer"})
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "Invalid month", map[string]string{"month": "must be an integer"})
		return
	}
	category := employee.RegistrationType(r.URL.Query().Get("category"))

	rows, err := h.payrollService.Results(r.Context(), year, month, category)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

func calculateRequestFromForm(r *http.Request) (payroll.CalculateRequest, map[string]string) {
	details := map[string]string{}

	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil {
		details["year"] = "must be an integer"
	}
	month, err := strconv.Atoi(r.FormValue("month"))
	if err != nil {
		details["month"] = "must be an integer"
	}

	category := employee.RegistrationType(strings.TrimSpace(r.FormValue("category")))
	if !category.Valid() {
		details["category"] = "unknown category"
	}

	var extras []employee.RegistrationType
	if raw := strings.TrimSpace(r.FormValue("extra_categories")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			extras = append(extras, employee.RegistrationType(strings.TrimSpace(part)))
		}
	}

	commit := false
	if raw := r.FormValue("commit"); raw != "" {
		commit, err = strconv.ParseBool(raw)
		if err != nil {
			details["commit"] = "must be a boolean"
		}
	}

	if len(details) > 0 {
		return payroll.CalculateRequest{}, details
	}

	return payroll.CalculateRequest{
		Year:            year,
		Month:           month,
		Category:        category,
		ExtraCategories: extras,
		TraceEmployee:   strings.TrimSpace(r.FormValue("trace_employee")),
		Commit:          commit,
	}, nil
}
