package http

import (
	"net/http"
	"strconv"

	"github.com/guardsite/payroll-backend-go/internal/domain/insurance"
	"github.com/guardsite/payroll-backend-go/internal/handler/http/response"
)

type InsuranceHandler interface {
	ListBrackets(w http.ResponseWriter, r *http.Request)
	SalaryToLevel(w http.ResponseWriter, r *http.Request)
}

type insuranceHandlerImpl struct {
	bracketService insurance.BracketService
}

func NewInsuranceHandler(bracketService insurance.BracketService) InsuranceHandler {
	return &insuranceHandlerImpl{bracketService: bracketService}
}

// ListBrackets returns the salary ranges derived from the latest import.
func (h *insuranceHandlerImpl) ListBrackets(w http.ResponseWriter, r *http.Request) {
	ranges, err := h.bracketService.Ranges(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, ranges)
}

// SalaryToLevel maps an actual salary onto its insured bracket level.
func (h *insuranceHandlerImpl) SalaryToLevel(w http.ResponseWriter, r *http.Request) {
	salary, err := strconv.Atoi(r.URL.Query().Get("salary"))
	if err != nil || salary < 0 {
		response.BadRequest(w, "Invalid salary", map[string]string{"salary": "must be a non-negative integer"})
		return
	}

	level, err := h.bracketService.LevelForSalary(r.Context(), salary)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"salary": salary, "level": level})
}
