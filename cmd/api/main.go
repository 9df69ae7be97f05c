package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/guardsite/payroll-backend-go/internal/config"
	appHTTP "github.com/guardsite/payroll-backend-go/internal/handler/http"
	"github.com/guardsite/payroll-backend-go/internal/pkg/database"
	"github.com/guardsite/payroll-backend-go/internal/pkg/holiday"
	"github.com/guardsite/payroll-backend-go/internal/repository/postgresql"
	insuranceService "github.com/guardsite/payroll-backend-go/internal/service/insurance"
	payrollService "github.com/guardsite/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "guardsite-payroll"),
		slog.String("env", cfg.App.Env),
	)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	bracketRepo := postgresql.NewBracketRepository(db)
	resultRepo := postgresql.NewPayrollResultRepository(db)

	calendar := holiday.NewCalendar(cfg.Payroll.PublicHolidays)
	calculator := payrollService.NewCalculator(
		employeeRepo,
		siteRepo,
		bracketRepo,
		calendar,
		cfg.Payroll.GroupInsuranceMonthlyFee,
		logger,
	)
	payrollSvc := payrollService.NewService(calculator, resultRepo, logger)
	bracketSvc := insuranceService.NewService(bracketRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	insuranceHandler := appHTTP.NewInsuranceHandler(bracketSvc)

	router := appHTTP.NewRouter(cfg.App.Env, payrollHandler, insuranceHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
