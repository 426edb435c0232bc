package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gardops/gardops-backend-go/internal/config"
	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/gardops/gardops-backend-go/internal/fixtures"
	appHTTP "github.com/gardops/gardops-backend-go/internal/handler/http"
	"github.com/gardops/gardops-backend-go/internal/pkg/database"
	"github.com/gardops/gardops-backend-go/internal/pkg/jwt"
	"github.com/gardops/gardops-backend-go/internal/repository/postgresql"
	authService "github.com/gardops/gardops-backend-go/internal/service/auth"
	cpqService "github.com/gardops/gardops-backend-go/internal/service/cpq"
	payrollService "github.com/gardops/gardops-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	parameterRepo := postgresql.NewParameterRepository(db)
	referenceRepo := postgresql.NewReferenceRepository(db)
	simulationRepo := postgresql.NewSimulationRepository(db)
	quoteRepo := postgresql.NewQuoteRepository(db)

	if err := seedParameters(parameterRepo); err != nil {
		log.Fatal("Failed to seed parameter versions:", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	payrollSvc := payrollService.NewPayrollService(parameterRepo, referenceRepo, simulationRepo, cfg.Reference)
	cpqSvc := cpqService.NewCpqService(db, quoteRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	cpqHandler := appHTTP.NewCpqHandler(cpqSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		payrollHandler,
		cpqHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// seedParameters publishes the default legal parameter set when the
// database has no version yet. Existing versions are never touched.
func seedParameters(repo params.ParameterRepository) error {
	ctx := context.Background()
	_, err := repo.GetVersionForDate(ctx, time.Now().UTC())
	if err == nil {
		return nil
	}
	if !errors.Is(err, params.ErrParameterVersionNotFound) {
		return err
	}

	_, err = repo.CreateVersion(ctx, fixtures.DefaultParameterVersion())
	return err
}
