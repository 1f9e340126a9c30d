package main

import (
	"context"
	goerrors "errors"
	"log"
	"net/http"
	"os"

	_ "github.com/jane-devs/final-management/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/access"
	"github.com/jane-devs/final-management/internal/auth"
	"github.com/jane-devs/final-management/internal/cache"
	"github.com/jane-devs/final-management/internal/config"
	"github.com/jane-devs/final-management/internal/db"
	"github.com/jane-devs/final-management/internal/handler"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
	"github.com/jane-devs/final-management/internal/router"
	"github.com/jane-devs/final-management/internal/service"
)

// @title Team Management API
// @version 1.0
// @description Team management API with tasks, meetings, peer evaluations, and a shared calendar.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Evaluation{},
			&model.Comment{},
			"meeting_participants",
			&model.Meeting{},
			&model.Task{},
			&model.Membership{},
			&model.Team{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Team{},
		&model.Membership{},
		&model.Task{},
		&model.Meeting{},
		&model.Comment{},
		&model.Evaluation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)
	membershipRepo := repository.NewMembershipRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	meetingRepo := repository.NewMeetingRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	evaluationRepo := repository.NewEvaluationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	membershipService := service.NewMembershipService(membershipRepo, teamRepo, userRepo)
	evaluator := access.NewEvaluator(membershipService)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	teamService := service.NewTeamService(teamRepo, membershipService, evaluator)
	taskService := service.NewTaskService(taskRepo, membershipService, evaluator)
	meetingService := service.NewMeetingService(meetingRepo, userRepo, membershipService, evaluator)
	commentService := service.NewCommentService(commentRepo, taskRepo, evaluator)
	evaluationService := service.NewEvaluationService(evaluationRepo, taskRepo, membershipService, evaluator)
	calendarService := service.NewCalendarService(taskRepo, meetingRepo, membershipService)

	// Ensure the configured superuser account exists
	if err := ensureSuperuser(context.Background(), userRepo, cfg); err != nil {
		log.Fatalf("superuser init: %v", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	teamHandler := handler.NewTeamHandler(teamService)
	taskHandler := handler.NewTaskHandler(taskService)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	commentHandler := handler.NewCommentHandler(commentService)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService)
	calendarHandler := handler.NewCalendarHandler(calendarService)

	// Register routes
	router.Register(
		e,
		cfg,
		userService,
		authHandler,
		userHandler,
		teamHandler,
		taskHandler,
		meetingHandler,
		commentHandler,
		evaluationHandler,
		calendarHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// ensureSuperuser creates the admin account from config if it does not exist yet.
func ensureSuperuser(ctx context.Context, users repository.UserRepository, cfg *config.Config) error {
	if cfg.AdminEmail == "" {
		return nil
	}
	_, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		FirstName:    cfg.AdminFirstName,
		LastName:     cfg.AdminLastName,
		IsAdmin:      true,
		Active:       true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("superuser %s created", cfg.AdminEmail)
	return nil
}
