package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/taskapp-api/internal/access"
	"github.com/dimitrije/taskapp-api/internal/config"
	"github.com/dimitrije/taskapp-api/internal/database"
	"github.com/dimitrije/taskapp-api/internal/handlers"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/logging"
	authmw "github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/ratelimit"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.IsProduction())

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	catalog, err := i18n.NewCatalog(cfg.DefaultLocale)
	if err != nil {
		log.Fatalf("Failed to load messages: %v", err)
	}
	renderer := respond.New(catalog)

	limiter := ratelimit.New(cfg.RateLimit.RedisURL, log)
	defer limiter.Close()

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	companyService := services.NewCompanyService(db)
	teamService := services.NewTeamService(db)
	listService := services.NewTaskListService(db)
	taskService := services.NewTaskService(db)

	az := access.New(userService, companyService, teamService, listService, taskService)
	guard := authmw.NewGuard(az, renderer)

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService, renderer)
	userHandler := handlers.NewUserHandler(cfg, userService, companyService, teamService, taskService, tokenService, renderer)
	companyHandler := handlers.NewCompanyHandler(companyService, teamService, userService, renderer)
	teamHandler := handlers.NewTeamHandler(teamService, userService, taskService, renderer)
	listHandler := handlers.NewTaskListHandler(listService, taskService, userService, teamService, renderer)
	taskHandler := handlers.NewTaskHandler(taskService, az, renderer)
	healthHandler := handlers.NewHealthHandler(db.Pool)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language", logging.RequestIDHeader},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(logging.Middleware(log))
	app.Use(authmw.Locale(catalog))

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authmw.RateLimit(limiter, "register", cfg.RateLimit.RegisterLimit, cfg.RateLimit.RegisterWindow, renderer, authHandler.Register))
	auth.Post("/login", authmw.RateLimit(limiter, "login", cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, renderer, authHandler.Login))
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	api.Get("/locale", authHandler.Locale)
	api.Get("/health", healthHandler.Check)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService, userService, renderer))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Delete("/users/me", userHandler.DeleteMe)
	protected.Get("/users", guard.Admin(userHandler.List))
	protected.Patch("/users/:id", guard.User(userHandler.Update))
	protected.Put("/users/:id/block", guard.Admin(userHandler.Block))
	protected.Put("/users/:id/unblock", guard.Admin(userHandler.Unblock))
	protected.Delete("/users/:id", guard.Admin(userHandler.Delete))
	protected.Get("/users/:id/tasks", guard.User(userHandler.Tasks))
	protected.Get("/users/:id/companies", guard.User(userHandler.Companies))
	protected.Get("/users/:id/teams", guard.User(userHandler.Teams))

	protected.Post("/companies", guard.Admin(companyHandler.Create))
	protected.Get("/companies", guard.Admin(companyHandler.List))
	protected.Get("/companies/:id", guard.Company(access.CompanyManagerOrAdmin, companyHandler.Get))
	protected.Patch("/companies/:id", guard.Company(access.CompanyManagerOrAdmin, companyHandler.Update))
	protected.Delete("/companies/:id", guard.Company(access.CompanyAdmin, companyHandler.Delete))
	protected.Get("/companies/:id/managers", guard.Company(access.CompanyManagerOrAdmin, companyHandler.Managers))
	protected.Post("/companies/:id/managers", guard.Company(access.CompanyManagerOrAdmin, companyHandler.AddManager))
	protected.Delete("/companies/:id/managers/:userId", guard.Company(access.CompanyManagerOrAdmin, companyHandler.RemoveManager))
	protected.Get("/companies/:id/teams", guard.Company(access.CompanyManagerOrAdmin, companyHandler.Teams))
	protected.Post("/companies/:id/teams", guard.Company(access.CompanyManagerOrAdmin, companyHandler.CreateTeam))

	protected.Get("/teams/:id", guard.Team(access.TeamRead, teamHandler.Get))
	protected.Patch("/teams/:id", guard.Team(access.TeamManage, teamHandler.Update))
	protected.Delete("/teams/:id", guard.Team(access.TeamAdminister, teamHandler.Delete))
	protected.Get("/teams/:id/participants", guard.Team(access.TeamRead, teamHandler.Participants))
	protected.Post("/teams/:id/participants", guard.Team(access.TeamManage, teamHandler.AddParticipant))
	protected.Delete("/teams/:id/participants/:userId", guard.Team(access.TeamManage, teamHandler.RemoveParticipant))
	protected.Post("/teams/:id/participants/:userId/role", guard.Team(access.TeamManage, teamHandler.ToggleRole))
	protected.Get("/teams/:id/tasks", guard.Team(access.TeamRead, teamHandler.Tasks))

	protected.Get("/lists/me", listHandler.Me)
	protected.Post("/lists", guard.Admin(listHandler.Create))
	protected.Get("/lists/:id", guard.List(false, listHandler.Get))

	protected.Post("/tasks", taskHandler.Create)
	protected.Get("/tasks/:id", guard.Task(access.TaskView, taskHandler.Get))
	protected.Patch("/tasks/:id", guard.Task(access.TaskEdit, taskHandler.Update))
	protected.Post("/tasks/:id/advance", guard.Task(access.TaskAdvance, taskHandler.Advance))
	protected.Delete("/tasks/:id", guard.Task(access.TaskDelete, taskHandler.Delete))
	protected.Get("/tasks/:id/persons", guard.Task(access.TaskView, taskHandler.Persons))
	protected.Post("/tasks/:id/persons", guard.Task(access.TaskAssign, taskHandler.Assign))
	protected.Delete("/tasks/:id/persons/:userId", guard.Task(access.TaskAssign, taskHandler.Unassign))

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			n, err := tokenService.CleanupExpired(context.Background())
			if err != nil {
				log.WithError(err).Warn("refresh token cleanup failed")
				continue
			}
			log.WithField("removed", n).Debug("expired refresh tokens removed")
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Infof("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
}
