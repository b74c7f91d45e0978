package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"

	"github.com/Bryantbrewster/StrengthJournal/internal/config"
	"github.com/Bryantbrewster/StrengthJournal/internal/database"
	"github.com/Bryantbrewster/StrengthJournal/internal/handlers"
	"github.com/Bryantbrewster/StrengthJournal/internal/middleware"
	"github.com/Bryantbrewster/StrengthJournal/internal/views"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app with embedded views
	engine := html.NewFileSystem(http.FS(views.Files), ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("strengthjournal")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Cookie session store; identity and flash messages live here
	store := session.New(session.Config{
		KeyLookup:      "cookie:" + cfg.SessionCookieName,
		CookieHTTPOnly: true,
	})

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Store: store}
	workoutHandler := &handlers.WorkoutHandler{DB: db, Store: store}
	routineHandler := &handlers.RoutineHandler{DB: db, Store: store}
	dashboardHandler := &handlers.DashboardHandler{DB: db, Store: store, Cfg: cfg}

	requireUser := middleware.RequireUser(store)

	// Public routes
	app.Get("/", authHandler.Home)
	app.Get("/create-account", authHandler.ShowCreateAccount)
	app.Post("/create-account", authHandler.CreateAccount)
	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)
	app.Get("/health", dashboardHandler.Health)

	// Workout routes
	app.Post("/", requireUser, workoutHandler.RecordCompleted)
	app.Get("/choose-a-workout", requireUser, workoutHandler.ChooseWorkout)
	app.Post("/enter-your-stats", requireUser, workoutHandler.EnterYourStats)

	// Routine builder / editor routes
	app.Get("/new-routine", requireUser, routineHandler.NewRoutinePage)
	app.Post("/new-routine", requireUser, routineHandler.AddExercise)
	app.Post("/new_routine", requireUser, routineHandler.SubmitNewRoutine)
	app.Get("/delete", requireUser, routineHandler.DeleteDuringCreation)
	app.Get("/edit-routine", requireUser, routineHandler.DeleteFromRoutine)
	app.Get("/delete-from-routine", requireUser, routineHandler.DeleteFromRoutine)
	app.Post("/save", requireUser, routineHandler.SaveRoutineEdits)

	// Dashboard routes
	app.Get("/dashboard", requireUser, dashboardHandler.Dashboard)
	app.Get("/routine-dashboard", requireUser, dashboardHandler.RoutineDashboard)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler renders errors as a plain page rather than leaking
// stack traces or JSON at form-posting browsers.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if renderErr := c.Status(code).Render("error", fiber.Map{
		"Status":  code,
		"Message": message,
	}); renderErr != nil {
		return c.Status(code).SendString(message)
	}
	return nil
}
