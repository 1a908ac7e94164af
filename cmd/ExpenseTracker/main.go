package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	database "github.com/jkalinowski/ExpenseTracker/db"
	"github.com/jkalinowski/ExpenseTracker/internal/auth"
	"github.com/jkalinowski/ExpenseTracker/internal/finance/application"
	"github.com/jkalinowski/ExpenseTracker/internal/finance/infrastructure"
	"github.com/jkalinowski/ExpenseTracker/internal/finance/interfaces"
	"github.com/jkalinowski/ExpenseTracker/internal/notification"
	"github.com/jkalinowski/ExpenseTracker/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success":    false,
		"statusCode": status,
		"message":    message,
	})
}

type config struct {
	port              string
	nameScope         application.NameScope
	allowPayloadOwner bool
	reconcileSchedule string
}

func loadConfig() config {
	cfg := config{
		port:              "8080",
		nameScope:         application.NameScopeOwner,
		reconcileSchedule: "@every 6h",
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.port = port
	}
	if scope := os.Getenv("CATEGORY_NAME_SCOPE"); scope != "" {
		switch application.NameScope(scope) {
		case application.NameScopeOwner, application.NameScopeGlobal:
			cfg.nameScope = application.NameScope(scope)
		default:
			log.Printf("Unknown CATEGORY_NAME_SCOPE %q, using %q", scope, cfg.nameScope)
		}
	}
	if raw := os.Getenv("ALLOW_PAYLOAD_OWNER"); raw != "" {
		allow, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("Invalid ALLOW_PAYLOAD_OWNER %q, using false", raw)
		} else {
			cfg.allowPayloadOwner = allow
		}
	}
	if schedule := os.Getenv("TOTALS_RECONCILE_SCHEDULE"); schedule != "" {
		cfg.reconcileSchedule = schedule
	}
	return cfg
}

type Server struct {
	router              *http.ServeMux
	jwtManager          auth.JWTManagerInterface
	authHandler         *auth.Handler
	userHandler         *user.Handler
	categoryHandler     *interfaces.CategoryHandler
	expenseHandler      *interfaces.ExpenseHandler
	notificationHandler *notification.Handler
	allowPayloadOwner   bool
}

func NewServer(
	jwtManager auth.JWTManagerInterface,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	categoryHandler *interfaces.CategoryHandler,
	expenseHandler *interfaces.ExpenseHandler,
	notificationHandler *notification.Handler,
	allowPayloadOwner bool,
) *Server {
	return &Server{
		router:              http.NewServeMux(),
		jwtManager:          jwtManager,
		authHandler:         authHandler,
		userHandler:         userHandler,
		categoryHandler:     categoryHandler,
		expenseHandler:      expenseHandler,
		notificationHandler: notificationHandler,
		allowPayloadOwner:   allowPayloadOwner,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) protected(handler http.HandlerFunc) http.HandlerFunc {
	return auth.JWTAccessTokenMiddleware(s.jwtManager, handler)
}

func (s *Server) RegisterRoutes() {
	router := http.NewServeMux()

	// Public routes
	router.Handle("POST /api/users/register", http.HandlerFunc(s.userHandler.HandleRegister))
	router.Handle("POST /api/users/login", http.HandlerFunc(s.authHandler.HandleLogin))
	router.Handle("POST /api/users/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	router.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Refresh token route (refresh_token cookie, not access token)
	router.Handle("PUT /api/refresh/token", auth.JWTRefreshTokenMiddleware(s.jwtManager, s.authHandler.HandleRefreshToken))

	// User routes
	router.Handle("GET /api/users/profile", s.protected(s.userHandler.HandleGetUserProfile))
	router.Handle("PUT /api/users/{id}", s.protected(s.userHandler.HandleUpdateUser))
	router.Handle("DELETE /api/users/{id}", s.protected(s.userHandler.HandleDeleteUser))

	// Category routes
	router.Handle("POST /api/categories", s.protected(s.categoryHandler.CreateCategory))
	router.Handle("GET /api/categories", s.protected(s.categoryHandler.GetCategories))
	router.Handle("GET /api/categories/deleted", s.protected(s.categoryHandler.GetDeletedCategories))
	router.Handle("PUT /api/categories/{id}", s.protected(s.categoryHandler.UpdateCategory))
	router.Handle("DELETE /api/categories/{id}", s.protected(s.categoryHandler.DeleteCategory))
	router.Handle("DELETE /api/categories", s.protected(s.categoryHandler.DeleteAllCategories))
	router.Handle("DELETE /api/categories/permanent/{id}", s.protected(s.categoryHandler.PermanentDeleteCategory))
	router.Handle("PATCH /api/categories/restore/{id}", s.protected(s.categoryHandler.RestoreCategory))
	router.Handle("PATCH /api/categories/restore-all", s.protected(s.categoryHandler.RestoreAllCategories))

	// Expense routes. Creation can run without a session when the
	// payload-owner policy is enabled.
	if s.allowPayloadOwner {
		router.Handle("POST /api/expenses", auth.JWTOptionalAccessTokenMiddleware(s.jwtManager, s.expenseHandler.CreateExpense))
	} else {
		router.Handle("POST /api/expenses", s.protected(s.expenseHandler.CreateExpense))
	}
	router.Handle("GET /api/expenses/{id}", s.protected(s.expenseHandler.GetUserExpenses))
	router.Handle("GET /api/expenses/deleted/{id}", s.protected(s.expenseHandler.GetUserDeletedExpenses))
	router.Handle("GET /api/expenses/count/{id}", s.protected(s.expenseHandler.GetTotalExpensesCount))
	router.Handle("PUT /api/expenses/{id}", s.protected(s.expenseHandler.UpdateExpense))
	router.Handle("DELETE /api/expenses/{id}", s.protected(s.expenseHandler.DeleteExpense))
	router.Handle("DELETE /api/expenses/permanent/{id}", s.protected(s.expenseHandler.PermanentDeleteExpense))
	router.Handle("DELETE /api/expenses/all-deleted", s.protected(s.expenseHandler.PermanentDeleteAllExpenses))
	router.Handle("PATCH /api/expenses/restore/{id}", s.protected(s.expenseHandler.RestoreExpense))
	router.Handle("PATCH /api/expenses/restore-all", s.protected(s.expenseHandler.RestoreAllExpenses))

	// Notification routes
	router.Handle("POST /api/notifications", s.protected(s.notificationHandler.CreateNotification))
	router.Handle("GET /api/notifications", s.protected(s.notificationHandler.GetNotifications))
	router.Handle("GET /api/notifications/delete-all", s.protected(s.notificationHandler.DeleteAllNotifications))
	router.Handle("GET /api/notifications/{id}", s.protected(s.notificationHandler.GetNotification))
	router.Handle("DELETE /api/notifications/{id}", s.protected(s.notificationHandler.DeleteNotification))

	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}

func StartTotalsReconciler(expenseService *application.ExpenseService, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := expenseService.ReconcileTotals(); err != nil {
			log.Printf("Error reconciling expense totals: %v", err)
		} else {
			log.Println("Expense totals reconciled successfully.")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}
	cfg := loadConfig()

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)

	jwtManager := auth.NewJWTManager()
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)

	categoryService := application.NewCategoryService(categoryRepo, expenseRepo, cfg.nameScope)
	expenseService := application.NewExpenseService(
		expenseRepo,
		categoryService,
		userService,
		application.OwnerResolution{AllowPayloadOwner: cfg.allowPayloadOwner},
	)

	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)
	expenseHandler := interfaces.NewExpenseHandler(expenseService, respondJSON, respondError)

	notificationRepo := notification.NewNotificationRepository(dbService.DB)
	notificationService := notification.NewNotificationService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	server := NewServer(
		jwtManager,
		authHandler,
		userHandler,
		categoryHandler,
		expenseHandler,
		notificationHandler,
		cfg.allowPayloadOwner,
	)
	server.RegisterRoutes()

	if err := StartTotalsReconciler(expenseService, cfg.reconcileSchedule); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(server.router)
	log.Printf("Server starting on port %s...", cfg.port)
	if err := http.ListenAndServe(":"+cfg.port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
