package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"taskflow-project/backend/handlers"
	"taskflow-project/backend/logging"
	"taskflow-project/backend/middleware"
	"taskflow-project/backend/models"
	"taskflow-project/backend/repositories"
	"taskflow-project/backend/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting task assignment service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "taskflow"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	tasksCollection := client.Database(mongoDBName).Collection("tasks")
	usersCollection := client.Database(mongoDBName).Collection("users")

	notificationRepo, err := repositories.NewNotificationRepo(logging.Logger)
	if err != nil {
		logging.Logger.Fatalf("Event ID: CASS_INIT_FAILED, Description: Cassandra initialization failed: %v", err)
	}
	defer notificationRepo.CloseSession()
	notificationRepo.CreateTable()

	notificationsBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notifications-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' state changed from %s to %s", name, from.String(), to.String())
		},
	})

	blackList, err := services.LoadBlackList("blacklist.txt")
	if err != nil {
		logging.Logger.Warnf("Event ID: BLACKLIST_LOAD_ERROR, Description: Password blacklist unavailable: %v", err)
		blackList = map[string]bool{}
	}

	userService := services.NewUserService(usersCollection, blackList)
	notificationService := services.NewNotificationService(notificationRepo)
	dispatcher := services.NewEmailDispatcher()
	taskService := services.NewTaskService(tasksCollection, usersCollection, dispatcher, notificationService, notificationsBreaker)

	authHandler := handlers.NewAuthHandler(userService)
	employeeHandler := handlers.NewEmployeeHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	go sweepExpiredRegistrations(userService)

	r := mux.NewRouter()

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/verify", authHandler.Verify).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/forgot-password", authHandler.ForgotPassword).Methods(http.MethodPost)

	r.HandleFunc("/api/employees", middleware.JWTAuthMiddleware(employeeHandler.ListEmployees)).Methods(http.MethodGet)
	r.HandleFunc("/api/employees/me", middleware.JWTAuthMiddleware(employeeHandler.GetProfile)).Methods(http.MethodGet)

	r.HandleFunc("/api/tasks", middleware.JWTAuthMiddleware(
		middleware.RequireRole(taskHandler.CreateTask, models.RoleManager))).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks", middleware.JWTAuthMiddleware(taskHandler.GetAllTasks)).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/assigned", middleware.JWTAuthMiddleware(
		middleware.RequireRole(taskHandler.GetAssignedTasks, models.RoleEmployee))).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/status", middleware.JWTAuthMiddleware(
		middleware.RequireRole(taskHandler.SubmitStatus, models.RoleEmployee))).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskID}", middleware.JWTAuthMiddleware(taskHandler.GetTaskByID)).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{taskID}", middleware.JWTAuthMiddleware(
		middleware.RequireRole(taskHandler.UpdateTaskMetadata, models.RoleManager))).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{taskID}", middleware.JWTAuthMiddleware(
		middleware.RequireRole(taskHandler.DeleteTask, models.RoleManager))).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/{taskID}/report", middleware.JWTAuthMiddleware(
		middleware.RequireRole(taskHandler.GetManagerReport, models.RoleManager))).Methods(http.MethodGet)

	r.HandleFunc("/api/notifications", middleware.JWTAuthMiddleware(notificationHandler.GetNotifications)).Methods(http.MethodGet)
	r.HandleFunc("/api/notifications/read", middleware.JWTAuthMiddleware(notificationHandler.MarkAsRead)).Methods(http.MethodPut)
	r.HandleFunc("/api/notifications/delete", middleware.JWTAuthMiddleware(notificationHandler.DeleteNotification)).Methods(http.MethodDelete)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}).Methods(http.MethodGet)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}

// sweepExpiredRegistrations periodically removes accounts whose verification
// code expired before activation.
func sweepExpiredRegistrations(userService *services.UserService) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		userService.DeleteExpiredUnverifiedUsers(ctx)
		cancel()
	}
}
