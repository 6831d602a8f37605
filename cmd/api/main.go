package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/peoplehq/hrms-backend-go/internal/config"
	appHTTP "github.com/peoplehq/hrms-backend-go/internal/handler/http"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/jwt"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/storage"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
	activityService "github.com/peoplehq/hrms-backend-go/internal/service/activity"
	attendanceService "github.com/peoplehq/hrms-backend-go/internal/service/attendance"
	authService "github.com/peoplehq/hrms-backend-go/internal/service/auth"
	documentService "github.com/peoplehq/hrms-backend-go/internal/service/document"
	leaveService "github.com/peoplehq/hrms-backend-go/internal/service/leave"
	notificationService "github.com/peoplehq/hrms-backend-go/internal/service/notification"
	payrollService "github.com/peoplehq/hrms-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "hrms-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "s3":
		fileStorage, err = storage.NewS3Storage(storage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
			Endpoint:  cfg.Storage.S3Endpoint,
			PublicURL: cfg.Storage.S3PublicURL,
		})
		if err != nil {
			log.Fatal("Failed to initialize s3 storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	recorder := activityService.NewRecorder(activityRepo, logger)
	notifier := notificationService.NewService(notificationRepo, logger)
	auth := authService.NewService(userRepo, jwtService, recorder)
	leaveRequests := leaveService.NewRequestService(db, leaveRequestRepo, leaveBalanceRepo, recorder, notifier)
	leaveBalances := leaveService.NewBalanceService(db, leaveBalanceRepo, recorder)
	attendances := attendanceService.NewService(db, attendanceRepo, recorder)
	payrolls := payrollService.NewService(db, payrollRepo, leaveRequestRepo, userRepo, recorder, notifier)
	documents := documentService.NewService(documentRepo, fileStorage, recorder)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		JWTService:          jwtService,
		AuthHandler:         appHTTP.NewAuthHandler(auth),
		LeaveHandler:        appHTTP.NewLeaveHandler(leaveRequests, leaveBalances),
		AttendanceHandler:   appHTTP.NewAttendanceHandler(attendances),
		PayrollHandler:      appHTTP.NewPayrollHandler(payrolls),
		DocumentHandler:     appHTTP.NewDocumentHandler(documents),
		NotificationHandler: appHTTP.NewNotificationHandler(notifier),
		ActivityHandler:     appHTTP.NewActivityHandler(recorder),
		AllowedOrigins:      cfg.App.AllowedOrigins,
		Environment:         cfg.App.Env,
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
