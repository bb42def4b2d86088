package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/punchdesk/attendance-backend-go/internal/config"
	appHTTP "github.com/punchdesk/attendance-backend-go/internal/handler/http"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/cron"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/sse"
	"github.com/punchdesk/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/punchdesk/attendance-backend-go/internal/service/attendance"
	authService "github.com/punchdesk/attendance-backend-go/internal/service/auth"
	locationService "github.com/punchdesk/attendance-backend-go/internal/service/location"
	notificationService "github.com/punchdesk/attendance-backend-go/internal/service/notification"
	reportService "github.com/punchdesk/attendance-backend-go/internal/service/report"
	requestService "github.com/punchdesk/attendance-backend-go/internal/service/request"
	taskService "github.com/punchdesk/attendance-backend-go/internal/service/task"
	userService "github.com/punchdesk/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	notifSvc := notificationService.NewNotificationService(notificationRepo, userRepo, hub)
	authSvc := authService.NewAuthService(userRepo, jwtService, cfg.App.SignupSecret)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, locationRepo, txManager)
	reportSvc := reportService.NewReportService(attendanceRepo)
	requestSvc := requestService.NewRequestService(requestRepo, attendanceRepo, userRepo, notifSvc, txManager)
	locationSvc := locationService.NewLocationService(locationRepo)
	taskSvc := taskService.NewTaskService(taskRepo, userRepo, notifSvc)
	userSvc := userService.NewUserService(userRepo, locationRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, reportSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	locationHandler := appHTTP.NewLocationHandler(locationSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifSvc, jwtService, hub)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		requestHandler,
		locationHandler,
		taskHandler,
		userHandler,
		notificationHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Server listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
