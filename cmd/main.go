package main

import (
	"net/http"
	"os"
	"time"

	"stroymonitor/api/handler"
	apiMiddleware "stroymonitor/api/middleware"
	"stroymonitor/api/routes"
	"stroymonitor/config"
	"stroymonitor/internal/database"
	"stroymonitor/internal/repository"
	"stroymonitor/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.WithError(err).Fatal("migrate database")
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	clock := service.RealClock{}
	hasher := service.BcryptPasswordHasher{Cost: cfg.BcryptCost}
	sender := service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppName)
	if sender == nil {
		logger.Warn("email sender not configured, code delivery will fail")
	}

	sessionManager := service.NewSessionManager(sessionRepo, userRepo, clock, cfg.SessionTTL)
	activityLogger := service.NewActivityLogger(activityRepo, logger)

	var emailSender service.EmailSender
	if sender != nil {
		emailSender = sender
	}
	codeService := service.NewVerificationCodeService(codeRepo, userRepo, emailSender, clock, cfg.CodeTTL, logger)

	authService := service.NewAuthService(
		userRepo,
		sessionManager,
		codeService,
		activityLogger,
		hasher,
		clock,
		service.AuthConfig{
			SessionTTL:   cfg.SessionTTL,
			CodeTTL:      cfg.CodeTTL,
			CodeRequired: cfg.TwoFactorEnabled,
		},
	)

	authHandler := handler.NewAuthHandler(authService, sessionManager, codeService, validate)
	userHandler := handler.NewUserHandler(authService, activityLogger, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{Sessions: sessionManager}
	router := routes.NewRouter(app, authHandler, userHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
