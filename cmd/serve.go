package cmd

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goamponsah/AI-Math-Tutor/app/controller"
	"github.com/goamponsah/AI-Math-Tutor/app/openai"
	"github.com/goamponsah/AI-Math-Tutor/app/paystack"
	"github.com/goamponsah/AI-Math-Tutor/app/plan"
	"github.com/goamponsah/AI-Math-Tutor/app/repository"
	"github.com/goamponsah/AI-Math-Tutor/app/service"
	"github.com/goamponsah/AI-Math-Tutor/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP server for webhooks, subscription status, payment initialization, and chat.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}()

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	paystackClient := paystack.NewClient(paystack.Config{
		SecretKey:   cfg.Paystack.SecretKey,
		Currency:    cfg.Paystack.Currency,
		HTTPTimeout: cfg.Paystack.HTTPTimeout,
	})
	planResolver := plan.NewResolver(cfg.Paystack.PlanCodePremium, cfg.Paystack.PlanCodePro)

	billingService := service.NewBillingService(
		userRepo,
		paymentRepo,
		subscriptionRepo,
		paystackClient,
		planResolver,
		cfg.Paystack.Currency,
		cfg.Billing.StoreTimeout,
	)

	assistant := openai.NewClient(openai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		BaseURL:     cfg.OpenAI.BaseURL,
		HTTPTimeout: cfg.OpenAI.HTTPTimeout,
	})
	chatService := service.NewChatService(billingService, assistant)

	billingController := controller.NewBillingController(billingService, paystackClient)
	chatController := controller.NewChatController(chatService)

	e := setupHTTPServer(cfg, db, billingController, chatController)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(
	cfg *config.Config,
	db *sql.DB,
	billingController *controller.BillingController,
	chatController *controller.ChatController,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(ensureRequestID())

	e.GET("/health", billingController.Health)
	e.GET("/health/db", func(ctx echo.Context) error {
		if err := db.PingContext(ctx.Request().Context()); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.POST("/paystack/initialize", billingController.InitializePayment)
	api.POST("/paystack/webhook", billingController.HandleWebhook)
	api.GET("/subscription/status/:email", billingController.SubscriptionStatus)
	api.POST("/chat", chatController.Chat)

	e.Static("/", cfg.App.StaticDir)

	return e
}

// ensureRequestID assigns a request ID when the caller sends none. Paystack
// deliveries carry no X-Request-ID, so unlike an internal service this cannot
// reject on a missing header.
func ensureRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			requestID := strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderXRequestID))
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx.Response().Header().Set(echo.HeaderXRequestID, requestID)
			return next(ctx)
		}
	}
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	return nil
}
