package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/config"
	"hotel-frontdesk/controllers"
	"hotel-frontdesk/middleware"
	"hotel-frontdesk/routes"
	"hotel-frontdesk/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := config.NewLogger(cfg.Env)
	slog.SetDefault(log)
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.Error("database connect failed", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	log.Info("database ready", "driver", cfg.DBDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := civiltime.SystemClock{}
	audit := services.NewAuditService(db, clock, log)
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := services.NewKafkaPublisher(cfg.KafkaBrokers, nil)
		if err != nil {
			log.Warn("kafka unavailable, audit stays local", "brokers", cfg.KafkaBrokers, "err", err)
		} else {
			defer publisher.Close()
			audit.WithPublisher(publisher, cfg.KafkaTopicPrefix+"audit")
			log.Info("audit events published", "topic", cfg.KafkaTopicPrefix+"audit")
		}
	}

	drafts := services.NewDraftService(db, clock, cfg.DraftTTL)
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenDuration, clock, audit)
	roomSvc := services.NewRoomService(db, audit)
	checkinSvc := services.NewCheckinService(db, clock, audit, drafts)
	checkoutSvc := services.NewCheckoutService(db, clock, audit, cfg.GracePeriodHours)
	bookingSvc := services.NewBookingService(db, clock, audit)
	historySvc := services.NewHistoryService(db, clock, cfg.HistoryPageSize)
	reportSvc := services.NewReportService(db, clock)
	settingsSvc := services.NewSettingsService(db)

	ctl := routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Rooms:    controllers.NewRoomController(roomSvc),
		Billing:  controllers.NewBillingController(clock),
		Checkin:  controllers.NewCheckinController(checkinSvc, drafts),
		Bookings: controllers.NewBookingController(bookingSvc, checkoutSvc, settingsSvc),
		Admin:    controllers.NewAdminController(reportSvc, historySvc, audit),
		Settings: controllers.NewSettingsController(settingsSvc),
	}

	limiter := middleware.NewIPRateLimiter(cfg.LoginRatePerMin, cfg.LoginBurst, 5*time.Minute)
	go limiter.Run(ctx)
	go drafts.RunJanitor(ctx, 10*time.Minute, log)

	router := routes.SetupRouter(cfg.ParseCorsOrigins(), log, ctl, authSvc, limiter)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "err", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("server stopped")
}
