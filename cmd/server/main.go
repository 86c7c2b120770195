package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"campuseats-be/internal/canteen"
	"campuseats-be/internal/config"
	"campuseats-be/internal/db"
	"campuseats-be/internal/logger"
	"campuseats-be/internal/menu"
	"campuseats-be/internal/order"
	"campuseats-be/internal/rest"
	"campuseats-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	canteenRepo := canteen.NewRepository(database)
	canteenSvc := canteen.NewService(canteenRepo)

	menuRepo := menu.NewRepository(database)
	menuSvc := menu.NewService(menuRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, menuRepo)

	router := rest.NewRouter(cfg, rest.Services{
		Users:    userSvc,
		Canteens: canteenSvc,
		Menus:    menuSvc,
		Orders:   orderSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
