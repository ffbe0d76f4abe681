package main

import (
	"context"
	"log"
	"time"

	"delservice/internal/address"
	"delservice/internal/auth"
	"delservice/internal/client"
	"delservice/internal/config"
	"delservice/internal/db"
	"delservice/internal/logger"
	"delservice/internal/order"
	"delservice/internal/paymethod"
	"delservice/internal/product"
	"delservice/internal/report"
	"delservice/internal/role"
	"delservice/internal/status"
	"delservice/internal/user"
	"delservice/internal/web"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	clientRepo := client.NewRepository(database)
	userRepo := user.NewRepository(database)
	roleRepo := role.NewRepository(database)
	addressRepo := address.NewRepository(database)
	productRepo := product.NewRepository(database)
	statusRepo := status.NewRepository(database)
	methodRepo := paymethod.NewRepository(database)
	orderRepo := order.NewRepository(database)
	reportRepo := report.NewRepository(database)
	sessionRepo := auth.NewRepository(database)

	go sweepSessions(sessionRepo)

	lookup := func(ctx context.Context, login string) (int64, string, error) {
		u, err := userRepo.FindByLogin(ctx, login)
		if err != nil {
			return 0, "", err
		}
		return u.ID, u.PasswordHash, nil
	}

	srv, err := web.NewServer(web.Services{
		Auth:      auth.NewService(sessionRepo, lookup, cfg.SessionSecret),
		Clients:   client.NewService(clientRepo),
		Users:     user.NewService(userRepo),
		Roles:     role.NewService(roleRepo),
		Addresses: address.NewService(addressRepo),
		Products:  product.NewService(productRepo),
		Statuses:  status.NewService(statusRepo),
		Methods:   paymethod.NewService(methodRepo),
		Orders:    order.NewService(orderRepo, statusRepo),
		Reports:   report.NewService(reportRepo, orderRepo),
	})
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	log.Fatal(srv.Start(":" + cfg.AppPort))
}

// sweepSessions clears expired session rows once an hour.
func sweepSessions(sessions auth.Repository) {
	for range time.Tick(time.Hour) {
		n, err := sessions.DeleteExpired(context.Background())
		if err != nil {
			logger.L().Warn("session sweep failed", zap.Error(err))
			continue
		}
		if n > 0 {
			logger.L().Info("expired sessions removed", zap.Int64("count", n))
		}
	}
}
