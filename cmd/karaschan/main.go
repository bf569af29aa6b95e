package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Al-Ghoul/KarasChan/internal/cart"
	"github.com/Al-Ghoul/KarasChan/internal/catalog"
	"github.com/Al-Ghoul/KarasChan/internal/checkout"
	"github.com/Al-Ghoul/KarasChan/internal/config"
	"github.com/Al-Ghoul/KarasChan/internal/db"
	"github.com/Al-Ghoul/KarasChan/internal/events"
	httpapi "github.com/Al-Ghoul/KarasChan/internal/http"
	"github.com/Al-Ghoul/KarasChan/internal/order"
	"github.com/Al-Ghoul/KarasChan/internal/user"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	// The user store runs on database/sql
	sqlDB, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer sqlDB.Close()

	carts := cart.NewPostgresRepository(pool)
	products := catalog.NewPostgresRepository(pool)
	orders := order.NewPostgresRepository(pool)
	users := user.NewRepository(sqlDB)

	// --- AMQP ---
	var publisher checkout.OrderEventsPublisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatalf("rabbitmq connect: %v", err)
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("rabbitmq publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	checkoutSvc := checkout.NewService(pool, carts, orders, publisher, logger)

	// --- HTTP ---
	router := httpapi.NewRouter(httpapi.Deps{
		Users:     users,
		Carts:     carts,
		Products:  products,
		Orders:    orders,
		Checkout:  checkoutSvc,
		JWTSecret: cfg.JWTSecret,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = httpServer.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}
