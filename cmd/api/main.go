package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sparemart/sparemart/internal/cart"
	"github.com/sparemart/sparemart/internal/catalog"
	"github.com/sparemart/sparemart/internal/config"
	"github.com/sparemart/sparemart/internal/httpx"
	kafkax "github.com/sparemart/sparemart/internal/kafka"
	"github.com/sparemart/sparemart/internal/notify"
	"github.com/sparemart/sparemart/internal/orders"
	"github.com/sparemart/sparemart/internal/postgres"
	"github.com/sparemart/sparemart/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	pPlaced := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	pPlaced.Start(ctx)
	pCancelled := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCancelled, 1024)
	pCancelled.Start(ctx)

	orderRepo := &orders.Repo{DB: db, ShippingFee: cfg.ShippingFee, TaxRatePct: cfg.TaxRatePct}
	cartRepo := &cart.Repo{DB: db}
	catalogRepo := &catalog.Repo{DB: db}

	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Repo:              orderRepo,
		Catalog:           catalogRepo,
		Redis:             rdb,
		PlacedProducer:    pPlaced,
		CancelledProducer: pCancelled,
		Service:           cfg.ServiceName,
	}
	oh.Register(router)
	(&httpx.CartHandler{Cart: cartRepo}).Register(router)
	(&httpx.NotificationsHandler{Store: &notify.Store{DB: db}}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pPlaced.Close()
	pCancelled.Close()
	cancel()
	pPlaced.WaitClosed()
	pCancelled.WaitClosed()
}
