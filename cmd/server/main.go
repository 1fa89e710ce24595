package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"blocktix/internal/api"
	"blocktix/internal/booking"
	"blocktix/internal/chain"
	"blocktix/internal/config"
	"blocktix/internal/logger"
	"blocktix/internal/notify"
	"blocktix/internal/rates"
	"blocktix/internal/scanlog"
	"blocktix/internal/wallet"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.New()
	defer log.Close()

	ledger, err := chain.NewEthLedger(cfg.Chain)
	if err != nil {
		log.Fatal("CHAIN", fmt.Sprintf("Failed to initialize ledger: %v", err))
	}
	defer ledger.Close()
	log.LogChain("init", fmt.Sprintf("contract %s via %s, signer %s",
		cfg.Chain.ContractAddress, cfg.Chain.RPCURL, ledger.Signer()))

	provider, err := wallet.NewKeyProvider(cfg.Chain.PrivateKey)
	if err != nil {
		log.Fatal("WALLET", fmt.Sprintf("Failed to initialize wallet provider: %v", err))
	}
	session := wallet.NewSession(provider, log)
	session.Init(context.Background())
	defer session.Close()

	rateSvc := rates.NewService(cfg.Rates.EndpointURL, http.DefaultClient)
	rateHandler := &rates.Handler{EthToKes: cfg.Rates.EthToKes, KesToEth: cfg.Rates.KesToEth}

	var scans *scanlog.Log
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("REDIS", fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
		scans = scanlog.New(client, cfg.Redis.ScanTTL)
		log.Info("REDIS", "Scan log enabled")
	}

	producer := notify.NewProducer(cfg.Kafka, log)
	defer producer.Close()

	service := booking.NewService(ledger, rateSvc, session, producer, scans, log)

	handler := &api.Handler{
		Booking: service,
		Rates:   rateHandler,
		Wallet:  session,
		Origin:  cfg.Server.Origin,
		Log:     log,
	}

	r := chi.NewRouter()
	r.Use(api.RequestLogger(log))
	handler.Routes(r)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", fmt.Sprintf("🚀 Ticket gateway on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "✅ Ticket gateway shutdown complete")
}
