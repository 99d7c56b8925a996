package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/example/currency-wars/internal/config"
	"github.com/example/currency-wars/internal/fx"
	"github.com/example/currency-wars/internal/game"
	srv "github.com/example/currency-wars/internal/server"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML config file")
		httpPort   = flag.Int("http-port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *httpPort != 0 {
		cfg.Server.HTTPPort = *httpPort
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	rates := fx.NewClient(
		fx.WithBaseURL(cfg.FX.BaseURL),
		fx.WithTimeout(cfg.FX.Timeout.Std()),
		fx.WithGoldRate(cfg.FX.GoldRate),
		fx.WithLogger(logger),
	)

	gs := srv.NewGameServer(rates, logger,
		game.WithPlayerLimits(cfg.Game.MinPlayers, cfg.Game.MaxPlayers),
	)

	r := mux.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	}).Methods("GET")

	r.HandleFunc("/ws", gs.HandleWS)
	r.HandleFunc("/api/rooms", gs.HandleListRooms).Methods("GET")

	// HTTPS when certificates are configured and present, plain HTTP
	// otherwise.
	if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
		if _, err := os.Stat(cfg.Server.CertFile); err == nil {
			addr := fmt.Sprintf(":%d", cfg.Server.HTTPSPort)
			logger.Info("currency-wars server listening", "addr", addr, "tls", true)
			if err := http.ListenAndServeTLS(addr, cfg.Server.CertFile, cfg.Server.KeyFile, r); err != nil {
				logger.Error("server failed", "error", err)
				os.Exit(1)
			}
			return
		}
		logger.Warn("certificate not found, falling back to HTTP", "cert", cfg.Server.CertFile)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	logger.Info("currency-wars server listening", "addr", addr, "tls", false)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
