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

	"github.com/str04/stock-scanner/internal/config"
	"github.com/str04/stock-scanner/internal/provider"
	"github.com/str04/stock-scanner/internal/recorder"
	"github.com/str04/stock-scanner/internal/scan"
	"github.com/str04/stock-scanner/internal/scheduler"
	"github.com/str04/stock-scanner/internal/server"
	"github.com/str04/stock-scanner/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stock-scanner starting...")

	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher provider.Fetcher
	if cfg.DataSource.Provider == "marketstack" {
		fetcher = provider.NewMarketStackFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = provider.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init ticker universe
	var src universe.Source
	if len(cfg.Universe.Indices) > 0 {
		src = universe.NewWikipediaSource(cfg.Universe.Indices, cfg.Proxy)
	} else {
		src = universe.NewStaticSource(cfg.Universe.Tickers)
	}
	log.Printf("[INFO] ticker universe: %s", src.Name())

	// Init sinks: CSV history is required, sqlite is best-effort.
	history, err := recorder.NewCSVRecorder(cfg.History.Dir)
	if err != nil {
		log.Fatalf("[FATAL] init csv history: %v", err)
	}
	sinks := recorder.Multi{history}
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, continuing without: %v", err)
		} else {
			sinks = append(sinks, sr)
			defer sr.Close()
		}
	}

	// Init engine
	engine := scan.NewEngine(fetcher, src)

	// Init scheduler
	sched := scheduler.NewScheduler(engine, sinks, scan.ReturnParams{
		MinReturn: cfg.Scan.MinReturn,
		Years:     cfg.Scan.Years,
	})
	if err := sched.RegisterDaily(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Init HTTP server
	srv := server.New(engine, sinks, history, server.Defaults{
		MinReturn:             cfg.Scan.MinReturn,
		Years:                 cfg.Scan.Years,
		PatternYears:          cfg.Scan.PatternYears,
		AppreciationThreshold: cfg.Scan.AppreciationThreshold,
		SuccessThreshold:      cfg.Scan.SuccessThreshold,
	})
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}
	go func() {
		log.Printf("[INFO] http server listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily scan now")
		go sched.RunNow()
	}

	log.Println("[INFO] stock-scanner is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] stock-scanner stopped")
}
