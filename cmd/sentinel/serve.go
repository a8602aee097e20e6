package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EquitySentinel/internal/config"
	"EquitySentinel/internal/llm"
	"EquitySentinel/internal/notifier"
	"EquitySentinel/internal/scheduler"
	"EquitySentinel/internal/server"
	"EquitySentinel/internal/trace"
	"EquitySentinel/internal/watchlist"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(load func() (*config.Config, error)) *cobra.Command {
	var scanOnStart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, watchlist scanner and Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cfg, scanOnStart || os.Getenv("RUN_ON_START") == "true")
		},
	}
	cmd.Flags().BoolVar(&scanOnStart, "scan-on-start", false, "run the watchlist scan immediately")
	return cmd
}

func serve(cfg *config.Config, scanOnStart bool) error {
	log.Println("[INFO] EquitySentinel starting...")

	shutdownTracing, err := trace.Init(cfg.Tracing.Enabled, version)
	if err != nil {
		log.Printf("[WARN] tracing disabled: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("[WARN] tracing shutdown: %v", err)
		}
	}()

	gemini := newGemini(cfg)
	col, err := newCollector(cfg, gemini)
	if err != nil {
		return err
	}

	rec := newRecorder(cfg)
	defer rec.Close()

	wl, err := watchlist.NewManager(cfg.Watchlist.StateFile, cfg.Watchlist.Symbols)
	if err != nil {
		return err
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var chatter llm.Chatter
	if gemini != nil {
		chatter = gemini
	}

	sched := scheduler.NewScheduler(ctx, col, wl, tn, rec, chatter)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn.Enabled() {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	} else {
		log.Println("[WARN] Telegram not configured, label change alerts are logged only")
	}

	if scanOnStart {
		log.Println("[INFO] scan on start enabled, scanning watchlist now")
		go sched.Scan(ctx)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(col, chatter, rec)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(cfg.Server.Addr) }()

	log.Println("[INFO] EquitySentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			log.Printf("[ERROR] http server: %v", err)
		}
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] EquitySentinel stopped")
	return nil
}
