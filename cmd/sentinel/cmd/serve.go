package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"OptionSentinel/internal/analyzer"
	"OptionSentinel/internal/metrics"
	"OptionSentinel/internal/notifier"
	"OptionSentinel/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scheduled scans and answer Telegram commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireTelegram(); err != nil {
			return err
		}
		log.Info().Msg("OptionSentinel starting")

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var m analyzer.Metrics
		if cfg.Metrics.Enabled {
			m = metrics.New(nil)
			srv := serveMetrics(cfg.Metrics.Addr)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		a := newAnalyzer(newSource(false), m, false)
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.DataSource.Proxy)
		rec := openRecorder()
		defer rec.Close()

		sched := scheduler.NewScheduler(ctx, a, tn, rec, scanSymbols(nil, false), cfg.Analysis.Concurrency)
		if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("Telegram polling started")

		if os.Getenv("RUN_ON_START") == "true" {
			log.Info().Msg("RUN_ON_START enabled, scanning now")
			go func() {
				if _, err := sched.RunScan(ctx, "startup"); err != nil {
					log.Error().Err(err).Msg("startup scan failed")
				}
			}()
		}

		log.Info().Str("cron", cfg.Schedule.ScanCron).Msg("OptionSentinel is running. Press Ctrl+C to stop.")
		<-ctx.Done()
		log.Info().Msg("shutdown signal received, stopping")
		return nil
	},
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("metrics endpoint listening")
	return srv
}
