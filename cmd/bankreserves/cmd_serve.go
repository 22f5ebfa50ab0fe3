package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"BankReserves/internal/notifier"
	"BankReserves/internal/scheduler"
	"BankReserves/internal/simulation"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Advance the model on a cron schedule until stopped",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			rec := openRecorders(cfg)
			defer rec.Close()

			m, err := simulation.New(cfg.Params(), simulation.WithRecorder(rec))
			if err != nil {
				return fmt.Errorf("build model: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var sender scheduler.Sender
			var tn *notifier.TelegramNotifier
			if cfg.TelegramEnabled() {
				tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
				sender = tn
			}

			sched := scheduler.NewScheduler(ctx, m, sender, cfg.Schedule.MaxTicks)
			summary := cfg.Schedule.SummaryCron
			if sender == nil {
				summary = ""
			}
			if err := sched.RegisterAll(cfg.Schedule.TickCron, summary); err != nil {
				return fmt.Errorf("register cron tasks: %w", err)
			}
			sched.Start()
			defer sched.Stop()

			if tn != nil {
				go tn.StartPolling(ctx, sched.HandleCommand)
				log.Println("[INFO] Telegram polling started")
			}

			log.Printf("[INFO] run %s is ticking on %q. Press Ctrl+C to stop.", m.RunID(), cfg.Schedule.TickCron)
			select {
			case <-ctx.Done():
				log.Println("[INFO] shutdown signal received, stopping...")
			case <-sched.Done():
			}
			return nil
		},
	}
	addModelFlags(cmd)
	return cmd
}
