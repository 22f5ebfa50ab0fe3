package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"BankReserves/internal/model"
	"BankReserves/internal/simulation"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a fixed number of ticks and print the final report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ticks := cfg.Model.Ticks
			if cmd.Flags().Changed("ticks") {
				ticks, _ = cmd.Flags().GetInt("ticks")
			}
			if ticks < 0 {
				return fmt.Errorf("ticks must be non-negative, got %d", ticks)
			}

			rec := openRecorders(cfg)
			defer rec.Close()

			m, err := simulation.New(cfg.Params(), simulation.WithRecorder(rec))
			if err != nil {
				return fmt.Errorf("build model: %w", err)
			}
			log.Printf("[INFO] run %s seeded with %d", m.RunID(), m.Params().Seed)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := m.Run(ctx, ticks); err != nil {
				return err
			}

			rep := m.Last()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			printReport(cmd, &rep)
			return nil
		},
	}
	addModelFlags(cmd)
	cmd.Flags().Int("ticks", 0, "Number of ticks (defaults to model.ticks)")
	cmd.Flags().Bool("json", false, "Print the final report as JSON")
	return cmd
}

func printReport(cmd *cobra.Command, rep *model.TickReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s, tick %d\n", rep.RunID, rep.Tick)
	fmt.Fprintf(out, "  total loans:   %.2f\n", rep.TotalLoans)
	fmt.Fprintf(out, "  total savings: %.2f\n", rep.TotalSavings)
	fmt.Fprintf(out, "  rich/middle/poor: %d/%d/%d\n", rep.Census.Rich, rep.Census.Middle, rep.Census.Poor)
	fmt.Fprintf(out, "  bank: deposits %.2f, reserves %.2f, loans %.2f\n",
		rep.Bank.Deposits, rep.Bank.Reserves, rep.Bank.BankLoans)
}
