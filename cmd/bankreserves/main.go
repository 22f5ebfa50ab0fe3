package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"BankReserves/internal/config"
)

var version = "0.1.0-dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bankreserves",
		Short: "Agent-based bank reserves simulation",
		Long: `bankreserves simulates a population of persons who trade, save and
borrow from a single bank. Interest accrues on outstanding loans every tick
and persons are classified as rich, middle or poor by their savings.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "configs/config.yaml", "Path to the YAML config (CONFIG_PATH overrides)")

	rootCmd.AddCommand(
		newRunCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bankreserves version %s\n", version)
		},
	}
}

// loadConfig resolves the config path, loads and validates it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if v := os.Getenv("CONFIG_PATH"); v != "" && !cmd.Flags().Changed("config") {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Model.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("population") {
		cfg.Model.Population, _ = cmd.Flags().GetInt("population")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("seed", 0, "Random seed (0 picks one)")
	cmd.Flags().Int("population", 0, "Number of persons")
}
