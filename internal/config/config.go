package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"BankReserves/internal/simulation"
)

// Config holds all application configuration.
type Config struct {
	Model struct {
		Population     int     `yaml:"population"`
		RichThreshold  float64 `yaml:"rich_threshold"`
		ReservePercent float64 `yaml:"reserve_percent"`
		InterestRate   float64 `yaml:"interest_rate"`
		GridWidth      int     `yaml:"grid_width"`
		GridHeight     int     `yaml:"grid_height"`
		Seed           uint64  `yaml:"seed"`
		Ticks          int     `yaml:"ticks"`
	} `yaml:"model"`
	Schedule struct {
		TickCron    string `yaml:"tick_cron"`
		SummaryCron string `yaml:"summary_cron"`
		MaxTicks    int    `yaml:"max_ticks"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath   string `yaml:"sqlite_path"`
		MySQLDSN     string `yaml:"mysql_dsn"`
		RecordAgents bool   `yaml:"record_agents"`
	} `yaml:"database"`
	Redis struct {
		Addr      string `yaml:"addr"`
		Password  string `yaml:"password"`
		DB        int    `yaml:"db"`
		Prefix    string `yaml:"prefix"`
		KeepTicks int64  `yaml:"keep_ticks"`
	} `yaml:"redis"`
	RabbitMQ struct {
		URL     string `yaml:"url"`
		Queue   string `yaml:"queue"`
		Durable bool   `yaml:"durable"`
	} `yaml:"rabbitmq"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Numeric model fields may legitimately be 0, so their defaults are set
	// before parsing and only keys present in the file override them.
	d := simulation.DefaultParams()
	cfg.Model.Population = d.Population
	cfg.Model.RichThreshold = d.RichThreshold
	cfg.Model.ReservePercent = d.ReservePercent
	cfg.Model.InterestRate = d.InterestRate
	cfg.Model.GridWidth = d.GridWidth
	cfg.Model.GridHeight = d.GridHeight
	cfg.Model.Ticks = 100
	cfg.Database.RecordAgents = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.Schedule.TickCron == "" {
		cfg.Schedule.TickCron = "*/5 * * * * *"
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 0 * * * *"
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("BANK_POPULATION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BANK_POPULATION: %w", err)
		}
		cfg.Model.Population = n
	}
	floats := []struct {
		env string
		dst *float64
	}{
		{"BANK_RICH_THRESHOLD", &cfg.Model.RichThreshold},
		{"BANK_RESERVE_PERCENT", &cfg.Model.ReservePercent},
		{"BANK_INTEREST_RATE", &cfg.Model.InterestRate},
	}
	for _, f := range floats {
		if v := os.Getenv(f.env); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", f.env, err)
			}
			*f.dst = x
		}
	}
	if v := os.Getenv("BANK_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("BANK_SEED: %w", err)
		}
		cfg.Model.Seed = seed
	}
	if v := os.Getenv("CRON_TICK"); v != "" {
		cfg.Schedule.TickCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		cfg.Database.MySQLDSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.RabbitMQ.URL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	return nil
}

// Params converts the model section into simulation parameters.
func (c *Config) Params() simulation.Params {
	return simulation.Params{
		Population:     c.Model.Population,
		RichThreshold:  c.Model.RichThreshold,
		ReservePercent: c.Model.ReservePercent,
		InterestRate:   c.Model.InterestRate,
		GridWidth:      c.Model.GridWidth,
		GridHeight:     c.Model.GridHeight,
		Seed:           c.Model.Seed,
	}
}

// Validate checks the model parameters and cross-field requirements.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Model.Ticks < 0 {
		return fmt.Errorf("model.ticks must be non-negative")
	}
	if c.Schedule.MaxTicks < 0 {
		return fmt.Errorf("schedule.max_ticks must be non-negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
