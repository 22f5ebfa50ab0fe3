package main

import (
	"log"
	"os"
	"path/filepath"

	"BankReserves/internal/config"
	"BankReserves/internal/recorder"
)

// openRecorders connects every configured sink. A sink that fails to open is
// logged and skipped so a run never depends on an external service.
func openRecorders(cfg *config.Config) recorder.Recorder {
	var sinks recorder.Multi

	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
			log.Printf("[WARN] create sqlite directory: %v", err)
		}
		if r, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath); err != nil {
			log.Printf("[WARN] init sqlite recorder failed, skipping: %v", err)
		} else {
			sinks = append(sinks, r)
		}
	}
	if cfg.Database.MySQLDSN != "" {
		if r, err := recorder.NewMySQLRecorder(cfg.Database.MySQLDSN); err != nil {
			log.Printf("[WARN] init mysql recorder failed, skipping: %v", err)
		} else {
			sinks = append(sinks, r)
		}
	}
	if cfg.Redis.Addr != "" {
		r, err := recorder.NewRedisRecorder(recorder.RedisConfig{
			Address:   cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			Prefix:    cfg.Redis.Prefix,
			KeepTicks: cfg.Redis.KeepTicks,
		})
		if err != nil {
			log.Printf("[WARN] init redis recorder failed, skipping: %v", err)
		} else {
			sinks = append(sinks, r)
			log.Printf("[INFO] redis recorder connected: %s", cfg.Redis.Addr)
		}
	}
	if cfg.RabbitMQ.URL != "" {
		r, err := recorder.NewAMQPRecorder(recorder.AMQPConfig{
			URL:     cfg.RabbitMQ.URL,
			Queue:   cfg.RabbitMQ.Queue,
			Durable: cfg.RabbitMQ.Durable,
		})
		if err != nil {
			log.Printf("[WARN] init rabbitmq recorder failed, skipping: %v", err)
		} else {
			sinks = append(sinks, r)
			log.Println("[INFO] rabbitmq recorder connected")
		}
	}

	var rec recorder.Recorder
	switch len(sinks) {
	case 0:
		return recorder.NewNoopRecorder()
	case 1:
		rec = sinks[0]
	default:
		rec = sinks
	}
	if !cfg.Database.RecordAgents {
		rec = recorder.TicksOnly{Recorder: rec}
	}
	return rec
}
