package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"BankReserves/internal/model"
)

// RedisConfig describes the Redis connection used for live tick snapshots.
type RedisConfig struct {
	Address   string
	Password  string
	DB        int
	Prefix    string
	KeepTicks int64
	Timeout   time.Duration
}

// RedisRecorder keeps the latest tick and a capped tick history per run in
// Redis so dashboards can poll a running model.
type RedisRecorder struct {
	client  *redis.Client
	prefix  string
	keep    int64
	timeout time.Duration
}

// NewRedisRecorder connects and pings the server.
func NewRedisRecorder(cfg RedisConfig) (*RedisRecorder, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address is required")
	}
	r := &RedisRecorder{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix:  cfg.Prefix,
		keep:    cfg.KeepTicks,
		timeout: cfg.Timeout,
	}
	if r.prefix == "" {
		r.prefix = "bankreserves"
	}
	if r.keep <= 0 {
		r.keep = 1000
	}
	if r.timeout <= 0 {
		r.timeout = 3 * time.Second
	}

	ctx, cancel := r.ctx()
	defer cancel()
	if err := r.client.Ping(ctx).Err(); err != nil {
		r.client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return r, nil
}

func (r *RedisRecorder) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *RedisRecorder) key(runID, suffix string) string {
	return r.prefix + ":" + runID + ":" + suffix
}

func (r *RedisRecorder) RecordRun(evt *RunEvent) error {
	ctx, cancel := r.ctx()
	defer cancel()
	err := r.client.HSet(ctx, r.key(evt.RunID, "run"),
		"started_at", evt.StartedAt.Unix(),
		"population", evt.Population,
		"rich_threshold", evt.RichThreshold,
		"reserve_percent", evt.ReservePercent,
		"interest_rate", evt.InterestRate,
		"seed", strconv.FormatUint(evt.Seed, 10),
	).Err()
	if err != nil {
		return fmt.Errorf("redis record run: %w", err)
	}
	return nil
}

func (r *RedisRecorder) RecordTick(rep *model.TickReport) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal tick: %w", err)
	}
	ctx, cancel := r.ctx()
	defer cancel()

	ticks := r.key(rep.RunID, "ticks")
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(rep.RunID, "latest"), body, 0)
	pipe.RPush(ctx, ticks, body)
	pipe.LTrim(ctx, ticks, -r.keep, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record tick: %w", err)
	}
	return nil
}

// RecordAgents overwrites the per-person hash with the newest values.
func (r *RedisRecorder) RecordAgents(reps []model.AgentReport) error {
	if len(reps) == 0 {
		return nil
	}
	values := make([]any, 0, 2*len(reps))
	for _, a := range reps {
		body, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal agent %d: %w", a.PersonID, err)
		}
		values = append(values, strconv.Itoa(a.PersonID), body)
	}
	ctx, cancel := r.ctx()
	defer cancel()
	if err := r.client.HSet(ctx, r.key(reps[0].RunID, "agents"), values...).Err(); err != nil {
		return fmt.Errorf("redis record agents: %w", err)
	}
	return nil
}

func (r *RedisRecorder) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
