package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"BankReserves/internal/model"
	"BankReserves/internal/notifier"
	"BankReserves/internal/simulation"
)

// Sender delivers chat messages. *notifier.TelegramNotifier satisfies it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler advances a model on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Model    *simulation.Model
	Notifier Sender
	MaxTicks int // 0 means unbounded
	Ctx      context.Context

	mu   sync.Mutex // one tick at a time
	done chan struct{}
	once sync.Once
}

// NewScheduler creates a Scheduler. notifier may be nil.
func NewScheduler(ctx context.Context, m *simulation.Model, n Sender, maxTicks int) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Model:    m,
		Notifier: n,
		MaxTicks: maxTicks,
		Ctx:      ctx,
		done:     make(chan struct{}),
	}
}

// RegisterAll registers the tick and summary tasks.
func (s *Scheduler) RegisterAll(tickCron, summaryCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, s.tickTask); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	if summaryCron != "" {
		if _, err := s.Cron.AddFunc(summaryCron, s.summaryTask); err != nil {
			return fmt.Errorf("register summary task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// Done is closed once MaxTicks ticks have run.
func (s *Scheduler) Done() <-chan struct{} { return s.done }

// StepNow runs one tick immediately, serialized with cron firings.
func (s *Scheduler) StepNow() (model.TickReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.MaxTicks > 0 && s.Model.Tick() >= s.MaxTicks {
		s.finish()
		return s.Model.Last(), nil
	}
	rep, err := s.Model.Step(s.Ctx)
	if err != nil {
		return rep, err
	}
	if s.MaxTicks > 0 && rep.Tick >= s.MaxTicks {
		log.Printf("[INFO] reached max ticks (%d)", s.MaxTicks)
		s.finish()
	}
	return rep, nil
}

func (s *Scheduler) finish() {
	s.once.Do(func() { close(s.done) })
}

func (s *Scheduler) tickTask() {
	rep, err := s.StepNow()
	if err != nil {
		log.Printf("[ERROR] tick: %v", err)
		return
	}
	log.Printf("[INFO] tick %d: loans %.2f savings %.2f rich/middle/poor %d/%d/%d",
		rep.Tick, rep.TotalLoans, rep.TotalSavings, rep.Census.Rich, rep.Census.Middle, rep.Census.Poor)
}

func (s *Scheduler) summaryTask() {
	s.mu.Lock()
	rep := s.Model.Last()
	s.mu.Unlock()
	s.trySend(notifier.FormatSummary(s.Model.RunID(), &rep))
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/status":
		s.mu.Lock()
		rep := s.Model.Last()
		s.mu.Unlock()
		return notifier.FormatSummary(s.Model.RunID(), &rep)
	case "/census":
		s.mu.Lock()
		c := s.Model.Last().Census
		s.mu.Unlock()
		return notifier.FormatCensus(c)
	case "/step":
		rep, err := s.StepNow()
		if err != nil {
			return fmt.Sprintf("❌ step failed: %v", err)
		}
		return notifier.FormatTickReport(&rep)
	default:
		return "Available commands:\n• /status\n• /census\n• /step"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
