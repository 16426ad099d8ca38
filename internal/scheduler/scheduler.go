package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// warmTimeout bounds one background refresh. Every source has its own,
// shorter timeout, so this only guards against a stuck cycle.
const warmTimeout = 30 * time.Second

// Entity is the part of the zeitgeist service the jobs drive.
type Entity interface {
	ResetInteractions(ctx context.Context) (zeitgeist.InteractionState, error)
	Refresh(ctx context.Context) error
}

// Config selects which jobs run. A zero interval disables its job.
type Config struct {
	ResetInterval time.Duration
	WarmInterval  time.Duration
	Location      *time.Location
}

// Scheduler runs the periodic interaction reset and the optional cache warm.
type Scheduler struct {
	scheduler *gocron.Scheduler
	entity    Entity
	cfg       Config
}

// New creates a new Scheduler.
func New(cfg Config, entity Entity) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(cfg.Location),
		entity:    entity,
		cfg:       cfg,
	}
}

// Start schedules the configured jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.cfg.ResetInterval > 0 {
		// The counters were just initialized; the first reset is one interval out.
		_, err := s.scheduler.Every(s.cfg.ResetInterval).WaitForSchedule().Do(s.resetJob)
		if err != nil {
			return err
		}
		logging.Info("scheduled interaction reset", "every", s.cfg.ResetInterval)
	}

	if s.cfg.WarmInterval > 0 {
		_, err := s.scheduler.Every(s.cfg.WarmInterval).SingletonMode().Do(s.warmJob)
		if err != nil {
			return err
		}
		logging.Info("scheduled cache warm", "every", s.cfg.WarmInterval)
	}

	if s.scheduler.Len() == 0 {
		logging.Info("scheduler: no jobs configured; nothing to schedule")
		return nil
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) resetJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.entity.ResetInteractions(ctx); err != nil {
		logging.Error("scheduler: interaction reset failed", "error", err)
	}
}

func (s *Scheduler) warmJob() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	start := time.Now()
	if err := s.entity.Refresh(ctx); err != nil {
		logging.Error("scheduler: cache warm failed", "error", err)
		return
	}
	logging.Debug("scheduler: cache warmed", "duration", time.Since(start))
}
