package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiredStatePurger is implemented by OAuth state stores without native key expiry.
type ExpiredStatePurger interface {
	PurgeExpired(now time.Time) (int, error)
}

// JanitorConfig controls how frequently expired records are purged.
// Schedule is a cron spec (seconds field included) and takes precedence over Interval.
type JanitorConfig struct {
	Interval time.Duration
	Schedule string
}

// StateJanitor periodically removes abandoned OAuth sign-in attempts.
type StateJanitor struct {
	store  ExpiredStatePurger
	logger *zap.Logger
	cron   *cron.Cron
	cfg    JanitorConfig
	now    func() time.Time
}

func NewStateJanitor(store ExpiredStatePurger, logger *zap.Logger, cfg JanitorConfig) (*StateJanitor, error) {
	if cfg.Interval < time.Second {
		cfg.Interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &StateJanitor{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
		now:    time.Now,
	}

	schedule := cfg.Schedule
	if schedule == "" {
		schedule = fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	}
	if _, err := j.cron.AddFunc(schedule, func() {
		if _, err := j.Sweep(); err != nil {
			j.logger.Error("oauth state sweep failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule oauth state janitor %q: %w", schedule, err)
	}

	return j, nil
}

// Start launches the cron scheduler.
func (j *StateJanitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("oauth state janitor started", zap.Duration("interval", j.cfg.Interval), zap.String("schedule", j.cfg.Schedule))
}

// Stop waits for a running sweep to finish or for ctx to expire.
func (j *StateJanitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("oauth state janitor stopped")
}

// Sweep purges expired records synchronously.
func (j *StateJanitor) Sweep() (int, error) {
	if j == nil || j.store == nil {
		return 0, nil
	}
	removed, err := j.store.PurgeExpired(j.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		j.logger.Debug("purged expired oauth states", zap.Int("count", removed))
	}
	return removed, nil
}
