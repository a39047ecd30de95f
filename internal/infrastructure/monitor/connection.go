package monitor

import (
	"context"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PingFunc checks that the primary store is reachable.
type PingFunc func(ctx context.Context) error

// StateSizer reports the number of pending records in a local OAuth state store.
type StateSizer interface {
	Size() (int, error)
}

// Options wires the dependencies the monitor probes. Redis and States are optional.
type Options struct {
	Driver   string
	Store    PingFunc
	Redis    *redislib.Client
	States   StateSizer
	Interval time.Duration
	Logger   *zap.Logger
}

type Monitor struct {
	driver string
	store  PingFunc
	redis  *redislib.Client
	states StateSizer

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Monitor{
		driver:   opts.Driver,
		store:    opts.Store,
		redis:    opts.Redis,
		states:   opts.States,
		interval: opts.Interval,
		stopCh:   make(chan struct{}),
		logger:   opts.Logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports whether every configured dependency answered the last probe.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh probes all dependencies once and stores the result.
func (m *Monitor) Refresh() Status {
	status := Status{
		Driver:       m.driver,
		Store:        m.checkStore(),
		RedisEnabled: m.redis != nil,
		LastCheck:    time.Now(),
	}
	if status.RedisEnabled {
		status.Redis = m.checkRedis()
	}
	status.StateStore, status.PendingStates = m.checkStates(status)

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	if prev.Healthy() != status.Healthy() && !prev.LastCheck.IsZero() {
		m.logger.Warn("dependency status changed",
			zap.Bool("healthy", status.Healthy()),
			zap.Bool("store", status.Store),
			zap.Bool("redis", status.Redis),
			zap.Bool("state_store", status.StateStore))
	}
	return status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) checkStore() bool {
	if m.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.store(ctx); err != nil {
		m.logger.Warn("store ping failed", zap.String("driver", m.driver), zap.Error(err))
		return false
	}
	return true
}

func (m *Monitor) checkRedis() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}

// A nil StateSizer means state lives in Redis.
func (m *Monitor) checkStates(status Status) (bool, int) {
	if m.states == nil {
		return status.Redis, 0
	}
	size, err := m.states.Size()
	if err != nil {
		m.logger.Warn("oauth state store check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
