package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sizerStub struct {
	size int
	err  error
}

func (s sizerStub) Size() (int, error) { return s.size, s.err }

func TestMonitor_Refresh(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name    string
		opts    Options
		healthy bool
		pending int
	}{
		{
			name:    "store and bolt state up",
			opts:    Options{Driver: "memory", Store: up, States: sizerStub{size: 2}},
			healthy: true,
			pending: 2,
		},
		{
			name: "store down",
			opts: Options{Driver: "mongo", Store: down, States: sizerStub{}},
		},
		{
			name: "state store broken",
			opts: Options{Driver: "memory", Store: up, States: sizerStub{err: errors.New("closed")}},
		},
		{
			name: "no store configured",
			opts: Options{States: sizerStub{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.opts)
			status := m.Refresh()

			assert.Equal(t, tt.healthy, status.Healthy())
			assert.Equal(t, tt.healthy, m.IsOnline())
			assert.Equal(t, tt.pending, status.PendingStates)
			assert.False(t, status.LastCheck.IsZero())
		})
	}
}

func TestStatus_HealthyRequiresConfiguredRedis(t *testing.T) {
	s := Status{Store: true, StateStore: true, RedisEnabled: true}
	assert.False(t, s.Healthy())

	s.Redis = true
	assert.True(t, s.Healthy())
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	m := New(Options{})
	m.Start()
	m.Stop()
	m.Stop()
}
