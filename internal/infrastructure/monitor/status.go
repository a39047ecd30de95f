package monitor

import "time"

type Status struct {
	Driver        string    `json:"driver"`
	Store         bool      `json:"store"`
	Redis         bool      `json:"redis"`
	RedisEnabled  bool      `json:"redis_enabled"`
	StateStore    bool      `json:"state_store"`
	PendingStates int       `json:"pending_states"`
	LastCheck     time.Time `json:"last_check"`
}

// Healthy is false when the store or any configured dependency is down.
func (s Status) Healthy() bool {
	if !s.Store || !s.StateStore {
		return false
	}
	return !s.RedisEnabled || s.Redis
}
