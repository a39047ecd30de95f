package domain

import (
	"math"
	"strings"
	"time"
)

const (
	StatusPending  = "pending"
	StatusFinished = "finished"

	// StatusAll disables status filtering when listing tasks.
	StatusAll = "All"

	MinPriority = 1
	MaxPriority = 5
)

// Task represents a user-owned activity item.
type Task struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Priority   int       `json:"priority"`
	Status     string    `json:"status"`
	OwnerEmail string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (t *Task) IsFinished() bool {
	return t != nil && t.Status == StatusFinished
}

// TotalHours is the span between start and end in hours, rounded to two decimals.
func (t *Task) TotalHours() float64 {
	if t == nil || t.EndTime.Before(t.StartTime) {
		return 0
	}
	return math.Round(t.EndTime.Sub(t.StartTime).Hours()*100) / 100
}

// Validate checks the invariants every stored task must satisfy.
func (t *Task) Validate() error {
	switch {
	case t == nil:
		return ErrInvalidPayload
	case strings.TrimSpace(t.OwnerEmail) == "":
		return ErrOwnerRequired
	case strings.TrimSpace(t.Title) == "" || t.StartTime.IsZero() || t.EndTime.IsZero():
		return NewError(ErrCodeInvalid, "all fields are required")
	case t.Priority < MinPriority || t.Priority > MaxPriority:
		return NewError(ErrCodeInvalid, "priority must be between 1 and 5")
	case !IsValidStatus(t.Status):
		return NewError(ErrCodeInvalid, "status must be pending or finished")
	}
	return nil
}

// NormalizeStatus lower-cases a status so "Pending" and "pending" compare equal.
func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func IsValidStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusPending, StatusFinished:
		return true
	}
	return false
}

// TaskSort names a supported list ordering; a leading '-' means descending.
type TaskSort string

const (
	SortNewest        TaskSort = ""
	SortPriorityAsc   TaskSort = "priority"
	SortPriorityDesc  TaskSort = "-priority"
	SortStartTimeAsc  TaskSort = "startTime"
	SortStartTimeDesc TaskSort = "-startTime"
	SortEndTimeAsc    TaskSort = "endTime"
	SortEndTimeDesc   TaskSort = "-endTime"
)

func (s TaskSort) Valid() bool {
	switch s {
	case SortNewest, SortPriorityAsc, SortPriorityDesc, SortStartTimeAsc, SortStartTimeDesc, SortEndTimeAsc, SortEndTimeDesc:
		return true
	}
	return false
}

// Field returns the sort key without direction and whether the order is descending.
func (s TaskSort) Field() (string, bool) {
	if strings.HasPrefix(string(s), "-") {
		return string(s[1:]), true
	}
	return string(s), false
}
