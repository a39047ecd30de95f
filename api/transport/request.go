package transport

import (
	"strings"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/usecase/account"
)

type SignupRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Name       string `json:"name" validate:"required"`
	UserType   string `json:"userType"`
	ResortName string `json:"resortName"`
	Location   string `json:"location"`
}

func (r SignupRequest) Input() account.SignupInput {
	return account.SignupInput{
		Email:      strings.TrimSpace(r.Email),
		Password:   r.Password,
		Name:       r.Name,
		UserType:   r.UserType,
		ResortName: strings.TrimSpace(r.ResortName),
		Location:   strings.TrimSpace(r.Location),
	}
}

// LoginRequest carries no validation tags: missing credentials are an authentication failure.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TaskRequest struct {
	Title     string `json:"title" validate:"required"`
	StartTime string `json:"startTime" validate:"required,timestamp"`
	EndTime   string `json:"endTime" validate:"required,timestamp"`
	Priority  *int   `json:"priority" validate:"required,min=1,max=5"`
	Status    string `json:"status" validate:"required,taskstatus"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// Task converts a validated request. The owner falls back to the session email when the body has none.
func (r TaskRequest) Task(sessionEmail string) *domain.Task {
	start, _ := ParseTimestamp(r.StartTime)
	end, _ := ParseTimestamp(r.EndTime)

	owner := strings.TrimSpace(r.Email)
	if owner == "" {
		owner = sessionEmail
	}

	task := &domain.Task{
		Title:      strings.TrimSpace(r.Title),
		StartTime:  start,
		EndTime:    end,
		Status:     domain.NormalizeStatus(r.Status),
		OwnerEmail: owner,
	}
	if r.Priority != nil {
		task.Priority = *r.Priority
	}
	return task
}
