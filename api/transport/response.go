package transport

import (
	"encoding/json"
	"time"

	"github.com/fastygo/taskmanager/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Problem *Problem `json:"problem,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SignupResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type SessionResponse struct {
	User      domain.Identity `json:"user"`
	Token     string          `json:"token,omitempty"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

func NewSessionResponse(session *domain.Session, withToken bool) SessionResponse {
	resp := SessionResponse{User: session.User, ExpiresAt: session.ExpiresAt}
	if withToken {
		resp.Token = session.Token
	}
	return resp
}

type ProvidersResponse struct {
	Providers []string `json:"providers"`
}

type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

type CreateTaskResponse struct {
	Message string       `json:"message"`
	Result  InsertResult `json:"result"`
}

// TaskView adds the derived duration shown next to each task.
type TaskView struct {
	domain.Task
	TotalTime float64 `json:"totalTime"`
}

type TaskListResponse struct {
	MyAddedTasks []TaskView `json:"myAddedTasks"`
}

func NewTaskList(tasks []domain.Task) TaskListResponse {
	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, TaskView{Task: tasks[i], TotalTime: tasks[i].TotalHours()})
	}
	return TaskListResponse{MyAddedTasks: views}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e ErrorResponse) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
