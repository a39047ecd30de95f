package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/api/transport"
	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/pkg/httpcontext"
	"github.com/fastygo/taskmanager/repository"
)

type TaskService interface {
	CreateTask(ctx context.Context, task *domain.Task) (string, error)
	ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error)
}

type TaskHandler struct {
	baseHandler
	uc           TaskService
	enforceOwner bool
}

func NewTaskHandler(uc TaskService, enforceOwner bool, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler:  newBaseHandler(adapter, logger),
		uc:           uc,
		enforceOwner: enforceOwner,
	}
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	req := transport.Decode[transport.TaskRequest](ctx.PostBody())
	if !req.OK() {
		h.respondProblem(ctx, req.Problem)
		return
	}

	task := req.Value.Task(httpcontext.SessionEmail(ctx))
	if err := h.checkOwner(ctx, task.OwnerEmail); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	id, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.CreateTaskResponse{
		Message: "Task added successfully",
		Result:  transport.InsertResult{InsertedID: id},
	})
}

// @Summary List an owner's tasks
// @Tags tasks
// @Param status query string false "pending, finished or All"
// @Param sort query string false "priority, startTime, endTime; prefix '-' for descending"
// @Router /api/v1/tasks/{email} [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	email, _ := ctx.UserValue("email").(string)
	if err := h.checkOwner(ctx, email); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	filter := repository.TaskFilter{
		OwnerEmail: email,
		Status:     string(ctx.QueryArgs().Peek("status")),
		Sort:       domain.TaskSort(ctx.QueryArgs().Peek("sort")),
	}

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewTaskList(tasks))
}

// checkOwner applies the optional rule that callers only touch their own tasks.
func (h *TaskHandler) checkOwner(ctx *fasthttp.RequestCtx, owner string) error {
	if !h.enforceOwner {
		return nil
	}
	session, ok := httpcontext.Session(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !strings.EqualFold(strings.TrimSpace(owner), session.User.Email) {
		return domain.ErrForbidden
	}
	return nil
}
