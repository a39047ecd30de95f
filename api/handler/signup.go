package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/api/transport"
	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/pkg/httpcontext"
	"github.com/fastygo/taskmanager/usecase/account"
)

type Registrar interface {
	Signup(ctx context.Context, in account.SignupInput) (*domain.User, error)
}

type SignupHandler struct {
	baseHandler
	uc Registrar
}

func NewSignupHandler(uc Registrar, adapter *httpcontext.Adapter, logger *zap.Logger) *SignupHandler {
	return &SignupHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register a credentials account
// @Tags auth
// @Router /api/v1/signup [post]
func (h *SignupHandler) Signup(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	req := transport.Decode[transport.SignupRequest](ctx.PostBody())
	if !req.OK() {
		h.respondProblem(ctx, req.Problem)
		return
	}

	user, err := h.uc.Signup(stdCtx, req.Value.Input())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.SignupResponse{Message: "User created successfully", ID: user.ID})
}
