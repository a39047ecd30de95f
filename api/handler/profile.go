package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/pkg/httpcontext"
)

type ProfileService interface {
	GetProfile(ctx context.Context, identity domain.Identity) (*domain.User, error)
}

type ProfileHandler struct {
	baseHandler
	uc ProfileService
}

func NewProfileHandler(uc ProfileService, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get profile
// @Tags profile
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, ok := httpcontext.Session(ctx)
	if !ok {
		h.respondError(stdCtx, ctx, domain.ErrUnauthorized)
		return
	}

	user, err := h.uc.GetProfile(stdCtx, session.User)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, user)
}
