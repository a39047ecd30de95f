package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	appLogger "github.com/fastygo/taskmanager/pkg/logger"
)

// @Summary Redirect to an identity provider
// @Tags auth
// @Router /api/v1/auth/{provider}/login [get]
func (h *AuthHandler) ProviderLogin(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	provider, _ := ctx.UserValue("provider").(string)
	redirect, err := h.uc.BeginProviderSignIn(stdCtx, provider)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	ctx.Redirect(redirect, http.StatusFound)
}

// @Summary Identity provider callback
// @Tags auth
// @Router /api/v1/auth/{provider}/callback [get]
func (h *AuthHandler) ProviderCallback(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	provider, _ := ctx.UserValue("provider").(string)
	args := ctx.QueryArgs()
	if reason := args.Peek("error"); len(reason) > 0 {
		appLogger.WithRequestID(stdCtx, h.logger).Info("provider returned an error",
			zap.String("provider", provider), zap.ByteString("error", reason))
	}

	session, err := h.uc.CompleteProviderSignIn(stdCtx, provider, string(args.Peek("code")), string(args.Peek("state")))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.setSessionCookie(ctx, session)
	ctx.Redirect(h.postLoginURL, http.StatusFound)
}
