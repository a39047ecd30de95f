package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/api/transport"
	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/pkg/httpcontext"
)

// Authenticator is the part of the auth use case the HTTP layer drives.
type Authenticator interface {
	SignInWithCredentials(ctx context.Context, email, password string) (*domain.Session, error)
	BeginProviderSignIn(ctx context.Context, provider string) (string, error)
	CompleteProviderSignIn(ctx context.Context, provider, code, state string) (*domain.Session, error)
	SignOut(ctx context.Context, session *domain.Session) error
	ProviderNames() []string
}

type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	baseHandler
	uc           Authenticator
	cookie       CookieConfig
	postLoginURL string
}

func NewAuthHandler(uc Authenticator, cookie CookieConfig, postLoginURL string, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session_token"
	}
	if postLoginURL == "" {
		postLoginURL = "/"
	}
	return &AuthHandler{
		baseHandler:  newBaseHandler(adapter, logger),
		uc:           uc,
		cookie:       cookie,
		postLoginURL: postLoginURL,
	}
}

// @Summary Sign in with email and password
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	// An empty body is a sign-in without credentials, not a malformed request.
	var creds transport.LoginRequest
	if body := ctx.PostBody(); len(bytes.TrimSpace(body)) > 0 {
		req := transport.Decode[transport.LoginRequest](body)
		if !req.OK() {
			h.respondProblem(ctx, req.Problem)
			return
		}
		creds = req.Value
	}

	session, err := h.uc.SignInWithCredentials(stdCtx, creds.Email, creds.Password)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.setSessionCookie(ctx, session)
	h.respondJSON(ctx, http.StatusOK, transport.NewSessionResponse(session, true))
}

// @Summary Revoke the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, ok := httpcontext.Session(ctx)
	if !ok {
		h.respondError(stdCtx, ctx, domain.ErrUnauthorized)
		return
	}
	if err := h.uc.SignOut(stdCtx, session); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.clearSessionCookie(ctx)
	h.respondJSON(ctx, http.StatusOK, transport.MessageResponse{Message: "Signed out"})
}

// @Summary Current session
// @Tags auth
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) Session(ctx *fasthttp.RequestCtx) {
	session, ok := httpcontext.Session(ctx)
	if !ok {
		stdCtx, cancel := h.requestContext(ctx)
		defer cancel()
		h.respondError(stdCtx, ctx, domain.ErrUnauthorized)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSessionResponse(session, false))
}

// @Summary Configured identity providers
// @Tags auth
// @Router /api/v1/auth/providers [get]
func (h *AuthHandler) Providers(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusOK, transport.ProvidersResponse{Providers: h.uc.ProviderNames()})
}

func (h *AuthHandler) setSessionCookie(ctx *fasthttp.RequestCtx, session *domain.Session) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookie.Name)
	cookie.SetValue(session.Token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSecure(h.cookie.Secure)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetExpire(session.ExpiresAt)
	ctx.Response.Header.SetCookie(cookie)
}

func (h *AuthHandler) clearSessionCookie(ctx *fasthttp.RequestCtx) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookie.Name)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSecure(h.cookie.Secure)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(cookie)
}
