package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/api/transport"
	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/pkg/httpcontext"
)

// SessionResolver turns a session token into a verified session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.Session, error)
}

type Auth struct {
	resolver   SessionResolver
	cookieName string
	logger     *zap.Logger
}

func NewAuth(resolver SessionResolver, cookieName string, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{resolver: resolver, cookieName: cookieName, logger: logger}
}

// Require rejects requests without a valid session.
func (a *Auth) Require(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		token := a.token(ctx)
		if token == "" {
			unauthorized(ctx, domain.ErrUnauthorized)
			return
		}
		session, err := a.resolver.ResolveSession(ctx, token)
		if err != nil {
			a.logger.Debug("session rejected", zap.Error(err))
			if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
				storeUnavailable(ctx)
				return
			}
			unauthorized(ctx, err)
			return
		}
		httpcontext.SetSession(ctx, session)
		next(ctx)
	}
}

// Optional attaches a session when a valid token is present and otherwise continues anonymously.
// A session store failure still ends the request with 500.
func (a *Auth) Optional(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if token := a.token(ctx); token != "" {
			session, err := a.resolver.ResolveSession(ctx, token)
			switch {
			case err == nil:
				httpcontext.SetSession(ctx, session)
			case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
				a.logger.Debug("ignoring invalid session", zap.Error(err))
			default:
				a.logger.Error("session store unavailable", zap.Error(err))
				storeUnavailable(ctx)
				return
			}
		}
		next(ctx)
	}
}

// token prefers the session cookie and falls back to a bearer token.
func (a *Auth) token(ctx *fasthttp.RequestCtx) string {
	if a.cookieName != "" {
		if cookie := ctx.Request.Header.Cookie(a.cookieName); len(cookie) > 0 {
			return string(cookie)
		}
	}
	header := strings.TrimSpace(string(ctx.Request.Header.Peek("Authorization")))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func unauthorized(ctx *fasthttp.RequestCtx, err error) {
	writeError(ctx, http.StatusUnauthorized, string(domain.ErrCodeUnauthorized), err.Error())
}

func storeUnavailable(ctx *fasthttp.RequestCtx) {
	writeError(ctx, http.StatusInternalServerError, string(domain.ErrCodeUnavailable), "session store unavailable")
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, message string) {
	body, _ := json.Marshal(transport.ErrorResponse{Error: message, Code: code})
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
