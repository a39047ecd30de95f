package httpcontext

import (
	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskmanager/domain"
)

const (
	sessionValue   = "httpcontext.session"
	requestIDValue = "httpcontext.request_id"
)

// SetSession stores the resolved session on the request for downstream handlers.
func SetSession(ctx *fasthttp.RequestCtx, session *domain.Session) {
	ctx.SetUserValue(sessionValue, session)
}

// Session returns the session attached by the auth middleware, if any.
func Session(ctx *fasthttp.RequestCtx) (*domain.Session, bool) {
	session, ok := ctx.UserValue(sessionValue).(*domain.Session)
	return session, ok && session != nil
}

// SessionEmail is the email of the signed-in user or "".
func SessionEmail(ctx *fasthttp.RequestCtx) string {
	if session, ok := Session(ctx); ok {
		return session.User.Email
	}
	return ""
}
