package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/taskmanager/domain"
	appLogger "github.com/fastygo/taskmanager/pkg/logger"
)

func TestAdapter_AttachPropagatesRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	rc.Request.Header.Set(RequestIDHeader, "req-1")

	ctx, cancel := NewAdapter(time.Second).Attach(&rc)
	defer cancel()

	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
	assert.Equal(t, "req-1", string(rc.Response.Header.Peek(RequestIDHeader)))

	core, logs := observer.New(zap.InfoLevel)
	appLogger.WithRequestID(ctx, zap.New(core)).Info("hello")
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
}

func TestAdapter_GeneratesStableRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	adapter := NewAdapter(0)

	_, cancel := adapter.Attach(&rc)
	cancel()
	first := string(rc.Response.Header.Peek(RequestIDHeader))
	assert.NotEmpty(t, first)

	_, cancel = adapter.Attach(&rc)
	cancel()
	assert.Equal(t, first, string(rc.Response.Header.Peek(RequestIDHeader)))
}

func TestRequestID_SetsHeaderBeforeHandler(t *testing.T) {
	var seen string
	handler := RequestID(func(ctx *fasthttp.RequestCtx) {
		seen = string(ctx.Response.Header.Peek(RequestIDHeader))
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	})

	var rc fasthttp.RequestCtx
	handler(&rc)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, string(rc.Response.Header.Peek(RequestIDHeader)))

	_, cancel := NewAdapter(time.Second).Attach(&rc)
	cancel()
	assert.Equal(t, seen, string(rc.Response.Header.Peek(RequestIDHeader)))
}

func TestSession(t *testing.T) {
	var rc fasthttp.RequestCtx
	_, ok := Session(&rc)
	assert.False(t, ok)
	assert.Empty(t, SessionEmail(&rc))

	SetSession(&rc, &domain.Session{ID: "s", User: domain.Identity{Email: "a@b.com"}})
	session, ok := Session(&rc)
	assert.True(t, ok)
	assert.Equal(t, "s", session.ID)
	assert.Equal(t, "a@b.com", SessionEmail(&rc))
}
