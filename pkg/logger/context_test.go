package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest("GET", "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestFromContextReturnsInstalledLogger(t *testing.T) {
	c := newTestContext()
	installed := zap.NewNop()
	c.Set("logger", installed)

	assert.Same(t, installed, FromContext(c))
}

func TestFromContextFallsBackToRequestID(t *testing.T) {
	c := newTestContext()
	c.Set("request_id", "req-123")

	// No logger installed: the global logger is tagged with the request ID
	// recovered from the context.
	log := FromContext(c)
	require.NotNil(t, log)
	assert.NotSame(t, GetLogger(), log)
}

func TestFromContextFallsBackToHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "hdr-456")
	c := e.NewContext(req, httptest.NewRecorder())

	assert.NotNil(t, FromContext(c))
}
