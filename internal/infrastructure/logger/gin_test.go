package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), "req-42"))
		c.Next()
	})
	r.Use(Recovery(base, func(c *gin.Context, _ any) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	}))
	r.Use(AccessLog(base, "/health"))
	return r, recorded
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestAccessLog_LevelByStatus(t *testing.T) {
	r, recorded := newRouter(t)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/ok?page=2")
	serve(r, http.MethodGet, "/missing")
	serve(r, http.MethodGet, "/broken")

	logs := recorded.FilterMessage("request").All()
	require.Len(t, logs, 3)
	assert.Equal(t, zapcore.InfoLevel, logs[0].Level)
	assert.Equal(t, "page=2", logs[0].ContextMap()["query"])
	assert.Equal(t, "req-42", logs[0].ContextMap()["request_id"])
	assert.Equal(t, zapcore.WarnLevel, logs[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs[2].Level)
}

func TestAccessLog_SkipsPaths(t *testing.T) {
	r, recorded := newRouter(t)
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/health")
	assert.Zero(t, recorded.FilterMessage("request").Len())
}

func TestAccessLog_ScopedLoggerAvailable(t *testing.T) {
	r, recorded := newRouter(t)
	r.GET("/scoped", func(c *gin.Context) {
		FromGin(c).Info("inside handler")
		FromContext(c.Request.Context()).Info("inside service")
		c.Status(http.StatusNoContent)
	})

	serve(r, http.MethodGet, "/scoped")
	assert.Equal(t, "/scoped", recorded.FilterMessage("inside handler").All()[0].ContextMap()["path"])
	assert.Equal(t, 1, recorded.FilterMessage("inside service").Len())
}

func TestRecovery(t *testing.T) {
	r, recorded := newRouter(t)
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := serve(r, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false}`, w.Body.String())

	panics := recorded.FilterMessage("panic recovered").All()
	require.Len(t, panics, 1)
	assert.Equal(t, "req-42", panics[0].ContextMap()["request_id"])
}
