package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"domainstatus/pkg/controller"
	"domainstatus/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)

	return logger.WithLogger(context.Background(), zap.New(core)), logs
}

func TestWithLogger_SetsRequestIDAndPassesStatus(t *testing.T) {
	base, logs := observedContext()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := controller.RequestID(r.Context()); id != "" {
			w.Header().Set("X-Echo-Request-Id", id)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})
	handler := controller.WithLogger(base, next)

	req1 := httptest.NewRequest(http.MethodGet, "/progress", nil)
	req1.Header.Set("X-Request-Id", "abc-123")
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	require.Equal(t, http.StatusCreated, rec1.Code)
	require.Equal(t, "abc-123", rec1.Header().Get("X-Echo-Request-Id"))

	req2 := httptest.NewRequest(http.MethodGet, "/progress", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusCreated, rec2.Code)
	require.NotEmpty(t, rec2.Header().Get("X-Echo-Request-Id"))

	entries := logs.FilterMessage("diagnostics request").All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc-123", fields[string(controller.RequestIDKey)])
	require.EqualValues(t, http.StatusCreated, fields["status_code"])
	require.EqualValues(t, 5, fields["bytes"])
	require.Equal(t, "/progress", fields["path"])
}

func TestWithRecover(t *testing.T) {
	base, logs := observedContext()

	handler := controller.WithLogger(base, controller.WithRecover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("diagnostics handler panicked").Len())
}

func TestRequestID_Missing(t *testing.T) {
	require.Empty(t, controller.RequestID(context.Background()))
}
