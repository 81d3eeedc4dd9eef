package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rohits-web03/llamastore/internal/api/services"
	"github.com/rohits-web03/llamastore/internal/models"
)

type fakeResolver map[string]models.User

func (f fakeResolver) CurrentUser(_ context.Context, token string) (models.User, error) {
	if token == "boom" {
		return models.User{}, errors.New("database is locked")
	}
	u, ok := f[token]
	if !ok {
		return models.User{}, services.ErrUnauthorized
	}
	return u, nil
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(u.Email))
}

func TestRequireBearer(t *testing.T) {
	a := NewAuth(fakeResolver{"good": {ID: 1, Email: "a@b.cd"}}, zap.NewNop().Sugar())
	h := a.RequireBearerFunc(echoUser)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusForbidden, `{"detail":"Not authenticated"}`},
		{"wrong scheme", "Basic good", http.StatusForbidden, `{"detail":"Not authenticated"}`},
		{"empty token", "Bearer ", http.StatusForbidden, `{"detail":"Not authenticated"}`},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`},
		{"resolver failure", "Bearer boom", http.StatusInternalServerError, `{"detail":"Internal server error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/llama", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/llama", nil)
	req.Header.Set("Authorization", "bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.cd", rec.Body.String())
}

func TestLogger_RequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Logger(zap.New(core).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(RequestIDFrom(r.Context())))
	}))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/llama", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, incoming, rec.Body.String())
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, len(incoming), fields["size"])

	req = httptest.NewRequest(http.MethodGet, "/llama", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "malformed ids are replaced")
	assert.NotEqual(t, "not a uuid", rec.Header().Get(RequestIDHeader))
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := Recover(zap.New(core).Sugar())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/llama", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.Len())
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
