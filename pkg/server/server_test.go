package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-kvgate/pkg/api"
	"github.com/adfharrison1/go-kvgate/pkg/gateway"
	"github.com/adfharrison1/go-kvgate/pkg/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := storage.NewMemoryStore()
	srv := NewServer(api.NewHandler(gateway.New(store), store, api.WithBackendName("memory")))

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_EndToEnd(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/clientes", "application/json", bytes.NewBufferString(`{"id": 1, "nombre": "Ana"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/clientes/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Ana", body.Data["nombre"])
}

func TestServer_RequestHeaders(t *testing.T) {
	ts := newTestServer(t)

	t.Run("generated request id", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		resp.Body.Close()

		id := resp.Header.Get(RequestIDHeader)
		_, err = uuid.Parse(id)
		assert.NoError(t, err, "request id %q", id)
		assert.True(t, strings.HasSuffix(resp.Header.Get(ResponseTimeHeader), "ms"))
	})

	t.Run("caller request id is kept", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/clientes", nil)
		require.NoError(t, err)
		req.Header.Set(RequestIDHeader, "abc-123")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
	})

	t.Run("error responses are timed too", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/clientes/404")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(ResponseTimeHeader))
	})
}

func TestServer_UnknownRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "too many segments", method: http.MethodGet, path: "/a/b/c", expectedStatus: http.StatusNotFound},
		{name: "delete is not supported", method: http.MethodDelete, path: "/clientes/1", expectedStatus: http.StatusMethodNotAllowed},
		{name: "put is not supported", method: http.MethodPut, path: "/clientes", expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestTimingWriter_ImplicitStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	handler := requestLoggerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(ResponseTimeHeader))
}
