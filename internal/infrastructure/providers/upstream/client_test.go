package upstream

import (
	"aetherium-service/internal/domain/apperrors"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/thing", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("convert"))
		assert.Equal(t, "secret", r.Header.Get("X-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[1,2,3]}`))
	}))
	defer server.Close()

	client := NewClient("test", server.URL+"/", time.Second).WithHeader("X-Key", "secret")
	body, err := client.GetJSON(context.Background(), "/v1/thing", url.Values{"convert": {"USD"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[1,2,3]}`, string(body))
}

func TestClient_GetJSON_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"status":{"error_message":"rate limited"}}`))
	}))
	defer server.Close()

	_, err := NewClient("test", server.URL, time.Second).GetJSON(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamHTTP)

	var httpErr *apperrors.UpstreamHTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "rate limited")
	assert.Equal(t, "test /x responded with status: 429", httpErr.Error())
}

func TestClient_GetJSON_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := NewClient("test", server.URL, time.Second).GetJSON(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestClient_GetJSON_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	_, err := NewClient("test", server.URL, 50*time.Millisecond).GetJSON(context.Background(), "/slow", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_GetJSON_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	_, err := NewClient("test", addr, time.Second).GetJSON(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, ErrRequestFailed)
}
