package xray

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/probatio/internal/models"
)

// staticTokens is a TokenSource returning a fixed credential.
type staticTokens struct {
	token string
}

func (s *staticTokens) Token(ctx context.Context) (string, error) { return s.token, nil }
func (s *staticTokens) Invalidate()                               {}

func TestClient_Execute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "getTest")
		assert.Equal(t, "12345", req.Variables["issueId"])

		w.Write([]byte(`{"data":{"getTest":{"issueId":"12345"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &staticTokens{token: "tkn"})

	resp, err := client.Execute(context.Background(), queryGetTest, map[string]any{"issueId": "12345"})
	require.NoError(t, err)
	assert.False(t, resp.HasErrors())
	assert.Contains(t, string(resp.Data), "12345")
}

func TestClient_Execute_ErrorsArrayIsNotAFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"field not found"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &staticTokens{token: "tkn"})

	resp, err := client.Execute(context.Background(), queryGetTest, nil)
	require.NoError(t, err, "a top-level errors array is returned to the caller, not raised")
	require.True(t, resp.HasErrors())
	assert.Equal(t, []string{"field not found"}, resp.ErrorMessages())
}

func TestClient_Execute_Rejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewClient(server.URL, &staticTokens{token: "tkn"})

	_, err := client.Execute(context.Background(), queryGetTest, nil)
	require.Error(t, err)

	var rejection *models.RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, http.StatusBadGateway, rejection.StatusCode)
	assert.Equal(t, "Bad Gateway", rejection.Status)
	assert.Contains(t, rejection.Body, "upstream exploded")
	assert.False(t, models.IsTimeout(err), "rejection must not classify as timeout")
}

func TestClient_Execute_TokenFailurePropagates(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", &failingTokens{})

	_, err := client.Execute(context.Background(), queryGetTest, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

type failingTokens struct{}

func (f *failingTokens) Token(ctx context.Context) (string, error) {
	return "", &models.AuthError{StatusCode: 401, Body: "nope"}
}
func (f *failingTokens) Invalidate() {}

func TestClient_Execute_SlowResponseClassifiedAsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &staticTokens{token: "tkn"},
		WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))

	_, err := client.Execute(context.Background(), queryGetTest, nil)
	require.Error(t, err)
	assert.True(t, models.IsTimeout(err), "a slow upstream is a timeout, not a rejection")

	var rejectionErr *models.RejectionError
	assert.False(t, errors.As(err, &rejectionErr))
}
