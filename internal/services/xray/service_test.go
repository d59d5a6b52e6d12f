package xray

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/models"
)

func TestService_AddTestStep(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "addTestStep")
		assert.Equal(t, "12345", req.Variables["issueId"])
		assert.Equal(t, "Press the login button", req.Variables["action"])
		assert.Equal(t, "valid credentials", req.Variables["data"])
		assert.Equal(t, "Dashboard is shown", req.Variables["result"])

		w.Write([]byte(`{"data":{"addTestStep":{"id":"s9","action":"Press the login button"}}}`))
	}))
	defer server.Close()

	svc := NewService(NewClient(server.URL, &staticTokens{token: "tkn"}), arbor.NewLogger())

	err := svc.AddTestStep(context.Background(), "12345", models.TestStep{
		Action:         "Press the login button",
		Data:           "valid credentials",
		ExpectedResult: "Dashboard is shown",
	})
	require.NoError(t, err)
}

func TestService_AddTestStep_ErrorsArraySurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"test not found"}]}`))
	}))
	defer server.Close()

	svc := NewService(NewClient(server.URL, &staticTokens{token: "tkn"}), arbor.NewLogger())

	err := svc.AddTestStep(context.Background(), "404", models.TestStep{Action: "Anything"})
	require.Error(t, err)

	var gqlErr *models.GraphQLError
	require.ErrorAs(t, err, &gqlErr)
	assert.Equal(t, "addTestStep", gqlErr.Operation)
	assert.Equal(t, []string{"test not found"}, gqlErr.Messages)
}

func TestService_AddTestPreconditions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "addPreconditionsToTest")
		assert.Equal(t, "12345", req.Variables["issueId"])
		assert.Equal(t, []any{"20001", "20002"}, req.Variables["preconditionIssueIds"])

		w.Write([]byte(`{"data":{"addPreconditionsToTest":{"addedPreconditions":["20001","20002"]}}}`))
	}))
	defer server.Close()

	svc := NewService(NewClient(server.URL, &staticTokens{token: "tkn"}), arbor.NewLogger())

	err := svc.AddTestPreconditions(context.Background(), "12345", []string{"20001", "20002"})
	require.NoError(t, err)
}

func TestService_AddTestPreconditions_ErrorsArraySurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"precondition does not exist"}]}`))
	}))
	defer server.Close()

	svc := NewService(NewClient(server.URL, &staticTokens{token: "tkn"}), arbor.NewLogger())

	err := svc.AddTestPreconditions(context.Background(), "12345", []string{"999"})
	require.Error(t, err)

	var gqlErr *models.GraphQLError
	require.ErrorAs(t, err, &gqlErr)
	assert.Equal(t, "addTestPrecondition", gqlErr.Operation)
}
