package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/models"
)

const catalogBody = `{
	"issueLinkTypes": [
		{"id": "10000", "name": "Blocks", "inward": "is blocked by", "outward": "blocks"},
		{"id": "10100", "name": "Test", "inward": "is tested by", "outward": "tests"},
		{"id": "10200", "name": "Relates", "inward": "relates to", "outward": "relates to"}
	]
}`

func linkTypeServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/api/2/issueLinkType" {
			w.Write([]byte(body))
			return
		}
		http.NotFound(w, r)
	}))
}

func TestLinkTypeService_FuzzyDiscovery(t *testing.T) {
	server := linkTypeServer(t, catalogBody)
	defer server.Close()

	svc := NewLinkTypeService(NewClient(server.URL, "bot", "token"), "", arbor.NewLogger())

	lt, err := svc.FindTestsLinkType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10100", lt.ID)
	assert.Equal(t, "is tested by", lt.Inward)
	assert.Equal(t, "tests", lt.Outward)
}

func TestLinkTypeService_MatchesOnVerbOnly(t *testing.T) {
	server := linkTypeServer(t, `{
		"issueLinkTypes": [
			{"id": "1", "name": "Coverage", "inward": "is tested by", "outward": "verifies"}
		]
	}`)
	defer server.Close()

	svc := NewLinkTypeService(NewClient(server.URL, "bot", "token"), "", arbor.NewLogger())

	lt, err := svc.FindTestsLinkType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Coverage", lt.Name)
}

func TestLinkTypeService_OverrideTakesPrecedence(t *testing.T) {
	// "Test Coverage" would not be the first fuzzy hit; the override must
	// select it exactly.
	server := linkTypeServer(t, `{
		"issueLinkTypes": [
			{"id": "1", "name": "Test", "inward": "is tested by", "outward": "tests"},
			{"id": "2", "name": "Test Coverage", "inward": "is covered by", "outward": "covers"}
		]
	}`)
	defer server.Close()

	svc := NewLinkTypeService(NewClient(server.URL, "bot", "token"), "Test Coverage", arbor.NewLogger())

	lt, err := svc.FindTestsLinkType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", lt.ID)
}

func TestLinkTypeService_OverrideMissingFallsBackToDiscovery(t *testing.T) {
	server := linkTypeServer(t, catalogBody)
	defer server.Close()

	svc := NewLinkTypeService(NewClient(server.URL, "bot", "token"), "Renamed Away", arbor.NewLogger())

	lt, err := svc.FindTestsLinkType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10100", lt.ID)
}

func TestLinkTypeService_NoMatch(t *testing.T) {
	server := linkTypeServer(t, `{
		"issueLinkTypes": [
			{"id": "1", "name": "Blocks", "inward": "is blocked by", "outward": "blocks"}
		]
	}`)
	defer server.Close()

	svc := NewLinkTypeService(NewClient(server.URL, "bot", "token"), "", arbor.NewLogger())

	_, err := svc.FindTestsLinkType(context.Background())
	require.ErrorIs(t, err, models.ErrNoLinkTypeFound)
}

func TestLinkTypeService_LinkIssues_Direction(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/issueLink", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	svc := NewLinkTypeService(NewClient(server.URL, "bot", "token"), "", arbor.NewLogger())

	linkType := models.LinkType{ID: "10100", Name: "Test", Inward: "is tested by", Outward: "tests"}
	require.NoError(t, svc.LinkIssues(context.Background(), linkType, "T1", "S1"))

	inward := captured["inwardIssue"].(map[string]any)
	outward := captured["outwardIssue"].(map[string]any)
	assert.Equal(t, "T1", inward["id"], "test issue must be the inward side")
	assert.Equal(t, "S1", outward["id"], "originating issue must be the outward side")
	assert.Equal(t, "Test", captured["type"].(map[string]any)["name"])
}

func TestLinkTypeService_CatalogRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("forbidden"))
	}))
	defer server.Close()

	svc := NewLinkTypeService(NewClient(server.URL, "bot", "token"), "", arbor.NewLogger())

	_, err := svc.FindTestsLinkType(context.Background())
	var rejection *models.RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, http.StatusForbidden, rejection.StatusCode)
}
