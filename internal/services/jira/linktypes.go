package jira

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/models"
)

// LinkTypeService discovers the relationship type carrying "tests"
// semantics from the tracker's catalog. The catalog is fetched fresh for
// every operation: type names are admin-editable and there is no
// invalidation signal, so nothing is cached across requests.
type LinkTypeService struct {
	client *Client
	// override, when non-empty, is an exact catalog name that takes
	// precedence over fuzzy discovery.
	override string
	logger   arbor.ILogger
}

// NewLinkTypeService creates a link-type service. override may be empty.
func NewLinkTypeService(client *Client, override string, logger arbor.ILogger) *LinkTypeService {
	return &LinkTypeService{
		client:   client,
		override: override,
		logger:   logger,
	}
}

type linkTypeCatalog struct {
	IssueLinkTypes []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Inward  string `json:"inward"`
		Outward string `json:"outward"`
	} `json:"issueLinkTypes"`
}

// FindTestsLinkType fetches the relationship-type catalog and selects the
// entry denoting "tests / is tested by" semantics. A configured exact name
// wins; otherwise the first entry whose name or verbs contain "test"
// case-insensitively is used.
func (s *LinkTypeService) FindTestsLinkType(ctx context.Context) (models.LinkType, error) {
	var catalog linkTypeCatalog
	if err := s.client.Get(ctx, "/rest/api/2/issueLinkType", &catalog); err != nil {
		return models.LinkType{}, err
	}

	if s.override != "" {
		for _, lt := range catalog.IssueLinkTypes {
			if lt.Name == s.override {
				return models.LinkType{ID: lt.ID, Name: lt.Name, Inward: lt.Inward, Outward: lt.Outward}, nil
			}
		}
		s.logger.Warn().Str("override", s.override).Msg("Configured link type not in catalog, falling back to discovery")
	}

	for _, lt := range catalog.IssueLinkTypes {
		if containsTest(lt.Name) || containsTest(lt.Inward) || containsTest(lt.Outward) {
			return models.LinkType{ID: lt.ID, Name: lt.Name, Inward: lt.Inward, Outward: lt.Outward}, nil
		}
	}

	return models.LinkType{}, models.ErrNoLinkTypeFound
}

func containsTest(s string) bool {
	return strings.Contains(strings.ToLower(s), "test")
}

// LinkIssues creates a directed link of the given type. inwardID is the
// issue on the side asserting the inward verb ("tests"), outwardID the
// side asserting the outward verb ("is tested by").
func (s *LinkTypeService) LinkIssues(ctx context.Context, linkType models.LinkType, inwardID, outwardID string) error {
	body := map[string]any{
		"type":         map[string]string{"name": linkType.Name},
		"inwardIssue":  map[string]string{"id": inwardID},
		"outwardIssue": map[string]string{"id": outwardID},
	}
	return s.client.Post(ctx, "/rest/api/2/issueLink", body, nil)
}
