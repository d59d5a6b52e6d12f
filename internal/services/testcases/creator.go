package testcases

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/interfaces"
	"github.com/ternarybob/probatio/internal/models"
)

// Service ties synthesis and orchestration together: it turns free text or
// a fetched requirement issue into a created test case.
type Service struct {
	synthesizer interfaces.Synthesizer
	creator     interfaces.TestCreator
	resolver    interfaces.IssueResolver
	logger      arbor.ILogger
}

// NewService creates the synthesize-and-create service.
func NewService(synthesizer interfaces.Synthesizer, creator interfaces.TestCreator, resolver interfaces.IssueResolver, logger arbor.ILogger) *Service {
	return &Service{
		synthesizer: synthesizer,
		creator:     creator,
		resolver:    resolver,
		logger:      logger,
	}
}

// CreateFromText synthesizes a test case from free text and creates it.
// originatingIssue may be empty; when present the created test is linked
// back to it.
func (s *Service) CreateFromText(ctx context.Context, freeText, additionalRequirements, projectKey, originatingIssue string) (*models.CreationResult, error) {
	if strings.TrimSpace(freeText) == "" {
		return nil, &models.ValidationError{Field: "text", Reason: "is required"}
	}

	content := s.synthesizer.Synthesize(freeText, additionalRequirements)
	return s.creator.CreateTestCase(ctx, content, projectKey, "", originatingIssue)
}

// CreateFromUserStory fetches a requirement issue, synthesizes a test case
// from its summary and description, creates it, and links it back to the
// story.
func (s *Service) CreateFromUserStory(ctx context.Context, userStory, additionalRequirements, projectKey string) (*models.CreationResult, error) {
	if strings.TrimSpace(userStory) == "" {
		return nil, &models.ValidationError{Field: "userStory", Reason: "is required"}
	}

	issue, err := s.resolver.FetchIssue(ctx, userStory)
	if err != nil {
		return nil, err
	}

	text := issue.Summary
	if issue.Description != "" {
		text += "\n\n" + issue.Description
	}

	s.logger.Debug().Str("story", issue.Key).Msg("Synthesizing test case from user story")

	content := s.synthesizer.Synthesize(text, additionalRequirements)
	return s.creator.CreateTestCase(ctx, content, projectKey, "", userStory)
}
