package synthesis

import (
	"reflect"
	"strings"
	"testing"
)

func TestSynthesize_SummaryAndObjective(t *testing.T) {
	svc := NewService()

	content := svc.Synthesize("\n\nLogin feature\nUsers can sign in with email.", "")

	if content.Summary != "Test: Login feature" {
		t.Errorf("Summary = %q, want %q", content.Summary, "Test: Login feature")
	}
	if !strings.Contains(content.TestObjective, "Login feature") {
		t.Errorf("TestObjective %q does not reference the title", content.TestObjective)
	}
	if !strings.Contains(content.Description, "Users can sign in with email.") {
		t.Error("Description must contain the full input text")
	}
}

func TestSynthesize_AdditionalRequirementsSection(t *testing.T) {
	svc := NewService()

	content := svc.Synthesize("Search feature", "Must support mobile devices")

	if !strings.Contains(content.Description, "Additional Requirements:") {
		t.Error("Description must carry a labeled additional-requirements section")
	}
	if !strings.Contains(content.Description, "Must support mobile devices") {
		t.Error("Description must contain the additional-requirements text")
	}
}

func TestSynthesize_StepNumbering(t *testing.T) {
	svc := NewService()

	inputs := map[string]string{
		"clothing rule": "Clothing recommendations based on weather and season",
		"creation rule": "Users can create a new saved search",
		"fallback":      "Dashboard shows a usage graph",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			content := svc.Synthesize(input, "")
			for i, step := range content.Steps {
				if step.StepNumber != i+1 {
					t.Fatalf("steps[%d].StepNumber = %d, want %d (numbering must be 1-based and gap-free)", i, step.StepNumber, i+1)
				}
			}
		})
	}
}

func TestSynthesize_BootstrapAndVerificationFraming(t *testing.T) {
	svc := NewService()

	content := svc.Synthesize("Login feature", "")

	steps := content.Steps
	if len(steps) < 4 {
		t.Fatalf("expected at least 4 steps, got %d", len(steps))
	}
	if !strings.Contains(steps[0].Action, "Navigate to the application") {
		t.Errorf("first step = %q, want navigation bootstrap", steps[0].Action)
	}
	if !strings.Contains(steps[1].Action, "Log in") {
		t.Errorf("second step = %q, want authentication bootstrap", steps[1].Action)
	}
	last := steps[len(steps)-1]
	if !strings.Contains(last.Action, "Verify") {
		t.Errorf("last step = %q, want the fixed verification step", last.Action)
	}
}

func TestSynthesize_TopicalRulesAreMutuallyExclusive(t *testing.T) {
	svc := NewService()

	// Input hits both the clothing rule and the creation rule keywords;
	// only the clothing rule (higher priority) may contribute.
	content := svc.Synthesize("Create clothing recommendations for winter weather", "")

	var sawClothing, sawCreationForm bool
	for _, step := range content.Steps {
		if strings.Contains(step.Action, "clothing recommendation") {
			sawClothing = true
		}
		if strings.Contains(step.Action, "creation form") {
			sawCreationForm = true
		}
	}
	if !sawClothing {
		t.Error("clothing rule did not fire")
	}
	if sawCreationForm {
		t.Error("creation rule fired alongside the clothing rule; rules must not stack")
	}
}

func TestSynthesize_CreationRule(t *testing.T) {
	svc := NewService()

	content := svc.Synthesize("Users can add a payment method", "")

	var sawSubmit bool
	for _, step := range content.Steps {
		if strings.Contains(step.Action, "Submit the form") {
			sawSubmit = true
		}
	}
	if !sawSubmit {
		t.Error("creation rule should emit a create-fill-submit sequence")
	}
}

func TestSynthesize_FallbackRule(t *testing.T) {
	svc := NewService()

	content := svc.Synthesize("Dashboard shows a usage graph", "")

	// bootstrap(2) + fallback(1) + verification(1)
	if len(content.Steps) != 4 {
		t.Fatalf("fallback sequence length = %d, want 4", len(content.Steps))
	}
	if !strings.Contains(content.Steps[2].Action, "Access the feature") {
		t.Errorf("step 3 = %q, want the generic access step", content.Steps[2].Action)
	}
}

func TestSynthesize_AcceptanceCriteriaAugmentation(t *testing.T) {
	svc := NewService()

	baseline := svc.Synthesize("Login feature", "")
	if len(baseline.AcceptanceCriteria) != 5 {
		t.Fatalf("baseline criteria = %d, want 5", len(baseline.AcceptanceCriteria))
	}

	augmented := svc.Synthesize("Login feature", "security hardening, mobile support, browser compatibility")
	if len(augmented.AcceptanceCriteria) != 8 {
		t.Fatalf("augmented criteria = %d, want 8", len(augmented.AcceptanceCriteria))
	}
	for i, ac := range augmented.AcceptanceCriteria {
		want := "AC-" + string(rune('1'+i))
		if ac.ID != want {
			t.Errorf("criteria[%d].ID = %q, want %q", i, ac.ID, want)
		}
	}
}

func TestSynthesize_Idempotent(t *testing.T) {
	svc := NewService()

	first := svc.Synthesize("Clothing recommendations for rainy weather", "security")
	second := svc.Synthesize("Clothing recommendations for rainy weather", "security")

	if !reflect.DeepEqual(first, second) {
		t.Error("synthesis must be a pure function: identical inputs produced different output")
	}
}

func TestSynthesize_FixedScaffolding(t *testing.T) {
	svc := NewService()

	content := svc.Synthesize("Anything at all", "")

	if len(content.Preconditions) != 3 {
		t.Errorf("preconditions = %d, want the fixed baseline triplet", len(content.Preconditions))
	}
	if len(content.ExpectedResults) == 0 {
		t.Error("expected results scaffolding missing")
	}
	if len(content.TestData) != 3 {
		t.Errorf("test data categories = %d, want 3", len(content.TestData))
	}
}
