package synthesis

import "strings"

// stepTemplate is one step of a topical rule before numbering.
type stepTemplate struct {
	action   string
	data     string
	expected string
}

// topicalRule maps an input predicate to the step sequence it contributes
// between the bootstrap and verification steps. Rules are evaluated in
// slice order and only the first match contributes: they are mutually
// exclusive, not stacked.
type topicalRule struct {
	name    string
	matches func(lower string) bool
	steps   []stepTemplate
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// topicalRules is evaluated first-match-wins. The fallback step is applied
// by the synthesizer when no rule fires.
var topicalRules = []topicalRule{
	{
		name: "clothing-recommendation",
		matches: func(lower string) bool {
			return strings.Contains(lower, "clothing") &&
				containsAny(lower, "recommend", "weather", "season", "region")
		},
		steps: []stepTemplate{
			{
				action:   "Open the clothing recommendation section",
				data:     "Main navigation menu",
				expected: "Recommendation section is displayed",
			},
			{
				action:   "Enter the current weather conditions",
				data:     "Temperature, precipitation, wind",
				expected: "Weather inputs are accepted",
			},
			{
				action:   "Select the season",
				data:     "Spring / Summer / Autumn / Winter",
				expected: "Season selection is applied",
			},
			{
				action:   "Select the region",
				data:     "Region or city from the supported list",
				expected: "Region selection is applied",
			},
			{
				action:   "Request clothing recommendations",
				data:     "Recommendation button",
				expected: "A list of recommended clothing items is displayed",
			},
			{
				action:   "Review the recommended items against the selected weather, season, and region",
				data:     "Displayed recommendation list",
				expected: "Recommendations are appropriate for the given conditions",
			},
		},
	},
	{
		name: "creation-flow",
		matches: func(lower string) bool {
			return containsAny(lower, "create", "add", "new")
		},
		steps: []stepTemplate{
			{
				action:   "Navigate to the creation form for the described entity",
				data:     "Create / Add action",
				expected: "Creation form is displayed",
			},
			{
				action:   "Fill in all required fields with valid data",
				data:     "Valid field values",
				expected: "Fields accept the entered values without validation errors",
			},
			{
				action:   "Submit the form",
				data:     "Submit button",
				expected: "The entity is created and a confirmation is shown",
			},
			{
				action:   "Verify the created entity appears in the relevant listing",
				data:     "Entity list or detail view",
				expected: "The new entity is present with the entered values",
			},
		},
	},
}

// fallbackStep is emitted when no topical rule matches.
var fallbackStep = stepTemplate{
	action:   "Access the feature described in the requirement",
	data:     "Feature entry point",
	expected: "The feature is reachable and responds",
}

// bootstrapSteps always open the sequence.
var bootstrapSteps = []stepTemplate{
	{
		action:   "Navigate to the application",
		data:     "Application URL",
		expected: "Application loads successfully",
	},
	{
		action:   "Log in with valid credentials",
		data:     "Test user credentials",
		expected: "User is authenticated and the home screen is displayed",
	},
}

// verificationStep always closes the sequence.
var verificationStep = stepTemplate{
	action:   "Verify the overall result matches the expected behavior",
	data:     "Observed application state",
	expected: "All observed results match the documented expectations",
}

// criterionRule augments the baseline acceptance criteria when its keyword
// appears in the additional requirements.
type criterionRule struct {
	keywords    []string
	criterion   string
	description string
}

var criterionRules = []criterionRule{
	{
		keywords:    []string{"security"},
		criterion:   "Security requirements are enforced",
		description: "Access control, input sanitization, and session handling behave as specified",
	},
	{
		keywords:    []string{"mobile", "responsive"},
		criterion:   "Feature works on mobile and responsive layouts",
		description: "The feature renders and operates correctly on small-screen form factors",
	},
	{
		keywords:    []string{"browser", "compatibility"},
		criterion:   "Feature works across supported browsers",
		description: "Behavior is consistent on all browsers in the support matrix",
	},
}
