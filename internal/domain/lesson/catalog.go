package lesson

// Built-in lesson catalog. Lessons ship with the binary until there is an
// authoring flow; the catalog shape matches the lessons table so moving to
// DB-backed content is a repository swap.
var catalog = []Lesson{
	{
		ID:    1,
		Title: "Creating Compelling Content",
		Content: `Learn how to create engaging content that drives results:

1. Hook viewers in the first 3 seconds
2. Show the problem and solution clearly
3. Use dynamic camera movements
4. Include strong call-to-actions
5. Optimize for mobile viewing

Video tutorial: https://example.com/lesson1`,
		Quiz: Quiz{
			Questions: []Question{
				{
					Question: "How long do you have to hook viewers?",
					Options:  []string{"1 second", "3 seconds", "5 seconds", "10 seconds"},
					Correct:  1,
				},
				{
					Question: "What's most important for mobile optimization?",
					Options:  []string{"High resolution", "Vertical format", "Long duration", "Complex editing"},
					Correct:  1,
				},
				{
					Question: "A strong call-to-action should be:",
					Options:  []string{"Subtle", "At the end only", "Clear and direct", "Optional"},
					Correct:  2,
				},
			},
		},
	},
	{
		ID:    2,
		Title: "Performance Metrics That Matter",
		Content: `Understanding key metrics for success:

1. View completion rates vs raw views
2. Engagement depth (likes, comments, shares)
3. Conversion tracking through outcomes
4. Time-of-day posting optimization
5. Hashtag strategy for discoverability

Video tutorial: https://example.com/lesson2`,
		Quiz: Quiz{
			Questions: []Question{
				{
					Question: "Which metric indicates content quality best?",
					Options:  []string{"Total views", "View completion rate", "Number of hashtags", "Video length"},
					Correct:  1,
				},
				{
					Question: "When should you track outcomes?",
					Options:  []string{"Only after 1000 views", "Within 24 hours", "Throughout the campaign", "Never"},
					Correct:  2,
				},
				{
					Question: "Optimal posting time depends on:",
					Options:  []string{"Your schedule", "Target audience behavior", "Platform algorithm", "Video length"},
					Correct:  1,
				},
			},
		},
	},
}

// Catalog returns all available lessons
func Catalog() []Lesson {
	return catalog
}

// Find returns the lesson with the given ID, or nil
func Find(id int) *Lesson {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
