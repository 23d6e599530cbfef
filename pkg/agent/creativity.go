package agent

// CreativityLevel describes how much liberty the Drafter takes with the
// candidate's wording.
type CreativityLevel struct {
	Name        string
	Description string
	Temperature float64
}

// DefaultCreativity is the balanced middle setting.
const DefaultCreativity = 3

//nolint:gochecknoglobals // Fixed level table shared by CLI and server
var creativityLevels = map[int]CreativityLevel{
	1: {
		Name:        "Conservative",
		Description: "Minimal changes - only reorganize and select relevant content",
		Temperature: 0.3,
	},
	2: {
		Name:        "Moderate",
		Description: "Light rewording to incorporate job description keywords",
		Temperature: 0.5,
	},
	3: {
		Name:        "Balanced",
		Description: "Actively tailor content while staying truthful",
		Temperature: 0.7,
	},
	4: {
		Name:        "Creative",
		Description: "Significant rewriting to emphasize relevant skills",
		Temperature: 0.8,
	},
	5: {
		Name:        "Bold",
		Description: "Maximum adaptation - infer and highlight transferable skills",
		Temperature: 0.9,
	},
}

// Creativity returns the level definition, falling back to the balanced
// default for out-of-range values.
func Creativity(level int) (c CreativityLevel) {
	c, ok := creativityLevels[level]
	if !ok {
		c = creativityLevels[DefaultCreativity]
	}
	return c
}
