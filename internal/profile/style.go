package profile

// SocialStyle classifies how much a person leans toward social engagement
type SocialStyle string

const (
	Introverted SocialStyle = "Introverted"
	Balanced    SocialStyle = "Balanced"
	Extroverted SocialStyle = "Extroverted"
)

// ActivityPreference classifies the group size a person gravitates toward
type ActivityPreference string

const (
	SoloActivities       ActivityPreference = "Solo activities"
	SmallGroupActivities ActivityPreference = "Small group activities"
	LargeGroupActivities ActivityPreference = "Large group activities"
)

const (
	socialThreshold   = 0.5
	activityThreshold = 0.3
)

func classifySocial(x float64) SocialStyle {
	switch {
	case x < -socialThreshold:
		return Introverted
	case x > socialThreshold:
		return Extroverted
	default:
		return Balanced
	}
}

func classifyActivity(x float64) ActivityPreference {
	switch {
	case x < -activityThreshold:
		return SoloActivities
	case x > activityThreshold:
		return LargeGroupActivities
	default:
		return SmallGroupActivities
	}
}

// suggestionPick maps each social style to the suggestion it selects from a
// category's template list
var suggestionPick = map[SocialStyle]func(n int) int{
	Introverted: func(int) int { return 0 },
	Balanced:    func(n int) int { return n / 2 },
	Extroverted: func(n int) int { return n - 1 },
}

// pick returns the suggestion for this style, or "" when there is none
func (s SocialStyle) pick(templates []string) string {
	if len(templates) == 0 {
		return ""
	}
	index, ok := suggestionPick[s]
	if !ok {
		index = suggestionPick[Balanced]
	}
	return templates[index(len(templates))]
}
