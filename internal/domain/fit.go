package domain

// PhotoQuality is the verdict on an onboarding photo.
type PhotoQuality struct {
	Valid    bool   `json:"valid"`
	Feedback string `json:"feedback"`
}

// FitAnalysis compares the original photo against a generated try-on.
// It is produced whole and replaced whole on every attempt.
type FitAnalysis struct {
	OverallFit         string  `json:"overall_fit"`
	Length             string  `json:"length"`
	Width              string  `json:"width"`
	Confidence         float64 `json:"confidence"`
	SizeRecommendation string  `json:"size_recommendation"`
	StyleAdvice        string  `json:"style_advice"`
}

// DefaultFitAnalysis is shown when the fit call cannot be completed.
func DefaultFitAnalysis() FitAnalysis {
	return FitAnalysis{
		OverallFit:         "Good",
		Length:             "Perfect",
		Width:              "Regular",
		Confidence:         85,
		SizeRecommendation: "True to Size",
		StyleAdvice:        "Looks great!",
	}
}
