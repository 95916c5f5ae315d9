package entity

// Confidence is the qualitative certainty of an extracted value.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func (c Confidence) IsValid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ConfidenceFromScore buckets a model probability in [0,1].
func ConfidenceFromScore(score float64) Confidence {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// NeedsFollowUp reports whether an extracted value should be confirmed with a nudge.
// An unset confidence counts as low.
func (c Confidence) NeedsFollowUp() bool {
	return c == ConfidenceLow || c == ""
}
