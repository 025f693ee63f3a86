package domain

import "time"

// Placeholder values for assessment fields the model left blank.
const (
	AssessmentUndetermined = "undetermined"
)

// QualityAssessment is the AI-generated quality verdict for one
// candidate. Numeric fields are clamped to 0-10 at parse time.
//
// When Error is non-empty every numeric field is zero and string
// fields hold their fallback values: a failed parse is never presented
// as a partially-trusted assessment.
type QualityAssessment struct {
	// QualityScore is the overall quality rating, 0-10.
	QualityScore int `json:"qualityScore"`

	// Verdict is a short human-readable judgement.
	Verdict string `json:"verdict"`

	// Categories lists the content categories the model detected.
	Categories []string `json:"categories"`

	// CommercialIndex rates advertising/sales orientation, 0-10.
	CommercialIndex int `json:"commercialIndex"`

	// EducationalValue rates learning usefulness, 0-10.
	EducationalValue int `json:"educationalValue"`

	// ContentType describes originality (original/reposts/mixed).
	ContentType string `json:"contentType"`

	// TargetAudience describes who the content is for.
	TargetAudience string `json:"targetAudience"`

	// Warnings lists model-flagged concerns, empty when none.
	Warnings []string `json:"warnings"`

	// Recommendation is the model's subscribe/skip advice.
	Recommendation string `json:"recommendation"`

	// Error is set on transport or parse failure; the rest of the
	// record then holds safe defaults.
	Error string `json:"error,omitempty"`
}

// Failed reports whether this is the fallback assessment.
func (a QualityAssessment) Failed() bool {
	return a.Error != ""
}

// FallbackAssessment returns the explicit safe-default assessment used
// when inference fails. All scores are zero so that callers can never
// mistake a failure for average quality.
func FallbackAssessment(reason string) QualityAssessment {
	return QualityAssessment{
		Verdict:        "analysis unavailable",
		Categories:     []string{},
		ContentType:    AssessmentUndetermined,
		TargetAudience: AssessmentUndetermined,
		Warnings:       []string{},
		Recommendation: AssessmentUndetermined,
		Error:          reason,
	}
}

// EnrichedCandidate is a SearchCandidate with activity metrics and a
// quality assessment attached. Never mutated after creation;
// re-analysis produces a new instance.
type EnrichedCandidate struct {
	SearchCandidate

	// Enriched reports whether the enrichment pass ran for this
	// candidate. Candidates beyond the analysis limit pass through
	// with Enriched false and zero Metrics/Assessment.
	Enriched bool `json:"enriched"`

	// Metrics is the sampled activity statistics.
	Metrics ActivityMetrics `json:"metrics"`

	// Assessment is the AI quality verdict, possibly the fallback.
	Assessment QualityAssessment `json:"assessment"`

	// AnalyzedAt is when the enrichment completed.
	AnalyzedAt time.Time `json:"analyzedAt,omitzero"`
}

// BatchStats summarises the AI assessments across one enriched batch.
type BatchStats struct {
	// Total is the number of candidates in the batch.
	Total int

	// Analyzed is how many carry a non-failed assessment.
	Analyzed int

	// AvgScore is the mean quality score over analyzed candidates,
	// rounded to one decimal place.
	AvgScore float64

	// HighQuality counts analyzed candidates scoring 7 or above.
	HighQuality int

	// WithWarnings counts analyzed candidates with at least one warning.
	WithWarnings int
}

// ComputeBatchStats derives summary statistics from an enriched batch.
func ComputeBatchStats(batch []EnrichedCandidate) BatchStats {
	stats := BatchStats{Total: len(batch)}
	sum := 0
	for _, c := range batch {
		if !c.Enriched || c.Assessment.Failed() {
			continue
		}
		stats.Analyzed++
		sum += c.Assessment.QualityScore
		if c.Assessment.QualityScore >= 7 {
			stats.HighQuality++
		}
		if len(c.Assessment.Warnings) > 0 {
			stats.WithWarnings++
		}
	}
	if stats.Analyzed > 0 {
		avg := float64(sum) / float64(stats.Analyzed)
		stats.AvgScore = float64(int(avg*10+0.5)) / 10
	}
	return stats
}
