package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
	"github.com/chanscout/chanscout-cli/internal/logger"
)

// Generation settings for assessment requests. Low temperature keeps
// assessments as reproducible as the external model allows.
const (
	DefaultAssessTemperature = 0.3
	DefaultAssessMaxTokens   = 4000

	// promptExcerptLen bounds each content excerpt inside the prompt.
	promptExcerptLen = 200
)

// Assessor builds a structured-assessment request from candidate
// metadata, metrics and content samples, invokes the inference
// service, and validates the response. Any transport or parse failure
// yields the explicit fallback assessment, never a partially-trusted
// record.
type Assessor struct {
	llm         driven.LLMService
	prompts     driven.PromptStore
	temperature float64
	maxTokens   int
}

// NewAssessor creates an assessor. The LLM service may be nil, in
// which case every assessment is the fallback. The prompt store may be
// nil, in which case the built-in template is used.
func NewAssessor(llm driven.LLMService, prompts driven.PromptStore) *Assessor {
	return &Assessor{
		llm:         llm,
		prompts:     prompts,
		temperature: DefaultAssessTemperature,
		maxTokens:   DefaultAssessMaxTokens,
	}
}

// Assess produces a quality assessment for one candidate. It never
// returns an error: failures are represented as the fallback
// assessment with Error populated and every score at its safe default.
func (a *Assessor) Assess(
	ctx context.Context,
	candidate domain.SearchCandidate,
	metrics domain.ActivityMetrics,
	samples []domain.ContentSample,
) domain.QualityAssessment {
	if a.llm == nil {
		return domain.FallbackAssessment(domain.ErrLLMUnavailable.Error())
	}

	prompt := a.buildPrompt(candidate, metrics, samples)
	logger.Debug("Assessing %q with %s (%d excerpts)", candidate.Title, a.llm.ModelName(), len(samples))

	response, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		logger.Warn("Assessment of %q failed: %v", candidate.Title, err)
		return domain.FallbackAssessment(fmt.Sprintf("%v: %v", domain.ErrAssessmentFailed, err))
	}

	assessment, err := parseAssessment(response)
	if err != nil {
		logger.Warn("Assessment of %q unparsable: %v", candidate.Title, err)
		return domain.FallbackAssessment(fmt.Sprintf("%v: %v", domain.ErrAssessmentFailed, err))
	}
	return assessment
}

// defaultAssessmentPrompt is the fallback template when no PromptStore
// is configured. Placeholders: community block, metrics block, posts
// block.
const defaultAssessmentPrompt = `Analyze this public messaging community and rate its quality.

COMMUNITY:
%s
ACTIVITY METRICS:
%s
RECENT POSTS:
%s
Return ONLY a JSON object, no surrounding text:

{
  "qualityScore": number 0-10,
  "verdict": "short verdict (useful/spam/advertising/educational/news)",
  "categories": ["content categories"],
  "commercialIndex": number 0-10,
  "educationalValue": number 0-10,
  "contentType": "original/reposts/mixed",
  "targetAudience": "who the content is for",
  "warnings": ["concerns, if any"],
  "recommendation": "subscribe or skip, one sentence"
}`

// buildPrompt assembles the structured assessment request.
func (a *Assessor) buildPrompt(
	candidate domain.SearchCandidate,
	metrics domain.ActivityMetrics,
	samples []domain.ContentSample,
) string {
	var community strings.Builder
	fmt.Fprintf(&community, "- Title: %s\n", candidate.Title)
	fmt.Fprintf(&community, "- Description: %s\n", orPlaceholder(candidate.Description))
	fmt.Fprintf(&community, "- Subscribers: %d\n", metrics.SubscriberCount)
	fmt.Fprintf(&community, "- Handle: %s\n", orPlaceholder(candidate.Handle))
	fmt.Fprintf(&community, "- Kind: %s\n", candidate.Kind)

	var activity strings.Builder
	fmt.Fprintf(&activity, "- Posts sampled: %d\n", metrics.PostsSampled)
	fmt.Fprintf(&activity, "- Posts per day: %.1f\n", metrics.AvgPostsPerDay)
	fmt.Fprintf(&activity, "- Average views per post: %d\n", metrics.AvgViewsPerPost)
	fmt.Fprintf(&activity, "- Media share: %d%%\n", metrics.MediaRatio)
	fmt.Fprintf(&activity, "- Forwarded share: %d%%\n", metrics.ForwardRatio)

	var posts strings.Builder
	for i, sample := range samples {
		fmt.Fprintf(&posts, "%d. %s\n", i+1, truncate(sample.Text, promptExcerptLen))
	}

	return fmt.Sprintf(a.loadTemplate(), community.String(), activity.String(), posts.String())
}

// loadTemplate fetches the assessment template, falling back to the
// built-in one when no store is configured or loading fails.
func (a *Assessor) loadTemplate() string {
	if a.prompts == nil {
		return defaultAssessmentPrompt
	}
	template, err := a.prompts.Load(driven.PromptAssessment)
	if err != nil || strings.Count(template, "%s") != 3 {
		logger.Debug("Assessment template unusable, using built-in default (err: %v)", err)
		return defaultAssessmentPrompt
	}
	return template
}

// rawAssessment tolerates the loose typing of model output: numeric
// fields may arrive fractional and string fields may be absent.
type rawAssessment struct {
	QualityScore     float64  `json:"qualityScore"`
	Verdict          string   `json:"verdict"`
	Categories       []string `json:"categories"`
	CommercialIndex  float64  `json:"commercialIndex"`
	EducationalValue float64  `json:"educationalValue"`
	ContentType      string   `json:"contentType"`
	TargetAudience   string   `json:"targetAudience"`
	Warnings         []string `json:"warnings"`
	Recommendation   string   `json:"recommendation"`
}

// parseAssessment strips code-fence wrapping, parses the model output,
// clamps every numeric field into range and defaults missing fields.
func parseAssessment(response string) (domain.QualityAssessment, error) {
	cleaned := stripFences(response)
	if cleaned == "" {
		return domain.QualityAssessment{}, fmt.Errorf("empty response")
	}

	var raw rawAssessment
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return domain.QualityAssessment{}, fmt.Errorf("decode assessment: %w", err)
	}

	return domain.QualityAssessment{
		QualityScore:     clampScore(raw.QualityScore),
		Verdict:          defaultString(raw.Verdict),
		Categories:       defaultSlice(raw.Categories),
		CommercialIndex:  clampScore(raw.CommercialIndex),
		EducationalValue: clampScore(raw.EducationalValue),
		ContentType:      defaultString(raw.ContentType),
		TargetAudience:   defaultString(raw.TargetAudience),
		Warnings:         defaultSlice(raw.Warnings),
		Recommendation:   defaultString(raw.Recommendation),
	}, nil
}

// stripFences removes markdown code-fence wrapping, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if after, ok := strings.CutPrefix(s, "```"); ok {
		s = after
		if idx := strings.Index(s, "\n"); idx >= 0 && !strings.HasPrefix(s, "{") {
			// Drop the language tag line ("json").
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return int(v + 0.5)
}

func defaultString(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.AssessmentUndetermined
	}
	return s
}

func defaultSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orPlaceholder(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
