package driven

// Prompt template names.
const (
	// PromptAssessment is the quality-assessment request template. It
	// takes three %s placeholders: the community block, the activity
	// metrics block and the recent-posts block.
	PromptAssessment = "assessment"
)

// PromptStore provides access to LLM prompt templates.
// Implementations may load from user-editable files with embedded
// defaults as fallback.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cache, forcing fresh loads from storage.
	Reload()

	// Dir returns the prompt directory path.
	Dir() string
}
