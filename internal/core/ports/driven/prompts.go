package driven

// PromptStore provides access to LLM prompt templates. Implementations may
// load prompts from files, embed them in the binary, or serve built-in
// defaults.
type PromptStore interface {
	// Load returns the prompt template for the given name. If no override
	// exists the caller falls back to its built-in default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptQA answers tenant questions grounded in retrieved excerpts.
	// The template expects %s (context) and %s (question) placeholders.
	PromptQA = "qa"

	// PromptExtractTerms extracts the fixed lease term schema as JSON.
	// The template expects a %s (lease text) placeholder.
	PromptExtractTerms = "extract_terms"

	// PromptRedFlags scans for risky clauses, output as JSON.
	// The template expects a %s (lease text) placeholder.
	PromptRedFlags = "red_flags"

	// PromptSummarise produces a plain-language lease summary.
	// The template expects a %s (lease text) placeholder.
	PromptSummarise = "summarise"
)
