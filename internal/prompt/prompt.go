// Package prompt builds the task prompts sent to the local LLM. Each task
// carries a fixed instruction template with a strict output-format
// directive; templates can be overridden through a PromptStore.
package prompt

import (
	"fmt"
	"strings"

	"github.com/JamesKang003/leasewise/internal/chunker"
	"github.com/JamesKang003/leasewise/internal/core/ports/driven"
)

// DefaultMaxContextChars bounds how much lease text the full-document
// tasks (extraction, red flags, summary) put into one prompt. Long
// documents are clipped rather than rejected; coverage degrades but the
// pipeline keeps working.
const DefaultMaxContextChars = 8000

// TruncationMarker is appended whenever document text is clipped, so the
// model knows the text is partial.
const TruncationMarker = "\n\n[lease text truncated]"

// SnippetSeparator joins retrieved excerpts in the QA prompt.
const SnippetSeparator = "\n\n---\n\n"

// Prompt is a built prompt, ready for the model client.
type Prompt struct {
	// System is the system-role instruction.
	System string

	// User is the user-role message carrying context and task.
	User string

	// Truncated reports that document text was clipped to the context
	// budget. Carried through to the caller-visible result.
	Truncated bool
}

// Builder constructs task prompts. The zero value is not usable; use New.
type Builder struct {
	maxContextChars int
	store           driven.PromptStore
}

// Option configures the builder.
type Option func(*Builder)

// WithMaxContextChars sets the context budget for full-document tasks.
func WithMaxContextChars(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxContextChars = n
		}
	}
}

// WithPromptStore sets a store for template overrides. When a template is
// missing from the store the built-in default is used.
func WithPromptStore(store driven.PromptStore) Option {
	return func(b *Builder) {
		b.store = store
	}
}

// New creates a prompt builder.
func New(opts ...Option) *Builder {
	b := &Builder{maxContextChars: DefaultMaxContextChars}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// QA builds the grounded question-answer prompt. Context is the retrieved
// excerpts only, never the whole document: the model is told to answer
// solely from them and to say so when they do not contain the answer.
func (b *Builder) QA(snippets []string, question string) Prompt {
	template := b.load(driven.PromptQA, defaultQAPrompt)
	context := strings.Join(snippets, SnippetSeparator)
	return Prompt{
		System: qaSystem,
		User:   fmt.Sprintf(template, context, question),
	}
}

// ExtractTerms builds the structured term-extraction prompt over the full
// document text, clipped to the context budget.
func (b *Builder) ExtractTerms(docText string) Prompt {
	template := b.load(driven.PromptExtractTerms, defaultExtractPrompt)
	text, truncated := b.clip(docText)
	return Prompt{
		System:    extractSystem,
		User:      fmt.Sprintf(template, text),
		Truncated: truncated,
	}
}

// RedFlags builds the risky-clause scan prompt over the full document
// text, clipped to the context budget.
func (b *Builder) RedFlags(docText string) Prompt {
	template := b.load(driven.PromptRedFlags, defaultRedFlagPrompt)
	text, truncated := b.clip(docText)
	return Prompt{
		System:    redFlagSystem,
		User:      fmt.Sprintf(template, text),
		Truncated: truncated,
	}
}

// Summarise builds the plain-language summary prompt over the full
// document text, clipped to the context budget.
func (b *Builder) Summarise(docText string) Prompt {
	template := b.load(driven.PromptSummarise, defaultSummarisePrompt)
	text, truncated := b.clip(docText)
	return Prompt{
		System:    summariseSystem,
		User:      fmt.Sprintf(template, text),
		Truncated: truncated,
	}
}

// clip truncates document text from the end to the context budget,
// appending the truncation marker when anything was removed. The budget
// counts characters, not bytes.
func (b *Builder) clip(text string) (string, bool) {
	clipped, truncated := chunker.Clip(text, b.maxContextChars)
	if !truncated {
		return text, false
	}
	return clipped + TruncationMarker, true
}

// load returns the template override from the store, or the default.
func (b *Builder) load(name, fallback string) string {
	if b.store == nil {
		return fallback
	}
	template, err := b.store.Load(name)
	if err != nil || template == "" {
		return fallback
	}
	return template
}

// System prompts per task.
const (
	qaSystem        = "You analyse residential lease agreements for tenants."
	extractSystem   = "You extract structured JSON data from residential leases."
	redFlagSystem   = "You carefully identify potentially risky lease clauses as JSON."
	summariseSystem = "You are an assistant that summarises residential leases."
)

const defaultQAPrompt = `You are an assistant that helps a tenant understand their lease agreement.

You will be given EXCERPTS from the lease.
Your job is to answer the question ONLY using the information in these excerpts.
If something is not clearly stated in the lease text, say you cannot be certain.

LEASE TEXT (EXCERPTS):
"""%s"""

QUESTION:
%s

INSTRUCTIONS:
- Cite specific phrases or sections from the excerpts when possible (in plain language).
- If the lease text doesn't clearly answer, explicitly say: "The lease text here does not clearly specify this."
- Explain in simple, non-legal language.`

const defaultExtractPrompt = `You are an assistant that extracts key information from a residential lease agreement.

Read the lease text below and return a SINGLE JSON object with EXACTLY these keys:

- "monthly_rent"
- "rent_due_date"
- "lease_start"
- "lease_end"
- "security_deposit"
- "late_fee"
- "utilities_tenant"
- "utilities_landlord"
- "pets_allowed"
- "notice_period"
- "property_address"

Rules:
- If a field is not clearly specified, set its value to null.
- All values must be either a string or null.
- Do NOT include any extra keys.
- Do NOT include any surrounding explanation, markdown, or text. Only output the JSON.

LEASE TEXT:
"""%s"""`

const defaultRedFlagPrompt = `You are a cautious assistant that reviews a residential lease agreement
and identifies potentially risky or tenant-unfriendly clauses.

Read the lease text below and return a SINGLE JSON object with EXACTLY this structure:

{
  "flags": [
    {
      "id": "short_identifier_like_late_fee_high",
      "title": "Short human-readable name of the issue",
      "severity": "low" | "medium" | "high",
      "clause_text": "Exact or near-exact text from the lease that triggered this flag",
      "explanation": "Plain language explanation of why this might be risky for the tenant"
    }
  ]
}

Rules:
- If there are no obvious issues, return { "flags": [] }.
- "severity" must be exactly one of "low", "medium", or "high".
- Only include clauses that might reasonably disadvantage or surprise a tenant.
- Do NOT add any keys other than "flags".
- Do NOT add any explanation outside of the JSON. Only output JSON.

Examples of possible issues:
- Unusually high late fees or vague "penalties"
- Landlord entry with no notice
- Tenant responsible for all repairs or structural issues
- Automatic rent increases without clear limits
- Very long notice periods for move-out
- Non-refundable "deposits" that are unusual

LEASE TEXT:
"""%s"""`

const defaultSummarisePrompt = `You are an assistant that summarises residential lease agreements.

Here is the lease text (it may be partial, but do your best):
"""%s"""

Summarise this lease for a non-expert tenant using bullet points.
Include, if possible:
- Monthly rent and payment schedule
- Lease start and end dates
- Security deposit
- Late fee rules
- Who pays for utilities
- Rules about pets
- Termination / notice requirements
- Any obvious red flags or unusual clauses

Be concise but clear.`
