package prompt

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore returns canned template overrides.
type stubStore struct {
	prompts map[string]string
}

func (s *stubStore) Load(name string) (string, error) {
	p, ok := s.prompts[name]
	if !ok {
		return "", errors.New("no such prompt")
	}
	return p, nil
}

func (s *stubStore) Reload() {}

func TestQA_GroundingContract(t *testing.T) {
	b := New()
	p := b.QA([]string{"Rent is $1500/month.", "Deposit is $1500."}, "What is the rent?")

	// The hallucination-reduction contract must be explicit in the prompt.
	assert.Contains(t, p.User, "ONLY using the information in these excerpts")
	assert.Contains(t, p.User, "The lease text here does not clearly specify this.")
	assert.Contains(t, p.User, "What is the rent?")
	assert.Contains(t, p.User, "Rent is $1500/month.")
	assert.Contains(t, p.User, SnippetSeparator)
	assert.False(t, p.Truncated)
}

func TestExtractTerms_FormatDirective(t *testing.T) {
	b := New()
	p := b.ExtractTerms("The monthly rent is $1500.")

	assert.Contains(t, p.User, `"monthly_rent"`)
	assert.Contains(t, p.User, `"property_address"`)
	assert.Contains(t, p.User, "SINGLE JSON object")
	assert.Contains(t, p.User, "set its value to null")
	assert.Contains(t, p.User, "The monthly rent is $1500.")
}

func TestRedFlags_FormatDirective(t *testing.T) {
	b := New()
	p := b.RedFlags("Landlord may enter at any time.")

	assert.Contains(t, p.User, `"flags"`)
	assert.Contains(t, p.User, `"low" | "medium" | "high"`)
	assert.Contains(t, p.User, "Landlord may enter at any time.")
}

func TestClip_Truncation(t *testing.T) {
	b := New(WithMaxContextChars(100))
	long := strings.Repeat("clause ", 50)

	p := b.Summarise(long)
	assert.True(t, p.Truncated)
	assert.Contains(t, p.User, TruncationMarker)

	short := "Short lease."
	p = b.Summarise(short)
	assert.False(t, p.Truncated)
	assert.NotContains(t, p.User, TruncationMarker)
}

func TestClip_BudgetApplied(t *testing.T) {
	b := New(WithMaxContextChars(50))
	long := strings.Repeat("x", 500)

	p := b.ExtractTerms(long)
	require.True(t, p.Truncated)
	// Only the clipped prefix of the document makes it into the prompt.
	assert.NotContains(t, p.User, strings.Repeat("x", 51))
	assert.Contains(t, p.User, strings.Repeat("x", 50))
}

func TestClip_MultibyteBudget(t *testing.T) {
	b := New(WithMaxContextChars(40))
	long := strings.Repeat("Tenant’s café clause §7. ", 20)

	p := b.Summarise(long)
	require.True(t, p.Truncated)
	assert.True(t, utf8.ValidString(p.User))
	assert.Contains(t, p.User, TruncationMarker)
	// The budget counts characters, so the clipped document keeps whole runes.
	runes := []rune(long)
	assert.Contains(t, p.User, string(runes[:40]))
}

func TestPromptStoreOverride(t *testing.T) {
	store := &stubStore{prompts: map[string]string{
		"summarise": "Give me the short version of: %s",
	}}
	b := New(WithPromptStore(store))

	p := b.Summarise("Lease text.")
	assert.Equal(t, "Give me the short version of: Lease text.", p.User)

	// Missing overrides fall back to the built-in template.
	q := b.QA([]string{"snippet"}, "question?")
	assert.Contains(t, q.User, "ONLY using the information in these excerpts")
}
