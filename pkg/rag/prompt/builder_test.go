package prompt

import (
	"testing"

	"care-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestClinicalPromptSections(t *testing.T) {
	b := NewBuilder()

	patient := &store.PatientSummary{
		Name:             "John Smith",
		PrimaryDiagnosis: "Chronic Kidney Disease Stage 3",
		DischargeDate:    "2026-08-10",
		Medications:      []string{"Lisinopril 10mg daily"},
	}
	refs := b.ReferenceContext([]store.Document{
		{Source: "renal-diet", Locator: "chunk 0 (offset 0-96)", Content: "Restrict sodium intake."},
	})

	p := b.Clinical("SYSTEM POLICY", patient, "How much sodium can I have?", []string{refs})

	assert.Contains(t, p, "SYSTEM POLICY")
	assert.Contains(t, p, "Patient Context:")
	assert.Contains(t, p, "John Smith")
	assert.Contains(t, p, "User Question: How much sodium can I have?")
	assert.Contains(t, p, "--- REFERENCE 1 [source: renal-diet chunk 0 (offset 0-96)] ---")
	assert.Contains(t, p, "Answer strictly and only from the Available Information above.")
}

func TestClinicalPromptWithoutContext(t *testing.T) {
	b := NewBuilder()

	p := b.Clinical("SYSTEM POLICY", nil, "anything", nil)
	assert.Contains(t, p, "No specific information available in reference materials.")
	assert.NotContains(t, p, "Patient Context:")
}

func TestFrontDeskPrompt(t *testing.T) {
	b := NewBuilder()

	p := b.FrontDesk("SYSTEM POLICY", &store.PatientSummary{Name: "John Smith"}, "when is my follow-up?")
	assert.Contains(t, p, "Current Patient Information:")
	assert.Contains(t, p, "John Smith")
	assert.Contains(t, p, "User Question: when is my follow-up?")

	p = b.FrontDesk("SYSTEM POLICY", nil, "hello")
	assert.NotContains(t, p, "Current Patient Information:")
}

func TestSourcesBlock(t *testing.T) {
	b := NewBuilder()

	block := b.SourcesBlock([]store.Citation{
		{Source: "renal-diet", Locator: "chunk 0 (offset 0-96)"},
		{Source: "https://example.org/sodium"},
	})
	assert.Contains(t, block, "Sources:")
	assert.Contains(t, block, "- renal-diet [chunk 0 (offset 0-96)]")
	assert.Contains(t, block, "- https://example.org/sodium")

	assert.Empty(t, b.SourcesBlock(nil))
}

func TestWebContext(t *testing.T) {
	b := NewBuilder()

	ctx := b.WebContext([]store.Document{
		{Source: "https://example.org/sodium", Locator: "Example Encyclopedia", Content: "Sodium restriction helps."},
	})
	assert.Contains(t, ctx, "Web Search Results:")
	assert.Contains(t, ctx, "1. Example Encyclopedia (https://example.org/sodium)")

	assert.Empty(t, b.WebContext(nil))
}
