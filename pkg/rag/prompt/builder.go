package prompt

import (
	"fmt"
	"strings"

	"care-assistant-be/pkg/store"
)

// Builder assembles the grounded prompts sent to the language model. All
// context the model may use is inlined; the system prompt forbids anything
// beyond it.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// PatientContext renders the resolved identity block, or an empty string
// when the session is anonymous.
func (b *Builder) PatientContext(p *store.PatientSummary) string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Patient Context:\n")
	fmt.Fprintf(&sb, "Name: %s\n", p.Name)
	fmt.Fprintf(&sb, "Diagnosis: %s\n", p.PrimaryDiagnosis)
	fmt.Fprintf(&sb, "Discharge Date: %s\n", p.DischargeDate)
	if len(p.Medications) > 0 {
		fmt.Fprintf(&sb, "Medications: %s\n", strings.Join(p.Medications, ", "))
	}
	if p.FollowUp != "" {
		fmt.Fprintf(&sb, "Follow-up: %s\n", p.FollowUp)
	}
	return sb.String()
}

// ReferenceContext renders retrieved corpus chunks as a numbered context
// section the model can cite from.
func (b *Builder) ReferenceContext(docs []store.Document) string {
	if len(docs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Reference Material Information:\n")
	for i, d := range docs {
		fmt.Fprintf(&sb, "--- REFERENCE %d [source: %s %s] ---\n%s\n", i+1, d.Source, d.Locator, d.Content)
	}
	return sb.String()
}

// WebContext renders external search snippets.
func (b *Builder) WebContext(docs []store.Document) string {
	if len(docs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Web Search Results:\n")
	for i, d := range docs {
		fmt.Fprintf(&sb, "%d. %s (%s)\n%s\n", i+1, d.Locator, d.Source, d.Content)
	}
	return sb.String()
}

// Clinical builds the full domain-expert prompt: system policy, patient
// context, the question, and every context block available this turn.
func (b *Builder) Clinical(systemPrompt string, patient *store.PatientSummary, question string, contextParts []string) string {
	fullContext := "No specific information available in reference materials."
	if len(contextParts) > 0 {
		fullContext = strings.Join(contextParts, "\n\n")
	}

	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")
	if pc := b.PatientContext(patient); pc != "" {
		sb.WriteString(pc)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "User Question: %s\n\n", question)
	fmt.Fprintf(&sb, "Available Information:\n%s\n\n", fullContext)
	sb.WriteString(`Answer strictly and only from the Available Information above. If the information is insufficient, explicitly say so and recommend consulting a healthcare professional. Provide:
- Assessment (based only on context)
- Guidance (based only on context)
- Red flags and when to seek urgent care
- Next steps
- Short summary
Include exact citations as [source: <document> <locator>] and web URLs when applicable.`)
	return sb.String()
}

// FrontDesk builds the receptionist prompt for free-form questions about
// an already resolved discharge record.
func (b *Builder) FrontDesk(systemPrompt string, patient *store.PatientSummary, question string) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")
	if pc := b.PatientContext(patient); pc != "" {
		sb.WriteString("Current Patient Information:\n")
		sb.WriteString(pc)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "User Question: %s", question)
	return sb.String()
}

// SourcesBlock renders the trailing Sources list appended to clinical
// answers.
func (b *Builder) SourcesBlock(citations []store.Citation) string {
	if len(citations) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\n---\nSources:\n")
	for _, c := range citations {
		if c.Locator != "" {
			fmt.Fprintf(&sb, "- %s [%s]\n", c.Source, c.Locator)
		} else {
			fmt.Fprintf(&sb, "- %s\n", c.Source)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
