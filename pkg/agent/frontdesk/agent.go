package frontdesk

import (
	"context"
	"errors"
	"fmt"

	"care-assistant-be/internal/constant"
	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/pkg/llm"
	"care-assistant-be/pkg/rag/prompt"
	"care-assistant-be/pkg/store"
)

// IdentityResolver looks up a discharge record by patient name. It returns
// store.ErrIdentityNotFound when nothing matches and
// store.ErrIdentityAmbiguous when the name matches more than one record.
type IdentityResolver interface {
	Resolve(ctx context.Context, name string) (*store.PatientSummary, error)
}

// Reply is the front desk's contribution to a turn. Patient is non-nil
// only when this reply resolved a new identity.
type Reply struct {
	Text    string
	Origin  string
	Patient *store.PatientSummary
}

// Agent is the receptionist: it greets, resolves identities, and answers
// basic questions about an already resolved discharge record.
type Agent struct {
	resolver IdentityResolver
	llm      llm.LLMProvider
	prompts  *prompt.Builder
	logger   logger.ILogger
}

func NewAgent(resolver IdentityResolver, provider llm.LLMProvider, prompts *prompt.Builder, log logger.ILogger) *Agent {
	return &Agent{
		resolver: resolver,
		llm:      provider,
		prompts:  prompts,
		logger:   log,
	}
}

// Greet answers a bare greeting without attempting identity lookup.
func (a *Agent) Greet() *Reply {
	return &Reply{
		Text:   constant.GreetingResponse,
		Origin: store.OriginDirectAnswer,
	}
}

// ResolveIdentity treats the utterance as a patient name. Lookup failures
// keep the session unidentified; only an unambiguous match attaches a
// patient to the reply.
func (a *Agent) ResolveIdentity(ctx context.Context, utterance string) *Reply {
	patient, err := a.resolver.Resolve(ctx, utterance)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrIdentityNotFound):
			return &Reply{
				Text:   fmt.Sprintf(constant.IdentityNotFoundTemplate, utterance),
				Origin: store.OriginDirectAnswer,
			}
		case errors.Is(err, store.ErrIdentityAmbiguous):
			return &Reply{
				Text:   fmt.Sprintf(constant.IdentityAmbiguousTemplate, utterance),
				Origin: store.OriginDirectAnswer,
			}
		default:
			a.logger.Error("frontdesk", "Identity lookup failed", map[string]interface{}{
				"error": err.Error(),
			})
			return &Reply{
				Text:   constant.FrontDeskErrorResponse,
				Origin: store.OriginDirectAnswer,
			}
		}
	}

	a.logger.Info("frontdesk", "Identity resolved", map[string]interface{}{
		"patient_id": patient.ID,
	})
	return &Reply{
		Text:    fmt.Sprintf(constant.IdentityFoundTemplate, patient.Name, patient.DischargeDate, patient.PrimaryDiagnosis),
		Origin:  store.OriginDirectAnswer,
		Patient: patient,
	}
}

// Answer handles a free-form question about the resolved discharge record.
func (a *Agent) Answer(ctx context.Context, session *store.Session, utterance string) *Reply {
	p := a.prompts.FrontDesk(constant.FrontDeskSystemPrompt, session.Patient, utterance)

	text, err := a.llm.Generate(ctx, p, llm.WithTemperature(0.7))
	if err != nil {
		a.logger.Error("frontdesk", "Generation failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return &Reply{
			Text:   constant.FrontDeskErrorResponse,
			Origin: store.OriginDirectAnswer,
		}
	}

	return &Reply{
		Text:   text,
		Origin: store.OriginDirectAnswer,
	}
}
