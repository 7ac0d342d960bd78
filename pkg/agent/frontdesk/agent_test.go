package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"care-assistant-be/internal/constant"
	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/pkg/llm"
	"care-assistant-be/pkg/rag/prompt"
	"care-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	patient *store.PatientSummary
	err     error
}

func (f *fakeResolver) Resolve(ctx context.Context, name string) (*store.PatientSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.patient, nil
}

type fakeLLM struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, p string, options ...llm.Option) (string, error) {
	f.lastPrompt = p
	return f.reply, f.err
}

func newAgent(resolver IdentityResolver, provider llm.LLMProvider) *Agent {
	return NewAgent(resolver, provider, prompt.NewBuilder(), logger.NewNoop())
}

func TestGreet(t *testing.T) {
	agent := newAgent(&fakeResolver{}, &fakeLLM{})

	reply := agent.Greet()
	assert.Equal(t, constant.GreetingResponse, reply.Text)
	assert.Equal(t, store.OriginDirectAnswer, reply.Origin)
	assert.Nil(t, reply.Patient)
}

func TestResolveIdentityFound(t *testing.T) {
	patient := &store.PatientSummary{
		ID:               "7f9c0e0a",
		Name:             "John Smith",
		DischargeDate:    "2026-08-10",
		PrimaryDiagnosis: "Chronic Kidney Disease Stage 3",
	}
	agent := newAgent(&fakeResolver{patient: patient}, &fakeLLM{})

	reply := agent.ResolveIdentity(context.Background(), "John Smith")
	require.NotNil(t, reply.Patient)
	assert.Equal(t, patient, reply.Patient)
	assert.Equal(t, store.OriginDirectAnswer, reply.Origin)
	assert.Equal(t,
		fmt.Sprintf(constant.IdentityFoundTemplate, "John Smith", "2026-08-10", "Chronic Kidney Disease Stage 3"),
		reply.Text)
}

func TestResolveIdentityNotFound(t *testing.T) {
	agent := newAgent(&fakeResolver{err: store.ErrIdentityNotFound}, &fakeLLM{})

	reply := agent.ResolveIdentity(context.Background(), "Nobody Here")
	assert.Nil(t, reply.Patient)
	assert.Contains(t, reply.Text, "couldn't find a discharge report for 'Nobody Here'")
}

func TestResolveIdentityAmbiguous(t *testing.T) {
	agent := newAgent(&fakeResolver{err: store.ErrIdentityAmbiguous}, &fakeLLM{})

	reply := agent.ResolveIdentity(context.Background(), "Smith")
	assert.Nil(t, reply.Patient)
	assert.Contains(t, reply.Text, "more than one discharge report matching 'Smith'")
}

func TestResolveIdentityLookupFailure(t *testing.T) {
	agent := newAgent(&fakeResolver{err: errors.New("connection refused")}, &fakeLLM{})

	reply := agent.ResolveIdentity(context.Background(), "John Smith")
	assert.Nil(t, reply.Patient)
	assert.Equal(t, constant.FrontDeskErrorResponse, reply.Text)
}

func TestAnswerUsesPatientContext(t *testing.T) {
	provider := &fakeLLM{reply: "Your follow-up is in two weeks."}
	agent := newAgent(&fakeResolver{}, provider)

	session := &store.Session{
		ID: "s1",
		Patient: &store.PatientSummary{
			Name:             "John Smith",
			PrimaryDiagnosis: "Chronic Kidney Disease Stage 3",
			DischargeDate:    "2026-08-10",
		},
	}

	reply := agent.Answer(context.Background(), session, "when is my follow-up?")
	assert.Equal(t, "Your follow-up is in two weeks.", reply.Text)
	assert.Equal(t, store.OriginDirectAnswer, reply.Origin)
	assert.True(t, strings.Contains(provider.lastPrompt, "John Smith"))
	assert.True(t, strings.Contains(provider.lastPrompt, "when is my follow-up?"))
}

func TestAnswerGenerationFailure(t *testing.T) {
	agent := newAgent(&fakeResolver{}, &fakeLLM{err: errors.New("model offline")})

	reply := agent.Answer(context.Background(), &store.Session{ID: "s1"}, "hello?")
	assert.Equal(t, constant.FrontDeskErrorResponse, reply.Text)
	assert.Equal(t, store.OriginDirectAnswer, reply.Origin)
}
