package intent

import (
	"testing"

	"care-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func newTestClassifier() *Classifier {
	return NewClassifier(
		[]string{"symptom", "pain", "swelling", "medication", "should i", "latest", "research"},
		[]string{"latest", "recent", "research", "study", "2024", "2025"},
	)
}

func TestClassify(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name          string
		utterance     string
		activeHandler string
		want          Decision
	}{
		{
			name:          "greeting stays with front desk",
			utterance:     "Hello there!",
			activeHandler: store.HandlerUnidentified,
			want:          Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic, Greeting: true},
		},
		{
			name:          "plain text goes to front desk without greeting flag",
			utterance:     "My name is John Smith",
			activeHandler: store.HandlerUnidentified,
			want:          Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic},
		},
		{
			name:          "medical keyword while unidentified still goes to front desk",
			utterance:     "I have swelling in my legs",
			activeHandler: store.HandlerUnidentified,
			want:          Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic},
		},
		{
			name:          "recency question while unidentified still goes to front desk",
			utterance:     "What is the latest research on CKD?",
			activeHandler: store.HandlerUnidentified,
			want:          Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic},
		},
		{
			name:          "blank utterance stays with front desk even under the domain expert",
			utterance:     "   ",
			activeHandler: store.HandlerDomainExpert,
			want:          Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic},
		},
		{
			name:          "medical keyword hands off to domain expert",
			utterance:     "I have swelling in my ankles",
			activeHandler: store.HandlerFrontDesk,
			want:          Decision{Target: store.HandlerDomainExpert, Strategy: store.StrategyCorpusFirst},
		},
		{
			name:          "multi-word keyword matches",
			utterance:     "should I take this with food?",
			activeHandler: store.HandlerFrontDesk,
			want:          Decision{Target: store.HandlerDomainExpert, Strategy: store.StrategyCorpusFirst},
		},
		{
			name:          "recency keyword picks direct external search",
			utterance:     "What is the latest research on CKD?",
			activeHandler: store.HandlerFrontDesk,
			want:          Decision{Target: store.HandlerDomainExpert, Strategy: store.StrategyExternalSearchDirect},
		},
		{
			name:          "domain expert keeps non-medical followups",
			utterance:     "thanks, that helps",
			activeHandler: store.HandlerDomainExpert,
			want:          Decision{Target: store.HandlerDomainExpert, Strategy: store.StrategyCorpusFirst},
		},
		{
			name:          "domain expert recency followup",
			utterance:     "any recent studies on that?",
			activeHandler: store.HandlerDomainExpert,
			want:          Decision{Target: store.HandlerDomainExpert, Strategy: store.StrategyExternalSearchDirect},
		},
		{
			name:          "reset phrase escapes the domain expert",
			utterance:     "start over",
			activeHandler: store.HandlerDomainExpert,
			want:          Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic, Reset: true},
		},
		{
			name:          "reset requires the exact phrase",
			utterance:     "can we start over with my medication list",
			activeHandler: store.HandlerDomainExpert,
			want:          Decision{Target: store.HandlerDomainExpert, Strategy: store.StrategyCorpusFirst},
		},
		{
			name:          "reset phrase is case insensitive",
			utterance:     "  RESET  ",
			activeHandler: store.HandlerDomainExpert,
			want:          Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic, Reset: true},
		},
		{
			name:          "greeting word embedded in another word does not count",
			utterance:     "this is something",
			activeHandler: store.HandlerUnidentified,
			want:          Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.utterance, tt.activeHandler)
			assert.Equal(t, tt.want, got)
		})
	}
}
