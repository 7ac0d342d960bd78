package intent

import (
	"strings"

	"care-assistant-be/internal/constant"
	"care-assistant-be/pkg/store"
)

// Decision is the routing outcome for one utterance. Pure data: the
// coordinator acts on it, the classifier never touches state.
type Decision struct {
	Target   string // store.HandlerFrontDesk or store.HandlerDomainExpert
	Strategy string
	Reset    bool
	Greeting bool
}

// Classifier routes utterances by keyword matching. The keyword sets come
// from configuration so routing can be retuned per deployment.
type Classifier struct {
	medicalKeywords []string
	recencyKeywords []string
}

func NewClassifier(medicalKeywords, recencyKeywords []string) *Classifier {
	return &Classifier{
		medicalKeywords: medicalKeywords,
		recencyKeywords: recencyKeywords,
	}
}

// Classify decides where an utterance goes given the session's active
// handler. Rules, in priority order:
//  1. an empty utterance stays with the front desk
//  2. an explicit reset phrase always returns control to the front desk
//  3. an unidentified session always goes to the front desk, whatever
//     the utterance says: identification precedes everything else
//  4. once the domain expert holds the session, it keeps every
//     non-reset utterance
//  5. a medical keyword hands the utterance to the domain expert
//  6. everything else stays with the front desk; a bare greeting is
//     flagged so the front desk can skip identity lookup
func (c *Classifier) Classify(utterance, activeHandler string) Decision {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	if lower == "" {
		return Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic}
	}

	if isResetPhrase(lower) {
		return Decision{Target: store.HandlerFrontDesk, Strategy: store.StrategyBasic, Reset: true}
	}

	if activeHandler == store.HandlerUnidentified {
		return Decision{
			Target:   store.HandlerFrontDesk,
			Strategy: store.StrategyBasic,
			Greeting: isGreeting(lower),
		}
	}

	if activeHandler == store.HandlerDomainExpert {
		return Decision{
			Target:   store.HandlerDomainExpert,
			Strategy: c.strategyFor(lower),
		}
	}

	if c.isMedical(lower) {
		return Decision{
			Target:   store.HandlerDomainExpert,
			Strategy: c.strategyFor(lower),
		}
	}

	return Decision{
		Target:   store.HandlerFrontDesk,
		Strategy: store.StrategyBasic,
		Greeting: isGreeting(lower),
	}
}

func (c *Classifier) isMedical(lower string) bool {
	for _, kw := range c.medicalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// strategyFor picks between corpus-first retrieval and going straight to
// external search for recency-sensitive questions.
func (c *Classifier) strategyFor(lower string) string {
	for _, kw := range c.recencyKeywords {
		if strings.Contains(lower, kw) {
			return store.StrategyExternalSearchDirect
		}
	}
	return store.StrategyCorpusFirst
}

func isResetPhrase(lower string) bool {
	for _, phrase := range constant.ResetPhrases {
		if lower == phrase {
			return true
		}
	}
	return false
}

var greetingWords = []string{"hi", "hello", "hey"}

func isGreeting(lower string) bool {
	for _, field := range strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == ',' || r == '!' || r == '.' || r == '?'
	}) {
		for _, g := range greetingWords {
			if field == g {
				return true
			}
		}
	}
	return false
}
