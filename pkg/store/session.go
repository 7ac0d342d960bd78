package store

import "time"

// Handler tags for the session state machine.
const (
	HandlerUnidentified = "unidentified"
	HandlerFrontDesk    = "front_desk"
	HandlerDomainExpert = "domain_expert"
)

// Answer origin tags.
const (
	OriginCorpus         = "corpus"
	OriginExternalSearch = "external_search"
	OriginDirectAnswer   = "direct_answer"
)

// Retrieval strategies decided by the classifier.
const (
	StrategyBasic                = "basic"
	StrategyCorpusFirst          = "corpus_first"
	StrategyExternalSearchDirect = "external_search_direct"
)

// PatientSummary is the identity context attached to a session once the
// front desk resolves a discharge record.
type PatientSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	DischargeDate    string   `json:"discharge_date"`
	PrimaryDiagnosis string   `json:"primary_diagnosis"`
	Medications      []string `json:"medications"`
	FollowUp         string   `json:"follow_up"`
	WarningSigns     string   `json:"warning_signs"`
}

// Citation points back at the source a piece of answer content came from.
// Source is a document id (corpus) or URL (web); Locator narrows it down.
type Citation struct {
	Source  string `json:"source"`
	Locator string `json:"locator"`
}

// Turn is one utterance or answer in the session history.
type Turn struct {
	Role      string     `json:"role"` // "user" | "model"
	Text      string     `json:"text"`
	Origin    string     `json:"origin,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Session is the active conversation state held in memory. The coordinator
// owns it exclusively; at most one turn is in flight per session.
type Session struct {
	ID            string          `json:"id"`
	ActiveHandler string          `json:"active_handler"`
	Patient       *PatientSummary `json:"patient,omitempty"`
	History       []Turn          `json:"history"`
	LastQuery     string          `json:"last_query"`
}

// Document is a retrieved piece of context (corpus chunk or web snippet)
// handed to the generation step.
type Document struct {
	ID      string  `json:"id"`
	Source  string  `json:"source"`
	Locator string  `json:"locator"`
	Content string  `json:"content"`
	Score   float32 `json:"score"`
}
