package clinical

import (
	"context"
	"errors"

	"care-assistant-be/internal/constant"
	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/pkg/llm"
	"care-assistant-be/pkg/rag/prompt"
	"care-assistant-be/pkg/rag/retriever"
	"care-assistant-be/pkg/store"
	"care-assistant-be/pkg/websearch"
)

// Reply is the domain expert's answer for one turn, with provenance.
type Reply struct {
	Text       string
	Origin     string
	Citations  []store.Citation
	BestScore  float64
	UsedSearch bool
}

// Agent is the clinical domain expert. Every answer is grounded: corpus
// retrieval first, external search when the corpus is insufficient or the
// question is recency-sensitive, and a stated refusal when neither yields
// context.
type Agent struct {
	retriever *retriever.Engine
	searcher  *websearch.Searcher
	llm       llm.LLMProvider
	prompts   *prompt.Builder
	logger    logger.ILogger
}

func NewAgent(
	eng *retriever.Engine,
	searcher *websearch.Searcher,
	provider llm.LLMProvider,
	prompts *prompt.Builder,
	log logger.ILogger,
) *Agent {
	return &Agent{
		retriever: eng,
		searcher:  searcher,
		llm:       provider,
		prompts:   prompts,
		logger:    log,
	}
}

func (a *Agent) Answer(ctx context.Context, session *store.Session, query, strategy string) *Reply {
	var (
		contextParts      []string
		citations         []store.Citation
		bestScore         float64
		sufficient        bool
		searchUnavailable bool
		usedSearch        bool
	)

	// Corpus retrieval always runs first; external search supplements it
	// rather than replacing it.
	result, err := a.retriever.Retrieve(ctx, query)
	switch {
	case err == nil:
		bestScore = result.Best
		sufficient = result.Sufficient
		if len(result.Documents) > 0 && sufficient {
			contextParts = append(contextParts, a.prompts.ReferenceContext(result.Documents))
			for _, d := range result.Documents {
				citations = append(citations, store.Citation{Source: d.Source, Locator: d.Locator})
			}
		}
	case errors.Is(err, store.ErrRetrievalEmpty):
		a.logger.Warn("clinical", "Reference corpus is empty", map[string]interface{}{
			"session_id": session.ID,
		})
	default:
		a.logger.Error("clinical", "Retrieval failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}

	needsSearch := strategy == store.StrategyExternalSearchDirect || len(contextParts) == 0
	if needsSearch {
		resp := a.searcher.Search(ctx, query, 3)
		if resp.Success && len(resp.Results) > 0 {
			usedSearch = true
			webDocs := resp.ToDocuments()
			contextParts = append(contextParts, a.prompts.WebContext(webDocs))
			for _, d := range webDocs {
				citations = append(citations, store.Citation{Source: d.Source, Locator: d.Locator})
			}
		} else {
			searchUnavailable = true
		}
		a.logger.Info("clinical", "Fallback search executed", map[string]interface{}{
			"session_id": session.ID,
			"best_score": bestScore,
			"success":    usedSearch,
		})
	}

	// Several chunks of one document share a source; the citation list
	// carries each source once, highest-scored occurrence first.
	citations = dedupeBySource(citations)

	// No grounded context at all: refuse rather than answer from thin air.
	if len(contextParts) == 0 {
		text := constant.InsufficientContextResponse
		if searchUnavailable {
			text += "\n\n" + constant.WebSearchUnavailableNote
		}
		text += "\n\n" + constant.MedicalDisclaimer
		return &Reply{
			Text:      text,
			Origin:    store.OriginDirectAnswer,
			BestScore: bestScore,
		}
	}

	p := a.prompts.Clinical(constant.ClinicalSystemPrompt, session.Patient, query, contextParts)
	messages := append(historyMessages(session, maxHistoryTurns), llm.Message{Role: "user", Content: p})
	text, err := a.llm.Chat(ctx, messages, llm.WithTemperature(0.2))
	if err != nil {
		a.logger.Error("clinical", "Generation failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return &Reply{
			Text:      constant.ClinicalErrorResponse + "\n\n" + constant.MedicalDisclaimer,
			Origin:    store.OriginDirectAnswer,
			BestScore: bestScore,
		}
	}

	text += a.prompts.SourcesBlock(citations)
	if usedSearch {
		text += "\n" + constant.WebVerifyNote
	}
	if searchUnavailable {
		text += "\n\n" + constant.WebSearchUnavailableNote
	}
	text += "\n\n" + constant.MedicalDisclaimer

	origin := store.OriginCorpus
	if usedSearch {
		origin = store.OriginExternalSearch
	}

	return &Reply{
		Text:       text,
		Origin:     origin,
		Citations:  citations,
		BestScore:  bestScore,
		UsedSearch: usedSearch,
	}
}

// maxHistoryTurns bounds how much prior conversation reaches the model.
const maxHistoryTurns = 6

// historyMessages maps the most recent session turns into chat messages so
// followup questions keep their conversational context.
func historyMessages(session *store.Session, limit int) []llm.Message {
	turns := session.History
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	messages := make([]llm.Message, 0, len(turns)+1)
	for _, turn := range turns {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Text})
	}
	return messages
}

// dedupeBySource keeps the first citation for each source. Input order is
// highest-score-first, so the retained occurrence is the best one.
func dedupeBySource(citations []store.Citation) []store.Citation {
	if len(citations) < 2 {
		return citations
	}
	seen := make(map[string]struct{}, len(citations))
	out := citations[:0]
	for _, c := range citations {
		if _, ok := seen[c.Source]; ok {
			continue
		}
		seen[c.Source] = struct{}{}
		out = append(out, c)
	}
	return out
}
