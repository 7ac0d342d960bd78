package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"care-assistant-be/internal/constant"
	"care-assistant-be/internal/dto"
	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/memory"
	"care-assistant-be/internal/repository/specification"
	"care-assistant-be/internal/repository/unitofwork"
	"care-assistant-be/pkg/agent/clinical"
	"care-assistant-be/pkg/agent/frontdesk"
	"care-assistant-be/pkg/agent/intent"
	"care-assistant-be/pkg/agent/state"
	"care-assistant-be/pkg/events"
	"care-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// AuditPublisher pushes audit events to the event bus. A nil publisher or
// a failing publish only logs; conversation flow never depends on it.
type AuditPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConversationService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	GetSessionState(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	ResetSession(ctx context.Context, sessionId uuid.UUID) (*dto.ResetSessionResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

// conversationService coordinates the two agents: it owns the session
// state machine, routes each utterance, persists the transcript, and
// emits audit events.
type conversationService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessionRepo *memory.SessionRepository
	classifier  *intent.Classifier
	frontDesk   *frontdesk.Agent
	clinicalAg  *clinical.Agent
	publisher   AuditPublisher
	logger      logger.ILogger
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	classifier *intent.Classifier,
	frontDesk *frontdesk.Agent,
	clinicalAg *clinical.Agent,
	publisher AuditPublisher,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory:  uowFactory,
		sessionRepo: sessionRepo,
		classifier:  classifier,
		frontDesk:   frontDesk,
		clinicalAg:  clinicalAg,
		publisher:   publisher,
		logger:      log,
	}
}

func (s *conversationService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ChatSession{
		Id:            uuid.New(),
		ActiveHandler: store.HandlerUnidentified,
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Every conversation opens with the assistant's greeting.
	greeting := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleModel,
		Content:       constant.GreetingResponse,
		Origin:        store.OriginDirectAnswer,
	}
	if err := uow.ChatMessageRepository().Create(ctx, greeting); err != nil {
		return nil, fmt.Errorf("seed greeting: %w", err)
	}

	s.sessionRepo.Save(&store.Session{
		ID:            session.Id.String(),
		ActiveHandler: store.HandlerUnidentified,
		History: []store.Turn{
			{Role: constant.ChatMessageRoleModel, Text: constant.GreetingResponse, Origin: store.OriginDirectAnswer, CreatedAt: time.Now()},
		},
	})

	s.logger.Info("conversation", "Session created", map[string]interface{}{
		"session_id": session.Id.String(),
	})

	return &dto.CreateSessionResponse{
		Id:            session.Id,
		ActiveHandler: session.ActiveHandler,
	}, nil
}

func (s *conversationService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	utterance := strings.TrimSpace(request.Message)
	if utterance == "" {
		return nil, store.ErrInvalidUtterance
	}

	session, err := s.loadSession(ctx, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	// One turn in flight per session. Concurrent sends queue up here.
	unlock := s.sessionRepo.Lock(session.ID)
	defer unlock()

	// Re-read under the lock: a queued turn may have advanced the state.
	if fresh, ok := s.sessionRepo.Get(session.ID); ok {
		session = fresh
	}

	previousHandler := session.ActiveHandler
	decision := s.classifier.Classify(utterance, session.ActiveHandler)

	s.logger.Info("conversation", "Utterance classified", map[string]interface{}{
		"session_id": session.ID,
		"handler":    previousHandler,
		"target":     decision.Target,
		"strategy":   decision.Strategy,
		"reset":      decision.Reset,
	})

	var (
		replyText string
		origin    string
		citations []store.Citation
	)

	switch {
	case decision.Reset:
		session.ActiveHandler = state.Next(session.ActiveHandler, state.EventReset)
		session.Patient = nil
		session.History = nil
		replyText = constant.ResetResponse
		origin = store.OriginDirectAnswer

	// Identification precedes everything else: an unidentified session
	// never reaches the domain expert, whatever the utterance says.
	case session.ActiveHandler == store.HandlerUnidentified:
		var reply *frontdesk.Reply
		if decision.Greeting {
			reply = s.frontDesk.Greet()
		} else {
			reply = s.frontDesk.ResolveIdentity(ctx, utterance)
		}
		if reply.Patient != nil {
			session.Patient = reply.Patient
			session.ActiveHandler = state.Next(session.ActiveHandler, state.EventIdentityResolved)
			s.publish(ctx, events.NewIdentityResolved(session.ID, reply.Patient.ID))
		}
		replyText = reply.Text
		origin = reply.Origin

	case decision.Target == store.HandlerDomainExpert:
		if previousHandler != store.HandlerDomainExpert {
			session.ActiveHandler = state.Next(session.ActiveHandler, state.EventHandoff)
			s.publish(ctx, events.NewHandoff(session.ID, previousHandler, session.ActiveHandler))
			s.logger.Info("conversation", "Handler handoff", map[string]interface{}{
				"session_id": session.ID,
				"from":       previousHandler,
				"to":         session.ActiveHandler,
			})
		}
		reply := s.clinicalAg.Answer(ctx, session, utterance, decision.Strategy)
		replyText = reply.Text
		if previousHandler != store.HandlerDomainExpert {
			replyText = constant.HandoffResponse + "\n\n" + reply.Text
		}
		origin = reply.Origin
		citations = reply.Citations
		if reply.UsedSearch {
			s.publish(ctx, events.NewFallbackSearch(session.ID, utterance, reply.BestScore))
		}

	default:
		reply := s.frontDesk.Answer(ctx, session, utterance)
		replyText = reply.Text
		origin = reply.Origin
	}

	now := time.Now()
	session.History = append(session.History,
		store.Turn{Role: constant.ChatMessageRoleUser, Text: utterance, CreatedAt: now},
		store.Turn{Role: constant.ChatMessageRoleModel, Text: replyText, Origin: origin, Citations: citations, CreatedAt: now},
	)
	session.LastQuery = utterance
	s.sessionRepo.Save(session)

	sent, reply, err := s.persistTurn(ctx, session, utterance, replyText, origin, citations)
	if err != nil {
		// The answer was produced; a persistence failure must not eat it.
		s.logger.Error("conversation", "Failed to persist turn", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}

	s.publish(ctx, events.NewTurnCompleted(session.ID, session.ActiveHandler, origin))

	return &dto.SendMessageResponse{
		ChatSessionId: request.ChatSessionId,
		ActiveHandler: session.ActiveHandler,
		Sent:          sent,
		Reply:         reply,
	}, nil
}

// persistTurn writes both messages, the citations, and the session state
// in one transaction.
func (s *conversationService) persistTurn(
	ctx context.Context,
	session *store.Session,
	utterance, replyText, origin string,
	citations []store.Citation,
) (*dto.SendMessageResponseChat, *dto.SendMessageResponseChat, error) {
	sessionId, err := uuid.Parse(session.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("parse session id: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer uow.Rollback() //nolint:errcheck // no-op after commit

	userMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleUser,
		Content:       utterance,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, nil, err
	}

	assistantMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleModel,
		Content:       replyText,
		Origin:        origin,
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, nil, err
	}

	if len(citations) > 0 {
		rows := make([]*entity.ChatCitation, len(citations))
		for i, c := range citations {
			rows[i] = &entity.ChatCitation{
				Id:            uuid.New(),
				ChatMessageId: assistantMsg.Id,
				Source:        c.Source,
				Locator:       c.Locator,
			}
		}
		if err := uow.ChatCitationRepository().CreateBulk(ctx, rows); err != nil {
			return nil, nil, err
		}
	}

	sessionRow, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, nil, err
	}
	if sessionRow != nil {
		sessionRow.ActiveHandler = session.ActiveHandler
		sessionRow.PatientId = nil
		if session.Patient != nil {
			if pid, perr := uuid.Parse(session.Patient.ID); perr == nil {
				sessionRow.PatientId = &pid
			}
		}
		if err := uow.ChatSessionRepository().Update(ctx, sessionRow); err != nil {
			return nil, nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	citationDTOs := make([]dto.CitationDTO, len(citations))
	for i, c := range citations {
		citationDTOs[i] = dto.CitationDTO{Source: c.Source, Locator: c.Locator}
	}

	sent := &dto.SendMessageResponseChat{
		Id:        userMsg.Id,
		Content:   userMsg.Content,
		Role:      userMsg.Role,
		CreatedAt: userMsg.CreatedAt,
	}
	reply := &dto.SendMessageResponseChat{
		Id:        assistantMsg.Id,
		Content:   assistantMsg.Content,
		Role:      assistantMsg.Role,
		Origin:    assistantMsg.Origin,
		CreatedAt: assistantMsg.CreatedAt,
		Citations: citationDTOs,
	}
	return sent, reply, nil
}

func (s *conversationService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, store.ErrSessionNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.GetChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		item := &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			Origin:    msg.Origin,
			CreatedAt: msg.CreatedAt,
		}
		if msg.Role == constant.ChatMessageRoleModel {
			rows, err := uow.ChatCitationRepository().FindAll(ctx,
				specification.ByChatMessageID{ChatMessageID: msg.Id},
			)
			if err != nil {
				return nil, err
			}
			for _, c := range rows {
				item.Citations = append(item.Citations, dto.CitationDTO{Source: c.Source, Locator: c.Locator})
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *conversationService) GetSessionState(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	session, err := s.loadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	resp := &dto.SessionStateResponse{
		Id:            sessionId,
		ActiveHandler: session.ActiveHandler,
	}
	if session.Patient != nil {
		resp.PatientName = session.Patient.Name
	}
	return resp, nil
}

func (s *conversationService) ResetSession(ctx context.Context, sessionId uuid.UUID) (*dto.ResetSessionResponse, error) {
	session, err := s.loadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	unlock := s.sessionRepo.Lock(session.ID)
	defer unlock()

	previous := session.ActiveHandler
	session.ActiveHandler = state.Next(session.ActiveHandler, state.EventReset)
	session.Patient = nil
	session.History = nil
	s.sessionRepo.Save(session)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	row, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if row != nil {
		row.ActiveHandler = session.ActiveHandler
		row.PatientId = nil
		if err := uow.ChatSessionRepository().Update(ctx, row); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, events.NewHandoff(session.ID, previous, session.ActiveHandler))
	s.logger.Info("conversation", "Session reset", map[string]interface{}{
		"session_id": session.ID,
		"from":       previous,
	})

	return &dto.ResetSessionResponse{
		Id:            sessionId,
		ActiveHandler: session.ActiveHandler,
		Message:       constant.ResetResponse,
	}, nil
}

func (s *conversationService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return store.ErrSessionNotFound
	}

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	s.sessionRepo.Delete(sessionId.String())
	return nil
}

// loadSession fetches the live session, rehydrating from the database
// when the in-memory copy expired.
func (s *conversationService) loadSession(ctx context.Context, sessionId uuid.UUID) (*store.Session, error) {
	if session, ok := s.sessionRepo.Get(sessionId.String()); ok {
		return session, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	row, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, store.ErrSessionNotFound
	}

	session := &store.Session{
		ID:            row.Id.String(),
		ActiveHandler: row.ActiveHandler,
	}

	if row.PatientId != nil {
		patient, err := uow.PatientRepository().FindOne(ctx, specification.ByID{ID: *row.PatientId})
		if err != nil {
			return nil, err
		}
		if patient != nil {
			session.Patient = patientSummary(patient)
		}
	}

	s.sessionRepo.Save(session)
	return session, nil
}

func (s *conversationService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("conversation", "Audit event publish failed", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func patientSummary(p *entity.Patient) *store.PatientSummary {
	meds := make([]string, 0, len(p.Medications))
	for _, m := range p.Medications {
		meds = append(meds, strings.TrimSpace(fmt.Sprintf("%s %s %s", m.Name, m.Dosage, m.Frequency)))
	}
	return &store.PatientSummary{
		ID:               p.Id.String(),
		Name:             p.Name,
		DischargeDate:    p.DischargeDate,
		PrimaryDiagnosis: p.PrimaryDiagnosis,
		Medications:      meds,
		FollowUp:         p.FollowUpInstructions,
		WarningSigns:     p.WarningSigns,
	}
}
