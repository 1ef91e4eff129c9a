package service

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"albi-mall-assistant-be/internal/constant"
	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/internal/mapper"
	"albi-mall-assistant-be/internal/pkg/logger"
	"albi-mall-assistant-be/internal/pkg/serverutils"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/events"
	"albi-mall-assistant-be/pkg/rag/filter"
	"albi-mall-assistant-be/pkg/rag/intent"
	"albi-mall-assistant-be/pkg/rag/response"
	"albi-mall-assistant-be/pkg/rag/retrieval"
	"albi-mall-assistant-be/pkg/rag/session"

	"github.com/google/uuid"
)

const eventPublishTimeout = 3 * time.Second

type requestIDKey struct{}

// IChatbotService runs chat turns and exposes the session store.
type IChatbotService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	ClearSession(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context) (*dto.SessionsResponse, error)
	Stats(ctx context.Context) *dto.StatsResponse
}

type chatbotService struct {
	extractor *filter.Extractor
	sessions  *session.Manager
	merger    *intent.Merger
	retriever *retrieval.Retriever
	composer  *response.Composer

	publisher      IPublisherService
	eventPublisher events.Publisher
	consumer       IConsumerService

	sessionMapper *mapper.SessionMapper
	logger        logger.ILogger
}

// NewChatbotService wires the turn pipeline. publisher, eventPublisher and
// consumer are optional.
func NewChatbotService(
	extractor *filter.Extractor,
	sessions *session.Manager,
	merger *intent.Merger,
	retriever *retrieval.Retriever,
	composer *response.Composer,
	publisher IPublisherService,
	eventPublisher events.Publisher,
	consumer IConsumerService,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		extractor:      extractor,
		sessions:       sessions,
		merger:         merger,
		retriever:      retriever,
		composer:       composer,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		consumer:       consumer,
		sessionMapper:  mapper.NewSessionMapper(),
		logger:         log,
	}
}

func (cs *chatbotService) Chat(ctx context.Context, request *dto.ChatRequest) (res *dto.ChatResponse, err error) {
	message, err := serverutils.SanitizeMessage(request.Message)
	if err != nil {
		return nil, err
	}

	sessionID := request.Session()
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	requestID := uuid.NewString()
	ctx = context.WithValue(ctx, requestIDKey{}, requestID)

	defer func() {
		if r := recover(); r != nil {
			cs.logger.Error("CHATBOT", "Turn pipeline panicked", map[string]interface{}{
				"session_id": sessionID,
				"request_id": requestID,
				"panic":      fmt.Sprint(r),
				"stack":      string(debug.Stack()),
			})
			res = &dto.ChatResponse{
				SessionID:           sessionID,
				AssistantText:       constant.ChatApologyMessage,
				RecommendedProducts: []dto.RecommendedProductDTO{},
				AuditNotes:          "internal error while processing the turn",
			}
			err = nil
		}
	}()

	start := time.Now()

	current := cs.extractor.Extract(message)
	sess := cs.sessions.GetOrCreate(sessionID)
	plan := cs.merger.Plan(message, current, sess)

	found := cs.retriever.Retrieve(ctx, retrieval.Request{Plan: plan})

	out := cs.composer.Compose(ctx, response.Input{
		Utterance:           message,
		Query:               plan.Query,
		Candidates:          found.Products,
		Filters:             plan.Filters,
		Verdict:             plan.Verdict,
		Reference:           plan.Reference,
		History:             sess.History,
		PreviousRecommended: sess.LastRecommended,
		BrandUnavailable:    found.BrandUnavailable,
		RequestedBrand:      found.RequestedBrand,
		Notes:               found.Notes,
	})

	// An unavailable brand must not constrain later turns.
	filters := plan.Filters
	if found.BrandUnavailable {
		filters.Brand = ""
	}

	cs.sessions.Update(sessionID, session.Turn{
		Utterance:   message,
		Query:       plan.Query,
		Reply:       out.AssistantText,
		Filters:     filters,
		FollowUp:    plan.Verdict.FollowUp(),
		Products:    found.WorkingSet,
		Recommended: pick(found.Products, out.RecommendedProducts),
	})

	cs.logger.Info("CHATBOT", "Turn completed", map[string]interface{}{
		"session_id":   sessionID,
		"request_id":   requestID,
		"kind":         string(plan.Verdict.Kind),
		"candidates":   len(found.Products),
		"recommended":  len(out.RecommendedProducts),
		"fallback":     out.UsedFallback,
		"template":     out.Template,
		"search_cache": found.FromCache,
		"reply_cache":  out.FromCache,
		"duration_ms":  time.Since(start).Milliseconds(),
	})

	cs.publishTurn(ctx, events.TurnCompleted{
		SessionID:      sessionID,
		Query:          plan.Query,
		FollowUpKind:   string(plan.Verdict.Kind),
		ProductType:    filters.ProductType,
		RecommendedIDs: recommendationIDs(out.RecommendedProducts),
		UsedFallback:   out.UsedFallback,
		Template:       out.Template,
		AuditNotes:     out.AuditNotes,
		OccurredAt:     time.Now(),
	})

	return toChatResponse(sessionID, out), nil
}

// publishTurn fans the event out to the in-process bus and, when configured,
// to NATS. Failures are logged only.
func (cs *chatbotService) publishTurn(ctx context.Context, evt events.TurnCompleted) {
	if cs.publisher != nil {
		payload, err := json.Marshal(evt)
		if err == nil {
			err = cs.publisher.Publish(ctx, payload)
		}
		if err != nil {
			cs.logger.Warn("CHATBOT", "Failed to publish turn event", map[string]interface{}{
				"session_id": evt.SessionID,
				"error":      err.Error(),
			})
		}
	}

	if cs.eventPublisher != nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
		go func() {
			defer cancel()
			if err := cs.eventPublisher.Publish(pubCtx, evt); err != nil {
				cs.logger.Warn("CHATBOT", "Failed to export turn event", map[string]interface{}{
					"session_id": evt.SessionID,
					"error":      err.Error(),
				})
			}
		}()
	}
}

func (cs *chatbotService) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	sess, found := cs.sessions.Get(sessionID)
	if !found {
		return nil, serverutils.NewNotFoundError(serverutils.CodeSessionNotFound, "Session not found")
	}
	return cs.sessionMapper.ToResponse(sess), nil
}

func (cs *chatbotService) ClearSession(ctx context.Context, sessionID string) error {
	if !cs.sessions.Clear(sessionID) {
		return serverutils.NewNotFoundError(serverutils.CodeSessionNotFound, "Session not found")
	}
	cs.logger.Info("CHATBOT", "Session cleared", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

func (cs *chatbotService) ListSessions(ctx context.Context) (*dto.SessionsResponse, error) {
	sessions := cs.sessions.List()
	summaries := make([]dto.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, cs.sessionMapper.ToSummary(s))
	}
	return &dto.SessionsResponse{
		ActiveSessions: summaries,
		Count:          len(summaries),
		Stats:          cs.sessionMapper.ToStats(cs.sessions.Stats()),
	}, nil
}

func (cs *chatbotService) Stats(ctx context.Context) *dto.StatsResponse {
	res := &dto.StatsResponse{
		Sessions: cs.sessionMapper.ToStats(cs.sessions.Stats()),
		Turns: dto.TurnStatsDTO{
			Templates:       map[string]int{},
			TopProductTypes: []dto.ProductTypeCount{},
		},
	}
	if cs.consumer != nil {
		res.Turns = cs.consumer.Stats()
	}
	return res
}

// pick returns the candidates that were recommended, in recommendation order.
func pick(candidates []catalog.Product, recs []response.Recommendation) []catalog.Product {
	byID := make(map[string]catalog.Product, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}
	out := make([]catalog.Product, 0, len(recs))
	for _, r := range recs {
		if p, ok := byID[r.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

func recommendationIDs(recs []response.Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return ids
}

func toChatResponse(sessionID string, out response.Output) *dto.ChatResponse {
	recs := make([]dto.RecommendedProductDTO, 0, len(out.RecommendedProducts))
	for _, r := range out.RecommendedProducts {
		recs = append(recs, dto.RecommendedProductDTO{
			ID:        r.ID,
			Title:     r.Title,
			Highlight: r.Highlight,
		})
	}
	return &dto.ChatResponse{
		SessionID:           sessionID,
		AssistantText:       out.AssistantText,
		RecommendedProducts: recs,
		AuditNotes:          out.AuditNotes,
	}
}
