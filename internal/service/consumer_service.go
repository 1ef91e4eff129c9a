package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/internal/pkg/logger"
	"albi-mall-assistant-be/pkg/events"
	"albi-mall-assistant-be/pkg/rag/intent"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const topProductTypes = 5

type IConsumerService interface {
	Consume(ctx context.Context) error
	Stats() dto.TurnStatsDTO
}

// consumerService folds completed chat turns into running analytics.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger

	mu           sync.RWMutex
	total        int
	followUps    int
	fallbacks    int
	templates    map[string]int
	productTypes map[string]int
	lastTurnAt   time.Time
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		logger:       log,
		templates:    make(map[string]int),
		productTypes: make(map[string]int),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var turn events.TurnCompleted
	if err := json.Unmarshal(msg.Payload, &turn); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal turn event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// malformed payloads would never succeed on redelivery
		msg.Ack()
		return
	}

	cs.record(turn)

	cs.logger.Info("CONSUMER", "Turn recorded", map[string]interface{}{
		"session_id":      turn.SessionID,
		"follow_up_kind":  turn.FollowUpKind,
		"product_type":    turn.ProductType,
		"recommended_ids": turn.RecommendedIDs,
		"used_fallback":   turn.UsedFallback,
		"template":        turn.Template,
		"request_id":      msg.Metadata.Get("request_id"),
	})
	msg.Ack()
}

func (cs *consumerService) record(turn events.TurnCompleted) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.total++
	if turn.FollowUpKind != "" && turn.FollowUpKind != string(intent.KindNew) {
		cs.followUps++
	}
	if turn.UsedFallback {
		cs.fallbacks++
	}
	if turn.Template != "" {
		cs.templates[turn.Template]++
	}
	if turn.ProductType != "" {
		cs.productTypes[turn.ProductType]++
	}
	if turn.OccurredAt.After(cs.lastTurnAt) {
		cs.lastTurnAt = turn.OccurredAt
	}
}

func (cs *consumerService) Stats() dto.TurnStatsDTO {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	types := make([]dto.ProductTypeCount, 0, len(cs.productTypes))
	for t, n := range cs.productTypes {
		types = append(types, dto.ProductTypeCount{ProductType: t, Count: n})
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Count != types[j].Count {
			return types[i].Count > types[j].Count
		}
		return types[i].ProductType < types[j].ProductType
	})
	if len(types) > topProductTypes {
		types = types[:topProductTypes]
	}

	templates := make(map[string]int, len(cs.templates))
	for k, v := range cs.templates {
		templates[k] = v
	}

	stats := dto.TurnStatsDTO{
		TotalTurns:      cs.total,
		FollowUpTurns:   cs.followUps,
		FallbackTurns:   cs.fallbacks,
		Templates:       templates,
		TopProductTypes: types,
	}
	if !cs.lastTurnAt.IsZero() {
		t := cs.lastTurnAt
		stats.LastTurnAt = &t
	}
	return stats
}
