package service

import (
	"context"
	"encoding/json"

	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/pkg/events"
	"care-assistant-be/pkg/rag/ingest"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the ingestion queue: each message is one corpus
// document to split, embed, and store.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	ingestor  *ingest.Ingestor
	publisher AuditPublisher
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ingestor *ingest.Ingestor,
	publisher AuditPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		ingestor:  ingestor,
		publisher: publisher,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload IngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal ingest message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	count, err := cs.ingestor.IngestDocument(ctx, payload.DocumentId, payload.Content)
	if err != nil {
		cs.logger.Error("consumer", "Document ingestion failed", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	if cs.publisher != nil {
		if perr := cs.publisher.Publish(ctx, events.NewCorpusIngested(payload.DocumentId, count)); perr != nil {
			cs.logger.Warn("consumer", "Audit event publish failed", map[string]interface{}{
				"document_id": payload.DocumentId,
				"error":       perr.Error(),
			})
		}
	}

	msg.Ack()
}
