package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"care-assistant-be/internal/dto"
	"care-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IngestDocumentMessage is the payload queued for the ingestion consumer.
type IngestDocumentMessage struct {
	DocumentId string `json:"document_id"`
	Content    string `json:"content"`
}

type IIngestionService interface {
	QueueDocument(ctx context.Context, request *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	QueueCorpusDir(ctx context.Context, dir string) (*dto.IngestCorpusDirResponse, error)
}

// ingestionService accepts corpus documents and queues them for async
// embedding. The HTTP request returns as soon as the document is on the
// queue; the consumer does the splitting and embedding.
type ingestionService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewIngestionService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IIngestionService {
	return &ingestionService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (s *ingestionService) QueueDocument(ctx context.Context, request *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	if err := s.queue(request.DocumentId, request.Content); err != nil {
		return nil, err
	}
	return &dto.IngestDocumentResponse{
		DocumentId: request.DocumentId,
		Queued:     true,
	}, nil
}

// QueueCorpusDir walks a directory of .txt/.md reference documents and
// queues each one. The file name (without extension) becomes the
// document id.
func (s *ingestionService) QueueCorpusDir(ctx context.Context, dir string) (*dto.IngestCorpusDirResponse, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir %q: %w", dir, err)
	}

	resp := &dto.IngestCorpusDirResponse{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			s.logger.Warn("ingestion", "Skipping unreadable corpus file", map[string]interface{}{
				"file":  e.Name(),
				"error": err.Error(),
			})
			continue
		}

		documentId := strings.TrimSuffix(e.Name(), ext)
		if err := s.queue(documentId, string(content)); err != nil {
			return nil, err
		}
		resp.Queued = append(resp.Queued, documentId)
	}
	resp.Documents = len(resp.Queued)

	s.logger.Info("ingestion", "Corpus directory queued", map[string]interface{}{
		"dir":       dir,
		"documents": resp.Documents,
	})
	return resp, nil
}

func (s *ingestionService) queue(documentId, content string) error {
	payload, err := json.Marshal(IngestDocumentMessage{
		DocumentId: documentId,
		Content:    content,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		return fmt.Errorf("queue document %q: %w", documentId, err)
	}
	return nil
}
