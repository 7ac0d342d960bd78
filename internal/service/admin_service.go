package service

import (
	"context"

	"care-assistant-be/internal/dto"
	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/contract"
)

type IAdminService interface {
	GetLogs(ctx context.Context, level string, limit, offset int) ([]*dto.LogListResponse, error)
	GetCorpusStatus(ctx context.Context) (*dto.CorpusStatusResponse, error)
}

type adminService struct {
	logger    logger.ILogger
	chunkRepo contract.ReferenceChunkRepository
}

func NewAdminService(log logger.ILogger, chunkRepo contract.ReferenceChunkRepository) IAdminService {
	return &adminService{
		logger:    log,
		chunkRepo: chunkRepo,
	}
}

func (s *adminService) GetLogs(ctx context.Context, level string, limit, offset int) ([]*dto.LogListResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.logger.GetLogs(level, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.LogListResponse, len(entries))
	for i, e := range entries {
		out[i] = &dto.LogListResponse{
			Id:        e.Id,
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Component: e.Component,
			Message:   e.Message,
			Details:   e.Details,
		}
	}
	return out, nil
}

func (s *adminService) GetCorpusStatus(ctx context.Context) (*dto.CorpusStatusResponse, error) {
	docs, err := s.chunkRepo.Documents(ctx)
	if err != nil {
		return nil, err
	}
	chunks, err := s.chunkRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CorpusStatusResponse{
		Documents: docs,
		Chunks:    chunks,
	}, nil
}
