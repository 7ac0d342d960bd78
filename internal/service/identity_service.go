package service

import (
	"context"
	"strings"

	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/specification"
	"care-assistant-be/internal/repository/unitofwork"
	"care-assistant-be/pkg/agent/frontdesk"
	"care-assistant-be/pkg/store"
)

// identityService resolves patient names against discharge records:
// exact match first, then a partial match as a fallback. Exactly one hit
// resolves; zero or several map to the corresponding domain errors.
type identityService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewIdentityService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) frontdesk.IdentityResolver {
	return &identityService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *identityService) Resolve(ctx context.Context, name string) (*store.PatientSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, store.ErrIdentityNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PatientRepository()

	matches, err := repo.FindAll(ctx, specification.ByNameExact{Name: name})
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		matches, err = repo.FindAll(ctx, specification.ByNameLike{Fragment: name})
		if err != nil {
			return nil, err
		}
	}

	switch len(matches) {
	case 0:
		s.logger.Info("identity", "No discharge record found", map[string]interface{}{
			"query": name,
		})
		return nil, store.ErrIdentityNotFound
	case 1:
		return patientSummary(matches[0]), nil
	default:
		s.logger.Info("identity", "Ambiguous name", map[string]interface{}{
			"query":   name,
			"matches": len(matches),
		})
		return nil, store.ErrIdentityAmbiguous
	}
}
