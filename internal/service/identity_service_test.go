package service

import (
	"context"
	"strings"
	"testing"

	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/contract"
	"care-assistant-be/internal/repository/specification"
	"care-assistant-be/internal/repository/unitofwork"
	"care-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// namePatientRepo evaluates the name specifications against a fixed
// record set, mirroring what the SQL specifications express.
type namePatientRepo struct {
	fakePatientRepo
	records []*entity.Patient
}

func (r *namePatientRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Patient, error) {
	var out []*entity.Patient
	for _, p := range r.records {
		for _, s := range specs {
			switch spec := s.(type) {
			case specification.ByNameExact:
				if strings.EqualFold(p.Name, spec.Name) {
					out = append(out, p)
				}
			case specification.ByNameLike:
				if strings.Contains(strings.ToLower(p.Name), strings.ToLower(spec.Fragment)) {
					out = append(out, p)
				}
			}
		}
	}
	return out, nil
}

type nameFactory struct{ repo *namePatientRepo }

func (f *nameFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &nameUnitOfWork{fakeUnitOfWork{store: newFakeStore()}, f.repo}
}

type nameUnitOfWork struct {
	fakeUnitOfWork
	repo *namePatientRepo
}

func (u *nameUnitOfWork) PatientRepository() contract.PatientRepository { return u.repo }

func newIdentityFixture(names ...string) *identityService {
	repo := &namePatientRepo{}
	for _, n := range names {
		repo.records = append(repo.records, &entity.Patient{
			Id:               uuid.New(),
			Name:             n,
			DischargeDate:    "2026-08-10",
			PrimaryDiagnosis: "Chronic Kidney Disease Stage 3",
			Medications: []entity.Medication{
				{Name: "Lisinopril", Dosage: "10mg", Frequency: "daily"},
			},
		})
	}
	return NewIdentityService(&nameFactory{repo: repo}, logger.NewNoop()).(*identityService)
}

func TestResolveExactMatch(t *testing.T) {
	svc := newIdentityFixture("John Smith", "Sarah Johnson")

	summary, err := svc.Resolve(context.Background(), "john smith")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", summary.Name)
	assert.Equal(t, []string{"Lisinopril 10mg daily"}, summary.Medications)
}

func TestResolvePartialFallback(t *testing.T) {
	svc := newIdentityFixture("John Smith", "Sarah Johnson")

	// No exact match for a bare surname; the partial lookup finds it.
	summary, err := svc.Resolve(context.Background(), "Smith")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", summary.Name)
}

func TestResolveNotFound(t *testing.T) {
	svc := newIdentityFixture("John Smith")

	_, err := svc.Resolve(context.Background(), "Nobody Here")
	assert.ErrorIs(t, err, store.ErrIdentityNotFound)
}

func TestResolveAmbiguous(t *testing.T) {
	svc := newIdentityFixture("John Smith", "Jane Smith")

	_, err := svc.Resolve(context.Background(), "Smith")
	assert.ErrorIs(t, err, store.ErrIdentityAmbiguous)
}

func TestResolveExactBeatsPartial(t *testing.T) {
	// "John Smith" matches one record exactly even though the fragment
	// lookup would match two.
	svc := newIdentityFixture("John Smith", "John Smithson")

	summary, err := svc.Resolve(context.Background(), "John Smith")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", summary.Name)
}

func TestResolveBlankName(t *testing.T) {
	svc := newIdentityFixture("John Smith")

	_, err := svc.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, store.ErrIdentityNotFound)
}
