package mapper

import (
	"encoding/json"
	"time"

	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PatientMapper struct{}

func NewPatientMapper() *PatientMapper {
	return &PatientMapper{}
}

func (m *PatientMapper) ToEntity(p *model.Patient) *entity.Patient {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var medications []entity.Medication
	if len(p.Medications) > 0 {
		// Malformed rows degrade to an empty list rather than failing the read.
		_ = json.Unmarshal(p.Medications, &medications)
	}

	return &entity.Patient{
		Id:                   p.Id,
		Name:                 p.Name,
		DateOfBirth:          p.DateOfBirth,
		PrimaryDiagnosis:     p.PrimaryDiagnosis,
		DischargeDate:        p.DischargeDate,
		Medications:          medications,
		DietaryRestrictions:  p.DietaryRestrictions,
		ActivityRestrictions: p.ActivityRestrictions,
		FollowUpInstructions: p.FollowUpInstructions,
		WarningSigns:         p.WarningSigns,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            updatedAt,
		DeletedAt:            deletedAt,
		IsDeleted:            p.DeletedAt.Valid,
	}
}

func (m *PatientMapper) ToModel(p *entity.Patient) *model.Patient {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	var medications datatypes.JSON
	if p.Medications != nil {
		if raw, err := json.Marshal(p.Medications); err == nil {
			medications = raw
		}
	}

	return &model.Patient{
		Id:                   p.Id,
		Name:                 p.Name,
		DateOfBirth:          p.DateOfBirth,
		PrimaryDiagnosis:     p.PrimaryDiagnosis,
		DischargeDate:        p.DischargeDate,
		Medications:          medications,
		DietaryRestrictions:  p.DietaryRestrictions,
		ActivityRestrictions: p.ActivityRestrictions,
		FollowUpInstructions: p.FollowUpInstructions,
		WarningSigns:         p.WarningSigns,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            updatedAt,
		DeletedAt:            deletedAt,
	}
}

func (m *PatientMapper) ToEntities(patients []*model.Patient) []*entity.Patient {
	entities := make([]*entity.Patient, len(patients))
	for i, p := range patients {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
