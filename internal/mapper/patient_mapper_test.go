package mapper

import (
	"testing"
	"time"

	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientMapperRoundTrip(t *testing.T) {
	m := NewPatientMapper()

	src := &entity.Patient{
		Id:               uuid.New(),
		Name:             "John Smith",
		DateOfBirth:      "1958-03-12",
		PrimaryDiagnosis: "Chronic Kidney Disease Stage 3",
		DischargeDate:    "2026-08-10",
		Medications: []entity.Medication{
			{Name: "Lisinopril", Dosage: "10mg", Frequency: "daily"},
			{Name: "Furosemide", Dosage: "20mg", Frequency: "twice daily"},
		},
		DietaryRestrictions:  "Low sodium",
		FollowUpInstructions: "Nephrology clinic in 2 weeks",
		WarningSigns:         "Swelling, shortness of breath",
		CreatedAt:            time.Now(),
	}

	got := m.ToEntity(m.ToModel(src))
	require.NotNil(t, got)
	assert.Equal(t, src.Name, got.Name)
	assert.Equal(t, src.Medications, got.Medications)
	assert.Equal(t, src.FollowUpInstructions, got.FollowUpInstructions)
	assert.False(t, got.IsDeleted)
}

func TestPatientMapperMalformedMedications(t *testing.T) {
	m := NewPatientMapper()

	got := m.ToEntity(&model.Patient{
		Id:          uuid.New(),
		Name:        "John Smith",
		Medications: []byte("{broken"),
	})
	require.NotNil(t, got)
	assert.Empty(t, got.Medications)
}

func TestPatientMapperNil(t *testing.T) {
	m := NewPatientMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
