package entity

import (
	"time"

	"github.com/google/uuid"
)

// Medication is one line of a discharge medication list.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// Patient is a post-discharge record: the identity the front desk resolves
// plus the discharge instructions the assistant reads back to the patient.
type Patient struct {
	Id                   uuid.UUID
	Name                 string
	DateOfBirth          string
	PrimaryDiagnosis     string
	DischargeDate        string
	Medications          []Medication
	DietaryRestrictions  string
	ActivityRestrictions string
	FollowUpInstructions string
	WarningSigns         string
	CreatedAt            time.Time
	UpdatedAt            *time.Time
	DeletedAt            *time.Time
	IsDeleted            bool
}
