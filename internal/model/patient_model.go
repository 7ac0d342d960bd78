package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Patient struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                 string         `gorm:"type:text;not null;index"`
	DateOfBirth          string         `gorm:"type:varchar(20)"`
	PrimaryDiagnosis     string         `gorm:"type:text;not null"`
	DischargeDate        string         `gorm:"type:varchar(20);not null"`
	Medications          datatypes.JSON `gorm:"type:jsonb"`
	DietaryRestrictions  string         `gorm:"type:text"`
	ActivityRestrictions string         `gorm:"type:text"`
	FollowUpInstructions string         `gorm:"type:text"`
	WarningSigns         string         `gorm:"type:text"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (Patient) TableName() string {
	return "patients"
}
