package main

import (
	"context"
	"log"

	"care-assistant-be/internal/config"
	"care-assistant-be/internal/entity"
	"care-assistant-be/internal/model"
	"care-assistant-be/internal/repository/implementation"
	"care-assistant-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Seed loads a set of sample nephrology discharge records so the front
// desk has identities to resolve in development.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// The vector extension must exist before the chunk table migrates.
	if err := gormDB.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Printf("Warn: could not ensure pgvector extension: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Patient{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.ChatCitation{},
		&model.ReferenceChunk{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	repo := implementation.NewPatientRepository(gormDB)
	ctx := context.Background()

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	for _, p := range samplePatients() {
		patient := p
		if err := repo.Create(ctx, &patient); err != nil {
			yellow.Printf("skip %-18s %v\n", patient.Name, err)
			continue
		}
		green.Printf("seeded %-18s %s (%s)\n", patient.Name, patient.PrimaryDiagnosis, patient.DischargeDate)
	}

	green.Println("Done.")
}

func samplePatients() []entity.Patient {
	return []entity.Patient{
		{
			Id:               uuid.New(),
			Name:             "John Smith",
			DateOfBirth:      "1958-03-12",
			PrimaryDiagnosis: "Chronic Kidney Disease Stage 3",
			DischargeDate:    "2026-08-10",
			Medications: []entity.Medication{
				{Name: "Lisinopril", Dosage: "10mg", Frequency: "daily"},
				{Name: "Furosemide", Dosage: "20mg", Frequency: "twice daily"},
			},
			DietaryRestrictions:  "Low sodium (2g/day), fluid restriction (1.5L/day)",
			ActivityRestrictions: "No heavy lifting for 2 weeks",
			FollowUpInstructions: "Nephrology clinic in 2 weeks; repeat creatinine and potassium before the visit",
			WarningSigns:         "Swelling, shortness of breath, decreased urine output",
		},
		{
			Id:               uuid.New(),
			Name:             "Sarah Johnson",
			DateOfBirth:      "1971-11-02",
			PrimaryDiagnosis: "Diabetic Nephropathy",
			DischargeDate:    "2026-08-14",
			Medications: []entity.Medication{
				{Name: "Amlodipine", Dosage: "5mg", Frequency: "daily"},
				{Name: "Spironolactone", Dosage: "25mg", Frequency: "daily"},
				{Name: "Metformin", Dosage: "500mg", Frequency: "twice daily"},
			},
			DietaryRestrictions:  "Low sodium (1.5g/day), low potassium, fluid restriction (2L/day)",
			ActivityRestrictions: "Light walking encouraged; avoid strenuous exercise",
			FollowUpInstructions: "Primary care in 1 week, nephrology in 4 weeks",
			WarningSigns:         "Chest pain, difficulty breathing, rapid weight gain",
		},
		{
			Id:               uuid.New(),
			Name:             "Michael Davis",
			DateOfBirth:      "1949-06-27",
			PrimaryDiagnosis: "Acute Kidney Injury",
			DischargeDate:    "2026-08-18",
			Medications: []entity.Medication{
				{Name: "Losartan", Dosage: "50mg", Frequency: "daily"},
				{Name: "Chlorthalidone", Dosage: "25mg", Frequency: "daily"},
			},
			DietaryRestrictions:  "Low sodium (2g/day), low protein (0.8g/kg/day)",
			ActivityRestrictions: "Rest for 1 week, then gradual return to normal activity",
			FollowUpInstructions: "Repeat renal panel in 5 days; nephrology clinic in 10 days",
			WarningSigns:         "Blood in urine, decreased urine output",
		},
		{
			Id:               uuid.New(),
			Name:             "Emily Martinez",
			DateOfBirth:      "1985-01-19",
			PrimaryDiagnosis: "Nephrotic Syndrome",
			DischargeDate:    "2026-08-20",
			Medications: []entity.Medication{
				{Name: "Prednisone", Dosage: "20mg", Frequency: "daily"},
				{Name: "Tacrolimus", Dosage: "2mg", Frequency: "twice daily"},
			},
			DietaryRestrictions:  "Low sodium (2g/day), fluid restriction (1.5L/day)",
			ActivityRestrictions: "Avoid crowds while on immunosuppression",
			FollowUpInstructions: "Nephrology clinic in 1 week; daily weight log",
			WarningSigns:         "Swelling in face, hands, or feet",
		},
		{
			Id:               uuid.New(),
			Name:             "Robert Wilson",
			DateOfBirth:      "1962-09-08",
			PrimaryDiagnosis: "Kidney Transplant Follow-up",
			DischargeDate:    "2026-08-22",
			Medications: []entity.Medication{
				{Name: "Mycophenolate", Dosage: "1000mg", Frequency: "twice daily"},
				{Name: "Cyclosporine", Dosage: "150mg", Frequency: "twice daily"},
			},
			DietaryRestrictions:  "Low sodium (2g/day), fluid restriction (2L/day)",
			ActivityRestrictions: "No contact sports; no heavy lifting for 6 weeks",
			FollowUpInstructions: "Transplant clinic twice weekly for the first month",
			WarningSigns:         "Fever, chills, pain at surgical site",
		},
	}
}
