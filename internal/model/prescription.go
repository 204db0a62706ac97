package model

import (
	"time"

	"github.com/google/uuid"
)

type PrescriptionStatus string

const (
	PrescriptionStatusPending   PrescriptionStatus = "pending"
	PrescriptionStatusDispensed PrescriptionStatus = "dispensed"
	PrescriptionStatusCancelled PrescriptionStatus = "cancelled"
)

type Prescription struct {
	Base
	BranchID     uuid.UUID          `db:"branch_id" json:"branch_id"`
	PatientID    uuid.UUID          `db:"patient_id" json:"patient_id"`
	PrescribedBy string             `db:"prescribed_by" json:"prescribed_by"`
	Medication   string             `db:"medication" json:"medication"`
	Dosage       string             `db:"dosage" json:"dosage"`
	Frequency    string             `db:"frequency" json:"frequency"`
	Duration     string             `db:"duration" json:"duration"`
	Notes        string             `db:"notes" json:"notes,omitempty"`
	Status       PrescriptionStatus `db:"status" json:"status"`
	DispensedAt  *time.Time         `db:"dispensed_at" json:"dispensed_at,omitempty"`
	Timestamps
}

type CreatePrescriptionRequest struct {
	PatientID    uuid.UUID `json:"patient_id" binding:"required"`
	PrescribedBy string    `json:"prescribed_by" binding:"required"`
	Medication   string    `json:"medication" binding:"required"`
	Dosage       string    `json:"dosage" binding:"required"`
	Frequency    string    `json:"frequency" binding:"required"`
	Duration     string    `json:"duration"`
	Notes        string    `json:"notes"`
}
