package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMode string

const (
	PaymentModeCash PaymentMode = "cash"
	PaymentModeCard PaymentMode = "card"
	PaymentModeUPI  PaymentMode = "upi"
)

// Collection is a billing receipt taken at a branch.
type Collection struct {
	Base
	BranchID    uuid.UUID   `db:"branch_id" json:"branch_id"`
	PatientID   uuid.UUID   `db:"patient_id" json:"patient_id"`
	ReceiptNo   string      `db:"receipt_no" json:"receipt_no"`
	Amount      float64     `db:"amount" json:"amount"`
	Mode        PaymentMode `db:"mode" json:"mode"`
	CollectedBy string      `db:"collected_by" json:"collected_by"`
	CollectedAt time.Time   `db:"collected_at" json:"collected_at"`
	Remarks     string      `db:"remarks" json:"remarks,omitempty"`
	Timestamps
}

type CreateCollectionRequest struct {
	PatientID   uuid.UUID   `json:"patient_id" binding:"required"`
	Amount      float64     `json:"amount" binding:"required,gt=0"`
	Mode        PaymentMode `json:"mode" binding:"required,oneof=cash card upi"`
	CollectedBy string      `json:"collected_by" binding:"required"`
	Remarks     string      `json:"remarks"`
}
