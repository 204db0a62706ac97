package model

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	Base
	BranchID  uuid.UUID  `db:"branch_id" json:"branch_id"`
	MRN       string     `db:"mrn" json:"mrn"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	Gender    string     `db:"gender" json:"gender"`
	DOB       *time.Time `db:"dob" json:"dob,omitempty"`
	Phone     string     `db:"phone" json:"phone"`
	Email     string     `db:"email" json:"email,omitempty"`
	Address   string     `db:"address" json:"address,omitempty"`
	Status    string     `db:"status" json:"status"`
	Timestamps
}

type CreatePatientRequest struct {
	FirstName string     `json:"first_name" binding:"required"`
	LastName  string     `json:"last_name" binding:"required"`
	Gender    string     `json:"gender" binding:"required,oneof=male female other"`
	DOB       *time.Time `json:"dob"`
	Phone     string     `json:"phone" binding:"required,phone"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Address   string     `json:"address"`
}

type UpdatePatientRequest struct {
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Gender    *string    `json:"gender"`
	DOB       *time.Time `json:"dob"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email"`
	Address   *string    `json:"address"`
	Status    *string    `json:"status"`
}
