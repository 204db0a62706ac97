package model

import (
	"time"

	"github.com/google/uuid"
)

type CallOutcome string

const (
	CallOutcomeAnswered   CallOutcome = "answered"
	CallOutcomeNoAnswer   CallOutcome = "no_answer"
	CallOutcomeCallback   CallOutcome = "callback"
	CallOutcomeNotReached CallOutcome = "not_reached"
)

// CallRecord is one telecalling attempt against an assigned number.
type CallRecord struct {
	Base
	BranchID   uuid.UUID   `db:"branch_id" json:"branch_id"`
	CallerID   uuid.UUID   `db:"caller_id" json:"caller_id"`
	Phone      string      `db:"phone" json:"phone"`
	Outcome    CallOutcome `db:"outcome" json:"outcome"`
	Notes      string      `db:"notes" json:"notes,omitempty"`
	CalledAt   time.Time   `db:"called_at" json:"called_at"`
	FollowUpAt *time.Time  `db:"follow_up_at" json:"follow_up_at,omitempty"`
	Timestamps
}

// MobileNumber is a lead number assigned to a telecaller. The "my
// numbers" page lists these for the logged-in user.
type MobileNumber struct {
	Base
	BranchID   uuid.UUID  `db:"branch_id" json:"branch_id"`
	AssignedTo uuid.UUID  `db:"assigned_to" json:"assigned_to"`
	Phone      string     `db:"phone" json:"phone"`
	Name       string     `db:"name" json:"name,omitempty"`
	Source     string     `db:"source" json:"source,omitempty"`
	LastCallAt *time.Time `db:"last_call_at" json:"last_call_at,omitempty"`
	Timestamps
}

type CreateCallRecordRequest struct {
	Phone      string      `json:"phone" binding:"required,phone"`
	Outcome    CallOutcome `json:"outcome" binding:"required,oneof=answered no_answer callback not_reached"`
	Notes      string      `json:"notes"`
	FollowUpAt *time.Time  `json:"follow_up_at"`
}
