package entity

import (
	"errors"
	"time"
)

// ReferralStatus represents the status of a referral
type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusAccepted  ReferralStatus = "accepted"
	ReferralStatusRejected  ReferralStatus = "rejected"
	ReferralStatusCompleted ReferralStatus = "completed"
)

// ErrReferralTransition marks an attempt to move a referral along an edge
// that is not in the transition graph (including any move out of a terminal
// state). Never a silent no-op.
var ErrReferralTransition = errors.New("illegal referral status transition")

// ReferralTransitions is the legal-transition graph. Kept as data in one
// place so a deployment can be checked against the database-side guard.
// Rejected and completed have no outgoing edges.
var ReferralTransitions = map[ReferralStatus][]ReferralStatus{
	ReferralStatusPending:  {ReferralStatusAccepted, ReferralStatusRejected},
	ReferralStatusAccepted: {ReferralStatusCompleted},
}

// Referral models a handoff of a patient from a referring doctor to a
// receiving doctor. Always created pending; status changes only through
// the transition operation, never a raw field update.
type Referral struct {
	ID                int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID         int64          `gorm:"not null;index" json:"patient_id"`
	ReferringDoctorID int64          `gorm:"not null;index" json:"referring_doctor_id"`
	ReceivingDoctorID int64          `gorm:"not null;index" json:"receiving_doctor_id"`
	Reason            string         `gorm:"type:text;not null" json:"reason"`
	Observations      string         `gorm:"type:text" json:"observations,omitempty"`
	Status            ReferralStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ClinicTag         string         `gorm:"type:varchar(50);not null" json:"clinic_tag"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	RespondedAt       *time.Time     `json:"responded_at,omitempty"`
}

func (Referral) TableName() string {
	return "referrals"
}

// ReferralDetail is a referral flattened with the names joined from the
// patient and both doctors, as read operations return it.
type ReferralDetail struct {
	Referral
	PatientName         string `json:"patient_name"`
	ReferringDoctorName string `json:"referring_doctor_name"`
	ReceivingDoctorName string `json:"receiving_doctor_name"`
}

// ReferralDoctorRole selects which side of a referral a doctor listing
// filters on.
type ReferralDoctorRole string

const (
	ReferralRoleReferring ReferralDoctorRole = "referring"
	ReferralRoleReceived  ReferralDoctorRole = "received"
)

// ValidReferralStatus reports whether s is one of the enumerated values.
func ValidReferralStatus(s ReferralStatus) bool {
	switch s {
	case ReferralStatusPending, ReferralStatusAccepted,
		ReferralStatusRejected, ReferralStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the graph has an edge s -> target.
func (s ReferralStatus) CanTransitionTo(target ReferralStatus) bool {
	for _, t := range ReferralTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s ReferralStatus) IsTerminal() bool {
	return len(ReferralTransitions[s]) == 0
}

// ReferralTransitionSources lists the statuses allowed to move to target.
// Used to build the guarded single-statement update on the gorm backend.
func ReferralTransitionSources(target ReferralStatus) []ReferralStatus {
	var sources []ReferralStatus
	for from, tos := range ReferralTransitions {
		for _, to := range tos {
			if to == target {
				sources = append(sources, from)
			}
		}
	}
	return sources
}
