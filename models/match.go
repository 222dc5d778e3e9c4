package models

import (
	"gorm.io/gorm"
)

// Match status values. Transitions are one-way:
// WAITING_FOR_OPPONENT -> PENDING_JUDGMENT -> COMPLETED.
const (
	MatchWaitingForOpponent = "WAITING_FOR_OPPONENT"
	MatchPendingJudgment    = "PENDING_JUDGMENT"
	MatchCompleted          = "COMPLETED"
)

// Match is one paired exchange between two participants. SideB stays nil
// until an opponent joins; responses stay nil until submitted and are never
// overwritten afterwards.
type Match struct {
	gorm.Model
	PublicID       string `gorm:"unique;not null"` // uuid handed to clients
	SideAID        uint   `gorm:"not null;index"`
	SideBID        *uint  `gorm:"index"`
	PromptID       uint   `gorm:"not null"`
	ResponseA      *string
	ResponseB      *string
	Status         string `gorm:"not null;default:'WAITING_FOR_OPPONENT';index"`
	WinnerID       *uint
	ConsensusVotes string `gorm:"default:''"` // json tally, participant id -> votes
	Audited        bool   `gorm:"not null;default:false"`
	AuditVerdictID *uint
	IsHoneypot     bool `gorm:"not null;default:false"`
	// HoneypotRealID records which side holds the genuine response. Never
	// exposed before voting closes.
	HoneypotRealID *uint
	SideA          Participant  `gorm:"foreignKey:SideAID"`
	SideB          *Participant `gorm:"foreignKey:SideBID"`
	Prompt         Prompt       `gorm:"foreignKey:PromptID"`
}
