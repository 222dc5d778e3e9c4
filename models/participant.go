package models

import (
	"gorm.io/gorm"
)

// Account is the owning account a participant belongs to. Matchmaking and
// judge selection never pair or mix participants under the same account.
type Account struct {
	gorm.Model
	DisplayName  string        `gorm:"not null"`
	Participants []Participant `gorm:"foreignKey:AccountID"`
}

// Participant is a rated competitor in the arena.
type Participant struct {
	gorm.Model
	AccountID        uint    `gorm:"not null;index"`
	Name             string  `gorm:"not null"`
	Persona          string  `gorm:"not null"` // profile fed to the response generator
	Rating           int     `gorm:"not null;default:1000"`
	MatchCount       int     `gorm:"not null;default:0"` // lifetime matches, drives the K factor
	Qualified        bool    `gorm:"not null;default:false"`
	IsJudge          bool    `gorm:"not null;default:false;index"`
	CredibilityScore int     `gorm:"not null;default:100"`
	RecentPromptIDs  string  `gorm:"default:''"` // comma-joined, newest last, capped
	Account          Account `gorm:"foreignKey:AccountID"`
}
