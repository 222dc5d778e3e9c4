package models

import (
	"gorm.io/gorm"
)

// Vote is one evaluator's verdict on one match. The unique index on
// (match_id, judge_id) enforces one vote per evaluator at the storage
// layer.
type Vote struct {
	gorm.Model
	MatchID uint `gorm:"not null;uniqueIndex:idx_votes_match_judge"`
	JudgeID uint `gorm:"not null;uniqueIndex:idx_votes_match_judge;index"`
	// LabelAssignment is this judge's private letter mapping, stored as
	// json {"a": <participant id>, "b": <participant id>}. Each judge gets
	// an independently randomized mapping.
	LabelAssignment     string      `gorm:"not null"`
	Letter              string      `gorm:"not null"` // "a" or "b"
	Reasoning           string
	AgreedWithConsensus *bool // nil until the match finalizes
	Match               Match       `gorm:"foreignKey:MatchID"`
	Judge               Participant `gorm:"foreignKey:JudgeID"`
}
