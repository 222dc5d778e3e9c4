package models

import (
	"gorm.io/gorm"
)

// Prompt is one entry in the question catalogue both sides respond to.
type Prompt struct {
	gorm.Model
	Text     string `gorm:"not null"`
	Category string `gorm:"index"`
	Active   bool   `gorm:"not null;default:true;index"`
}
