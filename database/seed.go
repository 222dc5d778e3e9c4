package database

import (
	"arenaserver/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var seedPrompts = []models.Prompt{
	{Text: "What was the last thing that made you laugh out loud?", Category: "personal", Active: true},
	{Text: "Describe a smell that brings back strong memories for you.", Category: "personal", Active: true},
	{Text: "What's something you've changed your mind about recently?", Category: "personal", Active: true},
	{Text: "What do you think about when you can't fall asleep?", Category: "personal", Active: true},
	{Text: "Describe your perfect lazy Sunday morning.", Category: "personal", Active: true},
	{Text: "What's overrated that everyone seems to love?", Category: "opinion", Active: true},
	{Text: "Is it better to be right or to be kind? When do those conflict?", Category: "opinion", Active: true},
	{Text: "Do you think people can really change?", Category: "opinion", Active: true},
	{Text: "What makes someone truly interesting?", Category: "opinion", Active: true},
	{Text: "You find $500 on the ground. No one is around. What do you do?", Category: "hypothetical", Active: true},
	{Text: "You can send one message to yourself 10 years ago. What do you say?", Category: "hypothetical", Active: true},
	{Text: "If you could live in any era, which would you pick and why?", Category: "hypothetical", Active: true},
}

// SeedPrompts fills the prompt catalogue on first boot. Existing catalogues
// are left alone.
func SeedPrompts(db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Prompt{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := db.Create(&seedPrompts).Error; err != nil {
		logger.Error("failed to seed prompts", zap.Error(err))
		return err
	}
	logger.Info("seeded prompt catalogue", zap.Int("prompts", len(seedPrompts)))
	return nil
}
