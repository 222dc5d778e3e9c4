package arena

import (
	"fmt"
	"strconv"
	"strings"

	"arenaserver/models"

	"gorm.io/gorm"
)

// recentPromptLimit bounds the per-participant history used to avoid
// handing a participant the same prompt twice in quick succession.
const recentPromptLimit = 5

// DrawPrompt picks a random active prompt, skipping the requester's recent
// ones when possible, and records the pick in their history.
func DrawPrompt(db *gorm.DB, requester *models.Participant) (*models.Prompt, error) {
	recent := splitPromptHistory(requester.RecentPromptIDs)

	var prompt models.Prompt
	query := db.Where("active = ?", true)
	if len(recent) > 0 {
		query = query.Where("id NOT IN ?", recent)
	}
	err := query.Order("RANDOM()").First(&prompt).Error
	if err == gorm.ErrRecordNotFound && len(recent) > 0 {
		// catalogue smaller than the history; a repeat beats no prompt
		err = db.Where("active = ?", true).Order("RANDOM()").First(&prompt).Error
	}
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: no active prompts", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	history := appendPromptHistory(recent, prompt.ID)
	if err := db.Model(&models.Participant{}).
		Where("id = ?", requester.ID).
		Update("recent_prompt_ids", joinPromptHistory(history)).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

func splitPromptHistory(raw string) []uint {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

func appendPromptHistory(ids []uint, next uint) []uint {
	ids = append(ids, next)
	if len(ids) > recentPromptLimit {
		ids = ids[len(ids)-recentPromptLimit:]
	}
	return ids
}

func joinPromptHistory(ids []uint) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, ",")
}
