package arena

import (
	"testing"
	"time"

	"arenaserver/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func participantWithAccountAge(age time.Duration, now time.Time) models.Participant {
	return models.Participant{
		Qualified:  true,
		MatchCount: judgeMinMatchCount,
		Account: models.Account{
			Model: gorm.Model{CreatedAt: now.Add(-age)},
		},
	}
}

func TestJudgeEligibleMeetsAllGates(t *testing.T) {
	now := time.Now()
	p := participantWithAccountAge(48*time.Hour, now)
	assert.True(t, JudgeEligible(&p, now))
}

func TestJudgeEligibleRequiresQualification(t *testing.T) {
	now := time.Now()
	p := participantWithAccountAge(48*time.Hour, now)
	p.Qualified = false
	assert.False(t, JudgeEligible(&p, now))
}

func TestJudgeEligibleRequiresAccountAge(t *testing.T) {
	now := time.Now()
	p := participantWithAccountAge(time.Hour, now)
	assert.False(t, JudgeEligible(&p, now))
}

func TestJudgeEligibleRequiresMatchCount(t *testing.T) {
	now := time.Now()
	p := participantWithAccountAge(48*time.Hour, now)
	p.MatchCount = judgeMinMatchCount - 1
	assert.False(t, JudgeEligible(&p, now))
}
