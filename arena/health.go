package arena

import (
	"context"

	"arenaserver/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Health is the arena's operational snapshot.
type Health struct {
	SweepRunning   bool  `json:"sweepRunning"`
	QualifiedCount int64 `json:"qualifiedParticipants"`
	JudgePoolSize  int64 `json:"judgePoolSize"`
	LastSweepUnix  int64 `json:"lastSweepUnix"`
}

// CheckHealth gathers the sweep flag, the qualified-participant count and
// the size of the eligible judge pool.
func CheckHealth(ctx context.Context, db *gorm.DB, rdb *redis.Client) (*Health, error) {
	running, err := SweepRunning(ctx, rdb)
	if err != nil {
		return nil, err
	}

	var qualified int64
	if err := db.Model(&models.Participant{}).
		Where("qualified = ?", true).Count(&qualified).Error; err != nil {
		return nil, err
	}

	var judges int64
	if err := db.Model(&models.Participant{}).
		Where("is_judge = ? AND credibility_score >= ?", true, CredibilityThreshold).
		Count(&judges).Error; err != nil {
		return nil, err
	}

	lastSweep, err := LastSweepTime(ctx, rdb)
	if err != nil {
		return nil, err
	}

	return &Health{
		SweepRunning:   running,
		QualifiedCount: qualified,
		JudgePoolSize:  judges,
		LastSweepUnix:  lastSweep,
	}, nil
}
