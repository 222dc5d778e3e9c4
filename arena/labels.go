package arena

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const labelExpiry = 24 * time.Hour

// LabelAssignment maps the two randomized position letters an evaluator
// sees to actual participant ids. Private to that evaluator.
type LabelAssignment struct {
	A uint `json:"a"`
	B uint `json:"b"`
}

// MappedParticipant resolves a voted letter back through this assignment.
func (la LabelAssignment) MappedParticipant(letter string) (uint, error) {
	switch letter {
	case "a":
		return la.A, nil
	case "b":
		return la.B, nil
	default:
		return 0, fmt.Errorf("%w: letter must be a or b", ErrValidation)
	}
}

// RandomAssignment flips a coin for the position mapping. Called once per
// judge so every committee member gets independent positions.
func RandomAssignment(sideA, sideB uint) LabelAssignment {
	if rand.Intn(2) == 0 {
		return LabelAssignment{A: sideA, B: sideB}
	}
	return LabelAssignment{A: sideB, B: sideA}
}

func labelKey(judgeID uint, matchPublicID string) string {
	return fmt.Sprintf("judge:%d:match:%s:labels", judgeID, matchPublicID)
}

// StoreLabelAssignment saves the single-use mapping handed out when a judge
// fetches a pending match. It expires on its own if the judge never votes.
func StoreLabelAssignment(ctx context.Context, rdb *redis.Client, judgeID uint, matchPublicID string, la LabelAssignment, logger *zap.Logger) error {
	payload, err := json.Marshal(la)
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, labelKey(judgeID, matchPublicID), payload, labelExpiry).Err(); err != nil {
		logger.Error("failed to store label assignment", zap.Error(err))
		return err
	}
	return nil
}

// ConsumeLabelAssignment reads and deletes the mapping. A vote with no live
// assignment fails instead of guessing positions.
func ConsumeLabelAssignment(ctx context.Context, rdb *redis.Client, judgeID uint, matchPublicID string) (LabelAssignment, error) {
	var la LabelAssignment
	key := labelKey(judgeID, matchPublicID)

	payload, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return la, fmt.Errorf("%w: no pending judgment for this match, fetch it first", ErrConflict)
	}
	if err != nil {
		return la, err
	}
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return la, err
	}
	if err := json.Unmarshal([]byte(payload), &la); err != nil {
		return la, err
	}
	return la, nil
}
