package arena

import (
	"fmt"
	"math/rand"

	"arenaserver/models"

	"gorm.io/gorm"
)

// CommitteeSize is odd so a binary vote can never tie.
const CommitteeSize = 3

// CommitteeJudge is one selected evaluator with their private position
// mapping.
type CommitteeJudge struct {
	Judge      models.Participant
	Assignment LabelAssignment
}

// Committee is the set of evaluators for one match. When Fallback is set
// the pool was too small and all seats are filled by the automated
// evaluator; those votes never touch credibility.
type Committee struct {
	Judges   []CommitteeJudge
	Fallback bool
}

// EligibleJudges returns every participant who may sit on a committee for
// the two given sides: judge flag set, credibility at or above the
// threshold, and not owned by either competitor's account.
func EligibleJudges(db *gorm.DB, sideAID, sideBID uint) ([]models.Participant, error) {
	var owners []uint
	if err := db.Model(&models.Participant{}).
		Where("id IN ?", []uint{sideAID, sideBID}).
		Pluck("account_id", &owners).Error; err != nil {
		return nil, err
	}
	if len(owners) == 0 {
		return nil, fmt.Errorf("%w: competing participants", ErrNotFound)
	}

	var judges []models.Participant
	err := db.
		Where("is_judge = ?", true).
		Where("credibility_score >= ?", CredibilityThreshold).
		Where("account_id NOT IN ?", owners).
		Find(&judges).Error
	return judges, err
}

// SelectCommittee picks CommitteeSize judges at random from the eligible
// pool and hands each an independently randomized label assignment. With
// fewer eligible judges than seats it returns a fallback committee instead.
func SelectCommittee(db *gorm.DB, sideAID, sideBID uint) (Committee, error) {
	pool, err := EligibleJudges(db, sideAID, sideBID)
	if err != nil {
		return Committee{}, err
	}

	if len(pool) < CommitteeSize {
		return Committee{Fallback: true}, nil
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	committee := Committee{Judges: make([]CommitteeJudge, 0, CommitteeSize)}
	for _, judge := range pool[:CommitteeSize] {
		committee.Judges = append(committee.Judges, CommitteeJudge{
			Judge:      judge,
			Assignment: RandomAssignment(sideAID, sideBID),
		})
	}
	return committee, nil
}
