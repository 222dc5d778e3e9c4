package models

// SubmitResponseRequest is the body for POST /arena/matches/:id/response.
type SubmitResponseRequest struct {
	Response string `json:"response" binding:"required"`
}

// VoteRequest is the body for POST /judges/vote.
type VoteRequest struct {
	MatchID   string `json:"matchId" binding:"required"`
	Letter    string `json:"vote" binding:"required"`
	Reasoning string `json:"reasoning"`
}

// OpponentSummary is what a joining participant learns about side A.
type OpponentSummary struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// CompeteResponse is returned by POST /arena/compete.
type CompeteResponse struct {
	Status     string           `json:"status"` // "waiting_for_opponent" | "matched" | "already_waiting"
	MatchID    string           `json:"matchId"`
	PromptText string           `json:"prompt"`
	Opponent   *OpponentSummary `json:"opponent,omitempty"`
}

// PendingJudgment is one match handed to an evaluator, with positions
// already randomized for that evaluator.
type PendingJudgment struct {
	MatchID    string `json:"matchId"`
	PromptText string `json:"prompt"`
	ResponseA  string `json:"responseA"`
	ResponseB  string `json:"responseB"`
}
