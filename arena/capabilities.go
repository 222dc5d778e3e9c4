package arena

import "context"

// Fidelity tiers for the evaluation capability.
const (
	TierCommittee = "committee" // an ordinary committee member's persona
	TierFallback  = "fallback"  // impartial automated stand-in, no credibility effects
	TierAudit     = "audit"     // higher-trust re-evaluation
)

// Verdict is a binary choice between the two presented positions plus a
// short rationale.
type Verdict struct {
	Letter    string // "a" or "b"
	Reasoning string
}

// ResponseGenerator produces a participant's answer to a prompt. Calls are
// fallible; failures surface as ErrTransient and are retried by the caller's
// policy, never silently replaced.
type ResponseGenerator interface {
	Generate(ctx context.Context, persona, prompt string) (string, error)
}

// Evaluator decides which of two responses is more convincing. The persona
// argument is only meaningful for TierCommittee.
type Evaluator interface {
	Evaluate(ctx context.Context, tier, persona, responseA, responseB string) (Verdict, error)
}
