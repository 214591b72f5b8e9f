package bot

import (
	"math/rand"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

// tierRules lists, per tier, the rules consulted before the random fallback.
var tierRules = map[domain.Tier][]Rule{
	domain.TierRandom:       {},
	domain.TierBeginner:     {RuleWin, RuleBlock},
	domain.TierIntermediate: {RuleWin, RuleBlock, RuleBuildTwo},
	domain.TierAdvanced: {
		RuleWin, RuleBlock,
		RuleBuildTwo, RuleDenyTwo,
		RuleBuildThree, RuleDenyThree,
		RuleCenter, RuleLeftmostEmpty,
	},
}

func RulesFor(tier domain.Tier) ([]Rule, error) {
	rules, ok := tierRules[tier]
	if !ok {
		return nil, domain.ErrUnknownTier
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out, nil
}

// NewTierPolicy builds the policy a tier plays with.
func NewTierPolicy(tier domain.Tier, color domain.Color, rng RandSource) (*Policy, error) {
	rules, err := RulesFor(tier)
	if err != nil {
		return nil, err
	}
	return NewPolicy(tier, color, rules, rng)
}

// NewRand returns a random source seeded with seed, or with the clock when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// CalculateBestMove picks the move tier would play as color, without mutating the board.
func CalculateBestMove(b BoardReader, color domain.Color, tier domain.Tier, rng RandSource) (Decision, error) {
	p, err := NewTierPolicy(tier, color, rng)
	if err != nil {
		return Decision{}, err
	}
	return p.Choose(b)
}
