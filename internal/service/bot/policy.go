package bot

import (
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

// RandSource is the only source of non-determinism in a policy.
// *math/rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Rule is one query of a policy. It returns a column or reports no match.
type Rule struct {
	Name string
	Pick func(b BoardReader, own domain.Color) (int, bool)
}

// RuleRandom names the fallback used when no rule matches.
const RuleRandom = "random"

func threatRule(name string, againstOpponent bool, threshold int) Rule {
	return Rule{
		Name: name,
		Pick: func(b BoardReader, own domain.Color) (int, bool) {
			target := own
			if againstOpponent {
				target = own.Opponent()
			}
			return FindThreat(b, target, threshold)
		},
	}
}

var (
	RuleWin        = threatRule("win", false, ThresholdWin)
	RuleBlock      = threatRule("block", true, ThresholdWin)
	RuleBuildTwo   = threatRule("build-2", false, ThresholdTwo)
	RuleDenyTwo    = threatRule("deny-2", true, ThresholdTwo)
	RuleBuildThree = threatRule("build-3", false, ThresholdThree)
	RuleDenyThree  = threatRule("deny-3", true, ThresholdThree)

	RuleCenter = Rule{
		Name: "center",
		Pick: func(b BoardReader, _ domain.Color) (int, bool) { return CenterColumnIfOpen(b) },
	}
	RuleLeftmostEmpty = Rule{
		Name: "leftmost-empty",
		Pick: func(b BoardReader, _ domain.Color) (int, bool) { return LeftmostOpenColumn(b) },
	}
)

// Decision is the column a policy picked, the row the token lands on and
// the rule that produced it.
type Decision struct {
	Column int    `json:"column"`
	Row    int    `json:"row"`
	Rule   string `json:"rule"`
}

// Policy evaluates its rules in order; the first match wins and a uniformly
// random open column is the fallback. It keeps no state between moves
// besides its random source.
type Policy struct {
	tier  domain.Tier
	color domain.Color
	rules []Rule
	rng   RandSource
}

func NewPolicy(tier domain.Tier, color domain.Color, rules []Rule, rng RandSource) (*Policy, error) {
	if color != domain.Red && color != domain.Yellow {
		return nil, domain.ErrUnknownColor
	}
	return &Policy{tier: tier, color: color, rules: rules, rng: rng}, nil
}

func (p *Policy) Tier() domain.Tier { return p.tier }

func (p *Policy) Color() domain.Color { return p.color }

func (p *Policy) RuleNames() []string {
	names := make([]string, 0, len(p.rules)+1)
	for _, r := range p.rules {
		names = append(names, r.Name)
	}
	return append(names, RuleRandom)
}

// Choose picks a column without touching the board.
func (p *Policy) Choose(b BoardReader) (Decision, error) {
	open := OpenColumns(b)
	if len(open) == 0 {
		return Decision{}, domain.ErrNoOpenColumn
	}

	for _, r := range p.rules {
		col, ok := r.Pick(b, p.color)
		if !ok {
			continue
		}
		if row, ok := b.LandingRow(col); ok {
			return Decision{Column: col, Row: row, Rule: r.Name}, nil
		}
	}

	col := open[p.rng.Intn(len(open))]
	row, _ := b.LandingRow(col)
	return Decision{Column: col, Row: row, Rule: RuleRandom}, nil
}

// Move chooses a column and drops exactly one token of the policy's color there.
func (p *Policy) Move(b Board) (Decision, error) {
	d, err := p.Choose(b)
	if err != nil {
		return Decision{}, err
	}
	row, err := b.Drop(d.Column, p.color)
	if err != nil {
		return Decision{}, err
	}
	d.Row = row
	return d, nil
}
