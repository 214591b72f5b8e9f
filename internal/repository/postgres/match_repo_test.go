package postgres

import (
	"strings"
	"testing"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

func TestTierStrings(t *testing.T) {
	if got := tierStrings(nil); got != nil {
		t.Fatalf("expected nil filter, got %v", got)
	}
	got := tierStrings([]domain.Tier{domain.TierBeginner, domain.TierAdvanced})
	if len(got) != 2 || got[0] != "beginner" || got[1] != "advanced" {
		t.Fatalf("unexpected filter %v", got)
	}
}

func TestDecodeMatchJSON(t *testing.T) {
	var m domain.MatchRecord
	if err := decodeMatchJSON(&m, []byte(`[3,3,4]`), []byte(`[[0,0],[1,2]]`)); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(m.Moves) != 3 || m.Moves[2] != 4 {
		t.Fatalf("unexpected moves %v", m.Moves)
	}
	if len(m.Board) != 2 || m.Board[1][1] != 2 {
		t.Fatalf("unexpected board %v", m.Board)
	}

	var empty domain.MatchRecord
	if err := decodeMatchJSON(&empty, nil, []byte("null")); err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if empty.Moves == nil || empty.Board != nil {
		t.Fatalf("expected empty moves and nil board, got %+v", empty)
	}

	if err := decodeMatchJSON(&m, []byte(`{`), nil); err == nil {
		t.Fatalf("expected malformed moves to fail")
	}
}

func TestSchemaIsEmbedded(t *testing.T) {
	for _, table := range []string{"matches", "tier_ratings"} {
		if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("schema is missing table %s", table)
		}
	}
}

func TestSaveMatchArgsSendJSONAsText(t *testing.T) {
	m := &domain.MatchRecord{
		ID:         "m-1",
		Source:     domain.SourceArena,
		RedTier:    domain.TierAdvanced,
		YellowTier: domain.TierRandom,
		Winner:     domain.Red,
		Moves:      []int{3, 3, 4},
		Board:      [][]int{{0, 0}, {1, 2}},
	}
	args, err := saveMatchArgs(m)
	if err != nil {
		t.Fatalf("args: %v", err)
	}
	if len(args) != len(strings.Split(matchColumns, ",")) {
		t.Fatalf("expected one argument per column, got %d", len(args))
	}

	moves, ok := args[9].(string)
	if !ok || moves != "[3,3,4]" {
		t.Fatalf("moves must be a JSON string, got %T %v", args[9], args[9])
	}
	board, ok := args[10].(string)
	if !ok || board != "[[0,0],[1,2]]" {
		t.Fatalf("board must be a JSON string, got %T %v", args[10], args[10])
	}
	if winner, ok := args[6].(int); !ok || winner != 1 {
		t.Fatalf("winner must be the color code, got %T %v", args[6], args[6])
	}
}

func TestLockOrderIgnoresColors(t *testing.T) {
	a := lockOrder(domain.TierBeginner, domain.TierAdvanced)
	b := lockOrder(domain.TierAdvanced, domain.TierBeginner)
	if len(a) != 2 || len(b) != 2 || a[0] != b[0] || a[1] != b[1] {
		t.Fatalf("swapped colors locked in different orders: %v vs %v", a, b)
	}
	if a[0] != domain.TierAdvanced {
		t.Fatalf("expected tiers sorted by name, got %v", a)
	}
	if got := lockOrder(domain.TierRandom, domain.TierRandom); len(got) != 1 {
		t.Fatalf("mirror match must lock one row, got %v", got)
	}
}
