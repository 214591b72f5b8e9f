package uid

import "testing"

func TestGeneratedIDsAreUniqueUUIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateGameID()
		if !IsValid(id) {
			t.Fatalf("generated id %q is not a uuid", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if !IsValid(GenerateMatchID()) {
		t.Fatalf("match id is not a uuid")
	}
	if IsValid("not-an-id") {
		t.Fatalf("expected invalid id to be rejected")
	}
}
