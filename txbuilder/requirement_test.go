package txbuilder

import "testing"

func TestRequirementSetPriorityOrdering(t *testing.T) {
	s := NewRequirementSet()
	s.Push(Requirement{Kind: RequirementMana})
	s.Push(Requirement{Kind: RequirementAmount})
	s.Push(Requirement{Kind: RequirementEd25519, Address: addrA()})
	s.Push(Requirement{Kind: RequirementSender, Address: addrB()})

	var order []RequirementKind
	for s.Len() > 0 {
		r, _ := s.Pop()
		order = append(order, r.Kind)
	}

	want := []RequirementKind{RequirementSender, RequirementMana, RequirementAmount, RequirementEd25519}
	if len(order) != len(want) {
		t.Fatalf("got %d requirements, want %d", len(order), len(want))
	}
	for i, k := range want {
		if order[i] != k {
			t.Errorf("position %d: got %v, want %v", i, order[i], k)
		}
	}
}

func TestRequirementSetDedupWhileQueued(t *testing.T) {
	s := NewRequirementSet()
	s.Push(Requirement{Kind: RequirementEd25519, Address: addrA()})
	s.Push(Requirement{Kind: RequirementEd25519, Address: addrA()})

	if s.Len() != 1 {
		t.Fatalf("pushing the same requirement twice while queued should dedup, got len %d", s.Len())
	}
}

// A dispatcher that re-pushes the same requirement after popping it (e.g.
// Amount after pulling more input, §4.9) must see it queued again, not
// silently dropped as an already-seen duplicate.
func TestRequirementSetRepushAfterPop(t *testing.T) {
	s := NewRequirementSet()
	s.Push(Requirement{Kind: RequirementAmount})
	if _, ok := s.Pop(); !ok {
		t.Fatal("expected a requirement to pop")
	}
	if s.Len() != 0 {
		t.Fatalf("set should be empty after popping its only entry, got %d", s.Len())
	}

	s.Push(Requirement{Kind: RequirementAmount})
	if s.Len() != 1 {
		t.Fatalf("re-pushing after pop should queue again, got len %d", s.Len())
	}
}

func TestRequirementSetEmptyPop(t *testing.T) {
	s := NewRequirementSet()
	if _, ok := s.Pop(); ok {
		t.Fatal("popping an empty set should report false")
	}
}
