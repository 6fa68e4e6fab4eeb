package joystick

import "testing"

func TestActionQueueCount(t *testing.T) {
	q := NewActionQueue()
	q.Push(ActionUp)
	q.Push(ActionNone)
	q.Push(ActionDown)
	q.Push(ActionConfirm)
	if q.Len() != 3 {
		t.Fatalf("Len() = %d after three pushes, want 3", q.Len())
	}

	if a, ok := q.Pop(); !ok || a != ActionUp {
		t.Errorf("Pop() = %v, %v; want up", a, ok)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d after pop, want 2", q.Len())
	}

	got := q.Drain()
	if len(got) != 2 || got[0] != ActionDown || got[1] != ActionConfirm {
		t.Errorf("Drain() = %v, want [down confirm]", got)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after drain, want 0", q.Len())
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue reported ok")
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after empty pop, want 0", q.Len())
	}
}
