package core

import "testing"

func TestPointerQueueCoalescesDrags(t *testing.T) {
	q := NewPointerQueue()
	q.Push(PointerEvent{Kind: PointerPress, Pos: V(1, 1)})
	q.Push(PointerEvent{Kind: PointerDrag, Pos: V(2, 1)})
	q.Push(PointerEvent{Kind: PointerDrag, Pos: V(3, 1)})
	q.Push(PointerEvent{Kind: PointerDrag, Pos: V(4, 1)})
	q.Push(PointerEvent{Kind: PointerRelease})

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", q.Len())
	}

	expected := []PointerEvent{
		{Kind: PointerPress, Pos: V(1, 1)},
		{Kind: PointerDrag, Pos: V(4, 1)},
		{Kind: PointerRelease},
	}
	for i, want := range expected {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() #%d returned no event", i)
		}
		if got != want {
			t.Errorf("Pop() #%d = %+v, expected %+v", i, got, want)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue should return false")
	}
}

func TestPointerQueueKeepsPressesAndReleases(t *testing.T) {
	q := NewPointerQueue()
	q.Push(PointerEvent{Kind: PointerPress, Pos: V(0, 0)})
	q.Push(PointerEvent{Kind: PointerRelease})
	q.Push(PointerEvent{Kind: PointerPress, Pos: V(5, 5)})

	if q.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", q.Len())
	}

	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len() after Clear = %d, expected 0", q.Len())
	}
}

func TestPointerKindString(t *testing.T) {
	if PointerPress.String() != "Press" || PointerDrag.String() != "Drag" || PointerRelease.String() != "Release" {
		t.Error("unexpected pointer kind names")
	}
	if PointerKind(99).String() != "Unknown" {
		t.Error("unknown kind should stringify as Unknown")
	}
}
