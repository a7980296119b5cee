package game

import (
	"reflect"
	"testing"
)

func TestQueueShowsImmediately(t *testing.T) {
	ms := &fakeMessageSurface{}
	q := NewQueue(ms)

	q.Show(&paragraph{text: "a"})
	if got := ms.shown(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("shown = %v, want [a]", got)
	}
	if got := q.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
}

func TestQueueNewestFirst(t *testing.T) {
	ms := &fakeMessageSurface{}
	q := NewQueue(ms)

	q.Show(&paragraph{text: "a"})
	q.Show(&paragraph{text: "b"})
	q.Show(&paragraph{text: "c"})

	// a is on screen; b and c wait behind it.
	if got := ms.shown(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("shown = %v, want [a]", got)
	}
	if got := q.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}

	// Dismissing promotes the most recently queued message.
	ms.dismissCurrent()
	ms.dismissCurrent()
	ms.dismissCurrent()
	want := []string{"a", "c", "b"}
	if got := ms.shown(); !reflect.DeepEqual(got, want) {
		t.Errorf("shown = %v, want %v", got, want)
	}
	if got := q.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
}

func TestQueueOneAtATime(t *testing.T) {
	ms := &fakeMessageSurface{}
	q := NewQueue(ms)

	q.Show(&paragraph{text: "a"})
	q.Show(&paragraph{text: "b"})
	ms.dismissCurrent()
	// c arrives while b is on screen; it shows only after b is dismissed.
	q.Show(&paragraph{text: "c"})
	if got := ms.shown(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("shown = %v, want [a b]", got)
	}
	ms.dismissCurrent()
	if got := ms.shown(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("shown = %v, want [a b c]", got)
	}
}

func TestQueueDismissWhenEmpty(t *testing.T) {
	ms := &fakeMessageSurface{}
	q := NewQueue(ms)

	q.Show(&paragraph{text: "a"})
	ms.dismissCurrent()
	// A stray extra dismiss must not show anything or panic.
	ms.dismissCurrent()
	if got := ms.shown(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("shown = %v, want [a]", got)
	}
}
