package bitset

import "testing"

func TestSetClearTest(t *testing.T) {
	s := New(8)
	if s.Test(3) {
		t.Fatal("expected bit 3 unset initially")
	}
	s.Set(3)
	if !s.Test(3) {
		t.Fatal("expected bit 3 set")
	}
	s.Clear(3)
	if s.Test(3) {
		t.Fatal("expected bit 3 cleared")
	}
}

func TestGrowsBeyondInitialCapacity(t *testing.T) {
	s := New(4)
	s.Set(200)
	if !s.Test(200) {
		t.Fatal("expected bit 200 set after growing")
	}
	if s.Count() != 1 {
		t.Fatalf("expected count 1, got %d", s.Count())
	}
}

func TestWhichBit(t *testing.T) {
	s := New(128)
	if s.WhichBit() != -1 {
		t.Fatal("expected -1 for empty set")
	}
	s.Set(42)
	if got := s.WhichBit(); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	s.Set(100)
	if s.WhichBit() != -1 {
		t.Fatal("expected -1 once a second bit is set")
	}
}

func TestSlice(t *testing.T) {
	s := New(128)
	s.Set(5)
	s.Set(64)
	s.Set(127)
	got := s.Slice()
	want := []int{5, 64, 127}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
