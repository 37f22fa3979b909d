package hxcontent

import "testing"

func TestStateGet(t *testing.T) {
	base := NewState(map[string]any{"a": 1, "b": 2})
	s := Inherit(base, map[string]any{"b": 20, "c": 30})

	tests := []struct {
		key    string
		want   any
		wantOK bool
	}{
		{"a", 1, true},
		{"b", 20, true},
		{"c", 30, true},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := s.Get(tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Get(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStateWritesStayLocal(t *testing.T) {
	base := NewState(map[string]any{"a": 1})
	s := Inherit(base, nil)

	s.Set("a", 2)
	if v, _ := base.Get("a"); v != 1 {
		t.Errorf("base a = %v, want 1", v)
	}
	if v, _ := s.Get("a"); v != 2 {
		t.Errorf("a = %v, want 2", v)
	}

	s.Delete("a")
	if v, _ := s.Get("a"); v != 1 {
		t.Errorf("after Delete a = %v, want base value 1", v)
	}
}

func TestStateMerge(t *testing.T) {
	s := NewState(map[string]any{"a": 1})
	s.Merge(map[string]any{"a": 2, "b": 3})

	local := s.Local()
	if len(local) != 2 || local["a"] != 2 || local["b"] != 3 {
		t.Errorf("Local() = %v", local)
	}

	// Local returns a copy.
	local["a"] = 99
	if v, _ := s.Get("a"); v != 2 {
		t.Errorf("mutating Local() leaked into state: a = %v", v)
	}
}

func TestStateResolve(t *testing.T) {
	root := NewState(map[string]any{"a": 1, "b": 1, "c": 1})
	mid := Inherit(root, map[string]any{"b": 2, "c": 2})
	leaf := Inherit(mid, map[string]any{"c": 3})

	got := leaf.Snapshot()
	want := map[string]any{"a": 1, "b": 2, "c": 3}
	if len(got) != len(want) {
		t.Fatalf("Resolve() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Resolve()[%q] = %v, want %v", k, got[k], v)
		}
	}
}

func TestNilState(t *testing.T) {
	var s *State
	if _, ok := s.Get("a"); ok {
		t.Error("nil state should resolve nothing")
	}
	if s.Has("a") {
		t.Error("nil state should have nothing")
	}
	if s.Base() != nil || s.Local() != nil {
		t.Error("nil state should have no base or values")
	}
	if len(s.Resolve()) != 0 {
		t.Error("nil state should resolve to an empty map")
	}
}
