package session

import (
	"sync"
	"testing"
)

type fakeState struct{ step string }

func (fakeState) SessionState() {}

func TestStore(t *testing.T) {
	t.Run("idle user has no state", func(t *testing.T) {
		s := NewStore()
		if s.Active(1) != nil {
			t.Fatal("expected nil state for unknown user")
		}
	})

	t.Run("replace supersedes previous state", func(t *testing.T) {
		s := NewStore()
		s.Replace(1, fakeState{step: "first"})
		s.Replace(1, fakeState{step: "second"})

		got, ok := s.Active(1).(fakeState)
		if !ok || got.step != "second" {
			t.Fatalf("Active = %+v", s.Active(1))
		}
		if s.Len() != 1 {
			t.Fatalf("Len = %d", s.Len())
		}
	})

	t.Run("states are per user", func(t *testing.T) {
		s := NewStore()
		s.Replace(1, fakeState{step: "a"})
		s.Replace(2, fakeState{step: "b"})

		if s.Active(1).(fakeState).step != "a" || s.Active(2).(fakeState).step != "b" {
			t.Fatal("states leaked across users")
		}
	})

	t.Run("clear returns user to idle", func(t *testing.T) {
		s := NewStore()
		s.Replace(1, fakeState{})
		s.Clear(1)
		if s.Active(1) != nil {
			t.Fatal("state survived Clear")
		}
		s.Clear(2) // clearing an idle user is a no-op
	})

	t.Run("concurrent access", func(t *testing.T) {
		s := NewStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				s.Replace(id, fakeState{})
				s.Active(id)
				s.Clear(id)
			}(int64(i % 5))
		}
		wg.Wait()
	})
}
