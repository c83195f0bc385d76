package fsm

import "testing"

func TestGo_SetsStateAndMergesContext(t *testing.T) {
	for _, from := range []State{StateIntro, StateLevel} {
		t.Run(from.String(), func(t *testing.T) {
			m := New(from, nil)
			m.Go(from, Context{"keep": "me", KeyLevelTitle: "old"})

			m.Go(StateLevel, Context{KeyLevelTitle: "T"})

			if m.Current() != StateLevel {
				t.Errorf("Current() = %v, want level", m.Current())
			}
			if got := m.Context()[KeyLevelTitle]; got != "T" {
				t.Errorf("ctx[levelTitle] = %q, want %q", got, "T")
			}
			if got := m.Context()["keep"]; got != "me" {
				t.Errorf("ctx[keep] = %q, want %q (preserved)", got, "me")
			}
		})
	}
}

func TestGo_InvokesHandlerWithNewStateAndContext(t *testing.T) {
	var gotState State
	var gotTitle string
	calls := 0
	m := New(StateIntro, func(s State, ctx Context) *Request {
		calls++
		gotState = s
		gotTitle = ctx[KeyLevelTitle]
		return nil
	})

	m.Go(StateLevel, Context{KeyLevelTitle: "Is love a choice?"})

	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
	if gotState != StateLevel || gotTitle != "Is love a choice?" {
		t.Errorf("handler got (%v, %q), want (level, %q)", gotState, gotTitle, "Is love a choice?")
	}
}

func TestGo_NilPatchPreservesContext(t *testing.T) {
	m := New(StateIntro, nil)
	m.Go(StateLevel, Context{KeyLevelTitle: "T"})
	m.Go(StateIntro, nil)

	if m.Current() != StateIntro {
		t.Errorf("Current() = %v, want intro", m.Current())
	}
	if m.Context()[KeyLevelTitle] != "T" {
		t.Errorf("ctx[levelTitle] = %q, want %q", m.Context()[KeyLevelTitle], "T")
	}
}

func TestGo_ReentrantCallIsQueuedNotNested(t *testing.T) {
	depth, maxDepth := 0, 0
	var visited []State
	var m *Machine
	m = New(StateIntro, func(s State, ctx Context) *Request {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		visited = append(visited, s)
		if s == StateIntro && len(visited) < 4 {
			m.Go(StateLevel, Context{KeyLevelTitle: "again"})
		}
		if s == StateLevel && len(visited) < 4 {
			m.Go(StateIntro, nil)
		}
		depth--
		return nil
	})

	m.Go(StateIntro, nil)

	if maxDepth != 1 {
		t.Errorf("max handler depth = %d, want 1", maxDepth)
	}
	want := []State{StateIntro, StateLevel, StateIntro, StateLevel}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited = %v, want %v", visited, want)
			break
		}
	}
}

func TestGo_ReturnedRequestIsTrampolined(t *testing.T) {
	const hops = 100000
	count := 0
	m := New(StateIntro, func(s State, ctx Context) *Request {
		count++
		if count < hops {
			return &Request{Next: StateLevel}
		}
		return nil
	})

	m.Go(StateLevel, nil)

	if count != hops {
		t.Errorf("handler calls = %d, want %d", count, hops)
	}
}
