package scramble

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"promptscape/pkg/engine/loop"
	"promptscape/pkg/engine/surface"
)

// longest possible animation: start 9 + duration 19 frames at 50ms each
const settleTime = 30 * DefaultInterval

func newTestEffect(t *testing.T, seed uint64) (*loop.Scheduler, *surface.Element, *Effect) {
	t.Helper()
	sched := loop.New()
	el := surface.NewElement("levelTitle", surface.KindText)
	fx := New(sched, el, WithRand(rand.New(rand.NewPCG(seed, seed+1))))
	return sched, el, fx
}

func TestSetText_SettlesOnNewText(t *testing.T) {
	sched, el, fx := newTestEffect(t, 1)

	fx.SetText("")
	done := fx.SetText("ABC")
	if done.Done() {
		t.Fatal("completion resolved before any time passed")
	}

	sched.Advance(settleTime)

	if !done.Done() {
		t.Fatal("completion not resolved after the longest possible animation")
	}
	if el.Text() != "ABC" {
		t.Errorf("displayed text = %q, want %q", el.Text(), "ABC")
	}
	for _, seg := range el.Segments() {
		if seg.Scrambled {
			t.Errorf("segment %q still scrambled after completion", seg.Text)
		}
	}
	if fx.Animating() {
		t.Error("Animating() = true after completion, want false")
	}
}

func TestSetText_ShrinksFromLongerText(t *testing.T) {
	sched, el, fx := newTestEffect(t, 2)
	el.SetText("Will love last forever?")

	done := fx.SetText("Yes")
	sched.Advance(settleTime)

	if !done.Done() || el.Text() != "Yes" {
		t.Errorf("text = %q done = %v, want %q true", el.Text(), done.Done(), "Yes")
	}
}

func TestSetText_SupersededCompletionNeverResolves(t *testing.T) {
	sched, el, fx := newTestEffect(t, 3)

	first := fx.SetText("first title")
	firstResolved := 0
	first.Then(func() { firstResolved++ })

	sched.Advance(2 * DefaultInterval)
	second := fx.SetText("second")
	secondResolved := 0
	second.Then(func() { secondResolved++ })

	sched.Advance(10 * settleTime)

	if first.Done() || firstResolved != 0 {
		t.Errorf("first completion resolved (%d callbacks), want never", firstResolved)
	}
	if !second.Done() || secondResolved != 1 {
		t.Errorf("second completion resolved %d times, want exactly 1", secondResolved)
	}
	if el.Text() != "second" {
		t.Errorf("displayed text = %q, want %q", el.Text(), "second")
	}
}

func TestSetText_ScrambledGlyphsComeFromSymbolSet(t *testing.T) {
	sched, el, fx := newTestEffect(t, 4)
	fx.SetText("")
	fx.SetText(strings.Repeat("x", 40))

	sawScrambled := false
	for i := 0; i < 30; i++ {
		for _, seg := range el.Segments() {
			if !seg.Scrambled {
				continue
			}
			sawScrambled = true
			if !strings.Contains(DefaultGlyphs, seg.Text) {
				t.Fatalf("scrambled glyph %q not in symbol set", seg.Text)
			}
		}
		sched.Advance(DefaultInterval)
	}
	if !sawScrambled {
		t.Error("never observed a scrambled segment")
	}
}

func TestSetText_StepsOnFixedInterval(t *testing.T) {
	sched, el, fx := newTestEffect(t, 5)
	el.SetText("abc")
	fx.SetText("abc")

	// Nothing may reveal before the first step boundary regardless of how often
	// the caller advances.
	before := el.Text()
	for i := 0; i < 4; i++ {
		sched.Advance(10 * time.Millisecond)
	}
	if el.Text() != before {
		t.Errorf("text changed between steps: %q -> %q", before, el.Text())
	}
}

func TestSetText_EmptyToEmptyResolvesImmediately(t *testing.T) {
	_, el, fx := newTestEffect(t, 6)
	done := fx.SetText("")
	if !done.Done() {
		t.Error("SetText(\"\") on empty element did not resolve immediately")
	}
	if el.Text() != "" {
		t.Errorf("text = %q, want empty", el.Text())
	}
}
