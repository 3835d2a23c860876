package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/olivier-w/winston/internal/greeting"
	"github.com/olivier-w/winston/internal/morph"
)

func TestInitialRequestsPoemOnce(t *testing.T) {
	s, effects := Initial()
	want := ViewState{Morph: morph.Scattered, Poem: greeting.Placeholder}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Effect{RequestPoem}, effects); diff != "" {
		t.Fatalf("initial effects mismatch (-want +got):\n%s", diff)
	}
}

func TestRevealThenReset(t *testing.T) {
	s, _ := Initial()

	s, effects := Reduce(s, Reveal{})
	if s.Morph != morph.Assembled {
		t.Fatalf("morph after reveal = %v, want assembled", s.Morph)
	}
	if !s.Loading {
		t.Fatal("expected loading after reveal")
	}
	if diff := cmp.Diff([]Effect{RequestBlessing}, effects); diff != "" {
		t.Fatalf("reveal effects mismatch (-want +got):\n%s", diff)
	}

	s, effects = Reduce(s, BlessingReceived{Text: greeting.BlessingError, Sentiment: greeting.Luxurious})
	if len(effects) != 0 {
		t.Fatalf("unexpected effects: %v", effects)
	}
	want := ViewState{
		Morph:     morph.Assembled,
		Blessing:  greeting.BlessingError,
		Sentiment: greeting.Luxurious,
		Poem:      greeting.Placeholder,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("after blessing (-want +got):\n%s", diff)
	}

	s, effects = Reduce(s, Reset{})
	for _, e := range effects {
		if e == RequestPoem {
			t.Fatal("reset must not request a poem")
		}
	}
	want = ViewState{Morph: morph.Scattered, Poem: greeting.Placeholder}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("after reset (-want +got):\n%s", diff)
	}
}

func TestRevealIgnoredWhileLoadingOrShown(t *testing.T) {
	s, _ := Initial()
	s, _ = Reduce(s, Reveal{})

	next, effects := Reduce(s, Reveal{})
	if len(effects) != 0 {
		t.Fatalf("second reveal while loading issued %v", effects)
	}
	if diff := cmp.Diff(s, next); diff != "" {
		t.Fatalf("state changed while loading (-want +got):\n%s", diff)
	}

	s, _ = Reduce(s, BlessingReceived{Text: "Gold."})
	next, effects = Reduce(s, Reveal{})
	if len(effects) != 0 {
		t.Fatalf("reveal with blessing shown issued %v", effects)
	}
	if diff := cmp.Diff(s, next); diff != "" {
		t.Fatalf("state changed with blessing shown (-want +got):\n%s", diff)
	}
}

func TestToggles(t *testing.T) {
	s, _ := Initial()

	s, _ = Reduce(s, ToggleMorph{})
	if s.Morph != morph.Assembled {
		t.Fatalf("morph = %v, want assembled", s.Morph)
	}
	s, _ = Reduce(s, ToggleMorph{})
	if s.Morph != morph.Scattered {
		t.Fatalf("morph = %v, want scattered", s.Morph)
	}

	s, _ = Reduce(s, ToggleAudio{})
	s, _ = Reduce(s, ToggleInfo{})
	if !s.AudioEnabled || !s.InfoOpen {
		t.Fatalf("toggles not applied: %+v", s)
	}
	s, _ = Reduce(s, ToggleInfo{})
	if s.InfoOpen {
		t.Fatal("info should close on second toggle")
	}
}

func TestPoemReceivedReplacesPlaceholder(t *testing.T) {
	s, _ := Initial()
	s, effects := Reduce(s, PoemReceived{Text: greeting.PoemEmpty})
	if len(effects) != 0 {
		t.Fatalf("unexpected effects: %v", effects)
	}
	if s.Poem != greeting.PoemEmpty {
		t.Fatalf("poem = %q", s.Poem)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before, _ := Initial()
	snapshot := before
	Reduce(before, Reveal{})
	Reduce(before, ToggleAudio{})
	if diff := cmp.Diff(snapshot, before); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}
