package ui

import (
	"github.com/olivier-w/winston/internal/greeting"
	"github.com/olivier-w/winston/internal/morph"
)

// ViewState is everything the panel shows. It is a value: Reduce returns a
// new one and never mutates its input.
type ViewState struct {
	Morph        morph.State
	Blessing     string // empty until revealed
	Sentiment    greeting.Sentiment
	Poem         string
	Loading      bool
	AudioEnabled bool
	InfoOpen     bool
}

// Action is a user input or an async result fed to Reduce.
type Action interface {
	action()
}

type (
	ToggleMorph      struct{}
	Reveal           struct{}
	Reset            struct{}
	ToggleAudio      struct{}
	ToggleInfo       struct{}
	BlessingReceived struct {
		Text      string
		Sentiment greeting.Sentiment
	}
	PoemReceived     struct{ Text string }
)

func (ToggleMorph) action()      {}
func (Reveal) action()           {}
func (Reset) action()            {}
func (ToggleAudio) action()      {}
func (ToggleInfo) action()       {}
func (BlessingReceived) action() {}
func (PoemReceived) action()     {}

// Effect is work Reduce asks the caller to start.
type Effect int

const (
	RequestBlessing Effect = iota + 1
	RequestPoem
)

func (e Effect) String() string {
	switch e {
	case RequestBlessing:
		return "request-blessing"
	case RequestPoem:
		return "request-poem"
	}
	return "unknown"
}

// Initial returns the startup state: scattered, no blessing, the poem
// placeholder showing, and one poem request.
func Initial() (ViewState, []Effect) {
	return ViewState{
		Morph: morph.Scattered,
		Poem:  greeting.Placeholder,
	}, []Effect{RequestPoem}
}

// Reduce applies a to s.
func Reduce(s ViewState, a Action) (ViewState, []Effect) {
	switch a := a.(type) {
	case ToggleMorph:
		s.Morph = s.Morph.Toggle()
	case Reveal:
		if s.Loading || s.Blessing != "" {
			return s, nil
		}
		s.Loading = true
		s.Morph = morph.Assembled
		return s, []Effect{RequestBlessing}
	case Reset:
		s.Blessing = ""
		s.Sentiment = ""
		s.Morph = morph.Scattered
	case ToggleAudio:
		s.AudioEnabled = !s.AudioEnabled
	case ToggleInfo:
		s.InfoOpen = !s.InfoOpen
	case BlessingReceived:
		s.Blessing = a.Text
		s.Sentiment = a.Sentiment
		s.Loading = false
	case PoemReceived:
		s.Poem = a.Text
	}
	return s, nil
}
