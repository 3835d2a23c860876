package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/winston/internal/config"
	"github.com/olivier-w/winston/internal/greeting"
)

type frameMsg time.Time

type blessingMsg struct {
	wish greeting.Wish
}

type poemMsg struct {
	text string
}

// ConfigReloadedMsg carries the outcome of a config file reload. Cfg is
// nil when Err is set.
type ConfigReloadedMsg struct {
	Cfg *config.Config
	Err error
}

func frameCmd(fps int) tea.Cmd {
	if fps < 1 {
		fps = 1
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
