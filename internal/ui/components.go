package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/winston/internal/greeting"
	"github.com/olivier-w/winston/internal/morph"
)

const infoMarkdown = `# The Winston Philosophy

Experience the convergence of algorithm and elegance. The Winston Signature
tree uses particle physics to morph between chaos and structure.

- Procedural dual-state morphing
- Emerald needles and faceted gold ornaments
- Generative hallmark greetings (Gemini)
- Cinematic fog and vignette
`

const panelWidth = 56

func renderPanel(s ViewState, spin string, width int) string {
	w := min(panelWidth, max(width-4, 24))
	inner := w - panelStyle.GetHorizontalFrameSize()
	center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)

	var lines []string
	if s.Blessing == "" {
		button := buttonStyle.Render("★ REVEAL SIGNATURE")
		if s.Loading {
			button = buttonStyle.Render(spin + " ASSEMBLING...")
		}
		lines = append(lines,
			center.Render(panelTitleStyle.Render("Assemble Your Holiday")),
			center.Render(subtitleStyle.Render("OPULENT WINSTON EXPERIENCE")),
			"",
			center.Render(button),
			"",
			center.Render(subtitleStyle.Render(strings.Repeat("─", inner/2))),
			center.Render(poemStyle.Width(inner).Align(lipgloss.Center).Render(s.Poem)),
		)
	} else {
		lines = append(lines,
			center.Render(lipgloss.NewStyle().Foreground(brightGold).Render("★")),
			center.Render(subtitleStyle.Render("A WINSTON SIGNATURE BLESSING")),
			"",
			center.Render(blessingStyle.Width(inner).Align(lipgloss.Center).Render("“"+s.Blessing+"”")),
		)
		if s.Sentiment != "" {
			lines = append(lines, center.Render(sentimentStyle.Render("✦ "+string(s.Sentiment)+" ✦")))
		}
		lines = append(lines,
			"",
			center.Render(subtitleStyle.Render("r · DISASSEMBLE SIGNATURE")),
		)
	}
	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}

func renderHeader(s ViewState, progressBar string, width int) string {
	logo := lipgloss.JoinVertical(lipgloss.Left,
		logoStyle.Render("W I N S T O N"),
		taglineStyle.Render("MERRY CHRISTMAS"),
	)

	form := "❄ scattered"
	if s.Morph == morph.Assembled {
		form = "🎄 assembled"
	}
	audio := "♪ off"
	if s.AudioEnabled {
		audio = "♪ on"
	}
	status := statusStyle.Render(fmt.Sprintf("%s  %s  %s", form, progressBar, audio))

	gap := width - lipgloss.Width(logo) - lipgloss.Width(status) - 4
	if gap < 2 {
		gap = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, "  ", logo, strings.Repeat(" ", gap), status)
}

// wishesMarkdown lists the session's blessings, newest first.
func wishesMarkdown(wishes []greeting.Wish) string {
	if len(wishes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n## Wishes this session\n\n")
	for _, w := range wishes {
		fmt.Fprintf(&b, "- *%s* %s\n", w.Sentiment, w.Text)
	}
	return b.String()
}

func renderInfo(md string, wishes []greeting.Wish, width int) string {
	w := min(64, max(width-8, 30))
	md += wishesMarkdown(wishes)
	body := md
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(w-infoStyle.GetHorizontalFrameSize()-2),
	)
	if err == nil {
		if out, err := r.Render(md); err == nil {
			body = strings.TrimRight(out, "\n")
		}
	}
	return infoStyle.Width(w).Render(body + "\n\n" + subtitleStyle.Render("esc · close"))
}
