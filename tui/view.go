package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/ytbridge/ytbridge/color"
	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/icon"
	"github.com/ytbridge/ytbridge/style"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case monitorState:
		output = b.viewMonitor()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		style.Title(b.title()),
		"",
		b.spinnerC.View()+" Waiting for the player",
	)
}

func (b *statefulBubble) viewMonitor() string {
	status := fmt.Sprintf("%s %s", stateIcon(b.playerState), style.Bold(b.playerState.String()))
	if b.quality != event.QualityUnknown {
		status += style.Faint(" " + b.quality.String())
	}
	status += style.Faint(fmt.Sprintf(" %gx", b.rate))
	if b.looping {
		status += " " + icon.Get(icon.Loop)
	}
	if b.shuffled {
		status += " " + icon.Get(icon.Shuffle)
	}

	lines := []string{
		style.Title(b.title()),
		"",
		status,
		"",
		b.progressC.View(),
		fmt.Sprintf("%s / %s %s", clock(b.position), clock(b.duration), style.Faint(fmt.Sprintf("(%.0f%% buffered)", b.loaded*100))),
	}

	if kind, ok := b.lastError.Get(); ok {
		lines = append(lines, "", style.Fg(color.Red)(fmt.Sprintf("%s %s", icon.Get(icon.Warn), kind)))
	}

	lines = append(lines, "", b.helpC.View(b.keymap))
	return b.renderLines(lines...)
}

func (b *statefulBubble) viewError() string {
	msg := "unknown error"
	if b.failure != nil {
		msg = b.failure.Error()
	}

	return b.renderLines(
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail)+" "+wrap.String(msg, max(b.width-2, 20)),
		"",
		b.helpC.View(b.keymap),
	)
}

func (b *statefulBubble) title() string {
	if b.options.Title != "" {
		return b.options.Title
	}
	if b.videoID != "" {
		return b.videoID
	}
	return "ytbridge"
}

func (b *statefulBubble) renderLines(lines ...string) string {
	return paddingStyle.Render(strings.Join(lines, "\n"))
}

func stateIcon(s event.State) string {
	switch s {
	case event.StatePlaying:
		return icon.Get(icon.Play)
	case event.StatePaused:
		return icon.Get(icon.Pause)
	case event.StateBuffering:
		return icon.Get(icon.Buffer)
	case event.StateCued:
		return icon.Get(icon.Cued)
	case event.StateEnded:
		return icon.Get(icon.Ended)
	case event.StateUnstarted:
		return icon.Get(icon.Stop)
	default:
		return icon.Get(icon.Question)
	}
}

func clock(seconds float64) string {
	total := int(seconds)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
