package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/ytbridge/ytbridge/color"
	"github.com/ytbridge/ytbridge/style"
)

// keymap defines the keyboard interactions of the monitor.
type keymap struct {
	quit, forceQuit,
	playPause, stop,
	seekBack, seekForward,
	next, previous,
	faster, slower,
	loop, shuffle,
	openPage,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("play/pause")),
		),
		stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "-10s"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "+10s"),
		),
		next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next"),
		),
		previous: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous"),
		),
		faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		loop: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "loop"),
		),
		shuffle: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "shuffle"),
		),
		openPage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.seekBack, k.seekForward, k.quit, k.showHelp}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.stop, k.seekBack, k.seekForward},
		{k.next, k.previous, k.loop, k.shuffle},
		{k.faster, k.slower, k.openPage},
		{k.showHelp, k.quit},
	}
}
