// Package tui provides the terminal monitor for a running player.
package tui

import (
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/open"
	"github.com/ytbridge/ytbridge/player"
	"github.com/ytbridge/ytbridge/transport"
)

// Remote is the part of the player controller the monitor drives.
type Remote interface {
	Observe(o player.Observer) (cancel func())
	State() event.State

	PlayVideo() bool
	PauseVideo() bool
	StopVideo() bool
	SeekTo(seconds float32, allowSeekAhead bool) bool
	NextVideo() bool
	PreviousVideo() bool
	SetPlaybackRate(rate float32) bool
	SetLoop(loop bool) bool
	SetShuffle(shuffle bool) bool

	PlaybackRate(done func(rate float32, err error))
	AvailablePlaybackRates(done func(rates []float32, err error))
	Duration(done func(seconds float64, err error))
	VideoURL(done func(u *url.URL, err error))
	VideoLoadedFraction(done func(fraction float32, err error))
}

// Options encapsulates the runtime configuration for the monitor.
type Options struct {
	Title string

	// Remote must only be touched through Dispatch.
	Remote   Remote
	Dispatch transport.Dispatch

	// Ready skips the loading screen when the player already reported readiness.
	Ready bool

	// Open shows a watch page outside the terminal. Defaults to the system handler.
	Open func(url string) error
}

// Result is what the monitor observed when it quit.
type Result struct {
	VideoID  string
	Position float64
	Duration float64
}

// Run executes the monitor until the user quits.
func Run(options *Options) (*Result, error) {
	if options.Open == nil {
		options.Open = open.Start
	}
	bubble := newBubble(options)

	program := tea.NewProgram(bubble, tea.WithAltScreen())
	bubble.send = program.Send

	cancel := bubble.observe()
	defer cancel()

	if _, err := program.Run(); err != nil {
		return nil, err
	}
	return bubble.result(), nil
}
