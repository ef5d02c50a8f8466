package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/internal/ui"
	"github.com/ytbridge/ytbridge/open"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	notify := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, notify
	case tea.KeyMsg:
		return b, tea.Batch(notify, b.handleKey(msg))
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case progress.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, cmd
	case tickMsg:
		if b.state == monitorState {
			b.refresh()
		}
		return b, tick()
	}

	return b, tea.Batch(notify, b.handlePlayer(msg))
}

// handlePlayer applies a message that originated on the host loop.
func (b *statefulBubble) handlePlayer(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case readyMsg:
		b.state = monitorState
		b.refresh()
		b.fetchRates()
	case stateMsg:
		b.playerState = msg.state
		if msg.state == event.StatePlaying || msg.state == event.StateCued {
			b.lastError = mo.None[event.ErrorKind]()
			b.refresh()
		}
	case qualityMsg:
		b.quality = msg.quality
	case playerErrorMsg:
		b.lastError = mo.Some(msg.kind)
	case timeMsg:
		b.position = msg.seconds
		return b.progressC.SetPercent(b.percent())
	case durationMsg:
		b.duration = msg.seconds
		return b.progressC.SetPercent(b.percent())
	case videoMsg:
		if msg.id != "" && msg.id != b.videoID {
			b.videoID = msg.id
			b.position = 0
		}
	case loadedMsg:
		b.loaded = msg.fraction
	case rateMsg:
		b.rate = msg.rate
	case ratesMsg:
		b.rates = msg.rates
	case refusedMsg:
		return ui.Notify(fmt.Sprintf("%s refused", msg.command))
	case error:
		b.raiseError(msg)
	}
	return nil
}

func (b *statefulBubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keymap.forceQuit), key.Matches(msg, b.keymap.quit):
		return tea.Quit
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return nil
	}

	if b.state != monitorState {
		return nil
	}

	switch {
	case key.Matches(msg, b.keymap.playPause):
		if b.playerState == event.StatePlaying || b.playerState == event.StateBuffering {
			b.command("pause", Remote.PauseVideo)
		} else {
			b.command("play", Remote.PlayVideo)
		}
	case key.Matches(msg, b.keymap.stop):
		b.command("stop", Remote.StopVideo)
	case key.Matches(msg, b.keymap.seekBack):
		return b.seek(-seekStep)
	case key.Matches(msg, b.keymap.seekForward):
		return b.seek(seekStep)
	case key.Matches(msg, b.keymap.next):
		b.command("next", Remote.NextVideo)
	case key.Matches(msg, b.keymap.previous):
		b.command("previous", Remote.PreviousVideo)
	case key.Matches(msg, b.keymap.faster):
		b.setRate(b.nextRate(1))
	case key.Matches(msg, b.keymap.slower):
		b.setRate(b.nextRate(-1))
	case key.Matches(msg, b.keymap.loop):
		b.looping = !b.looping
		looping := b.looping
		b.command("loop", func(r Remote) bool { return r.SetLoop(looping) })
		return ui.Notify("loop " + onOff(looping))
	case key.Matches(msg, b.keymap.shuffle):
		b.shuffled = !b.shuffled
		shuffled := b.shuffled
		b.command("shuffle", func(r Remote) bool { return r.SetShuffle(shuffled) })
		return ui.Notify("shuffle " + onOff(shuffled))
	case key.Matches(msg, b.keymap.openPage):
		return b.openPage()
	}
	return nil
}

func (b *statefulBubble) openPage() tea.Cmd {
	if b.videoID == "" {
		return ui.Notify("nothing to open yet")
	}

	page := open.WatchURL(b.videoID, b.position)
	if err := b.options.Open(page); err != nil {
		return ui.Notify("open failed: " + err.Error())
	}
	return ui.Notify("opened " + page)
}

func (b *statefulBubble) seek(delta float64) tea.Cmd {
	target := max(b.position+delta, 0)
	if b.duration > 0 {
		target = min(target, b.duration)
	}

	b.position = target
	b.command("seek", func(r Remote) bool { return r.SeekTo(float32(target), true) })
	return b.progressC.SetPercent(b.percent())
}

// setRate asks for rate, then reads back the rate the player actually applied.
func (b *statefulBubble) setRate(rate float32) {
	if rate == b.rate {
		return
	}

	b.command("rate", func(r Remote) bool { return r.SetPlaybackRate(rate) })
	b.remote(func(r Remote) {
		r.PlaybackRate(func(rate float32, err error) {
			if err == nil {
				b.send(rateMsg{rate})
			}
		})
	})
}

func (b *statefulBubble) percent() float64 {
	if b.duration <= 0 {
		return 0
	}
	return min(b.position/b.duration, 1)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
