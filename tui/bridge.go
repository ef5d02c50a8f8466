package tui

import (
	"net/url"

	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/player"
)

// Messages sent from the host loop into the bubbletea program.
type (
	readyMsg       struct{}
	stateMsg       struct{ state event.State }
	qualityMsg     struct{ quality event.Quality }
	playerErrorMsg struct{ kind event.ErrorKind }
	timeMsg        struct{ seconds float64 }
	durationMsg    struct{ seconds float64 }
	videoMsg       struct{ id string }
	loadedMsg      struct{ fraction float32 }
	rateMsg        struct{ rate float32 }
	ratesMsg       struct{ rates []float32 }
	refusedMsg     struct{ command string }
)

// observe registers the bubble with the remote. Callbacks run on the host loop and only send messages.
func (b *statefulBubble) observe() (cancel func()) {
	cancelled := make(chan func(), 1)
	b.options.Dispatch(func() {
		cancelled <- b.options.Remote.Observe(&player.Funcs{
			OnReady:          func() { b.send(readyMsg{}) },
			OnStateChanged:   func(s event.State) { b.send(stateMsg{s}) },
			OnQualityChanged: func(q event.Quality) { b.send(qualityMsg{q}) },
			OnError:          func(k event.ErrorKind) { b.send(playerErrorMsg{k}) },
			OnPlayTime:       func(seconds float32) { b.send(timeMsg{float64(seconds)}) },
		})
	})

	return func() {
		select {
		case stop := <-cancelled:
			b.options.Dispatch(stop)
		default:
		}
	}
}

// remote runs fn against the remote on the host loop. Dispatch must not block,
// since it is called from the bubbletea goroutine.
func (b *statefulBubble) remote(fn func(r Remote)) {
	b.options.Dispatch(func() { fn(b.options.Remote) })
}

// command issues a fire-and-forget command, reporting a synchronous refusal.
func (b *statefulBubble) command(name string, fn func(r Remote) bool) {
	b.remote(func(r Remote) {
		if !fn(r) {
			b.send(refusedMsg{name})
		}
	})
}

// refresh queries what notifications do not carry.
func (b *statefulBubble) refresh() {
	b.remote(func(r Remote) {
		r.Duration(func(seconds float64, err error) {
			if err == nil {
				b.send(durationMsg{seconds})
			}
		})
		r.VideoURL(func(u *url.URL, err error) {
			if err == nil && u != nil {
				b.send(videoMsg{u.Query().Get("v")})
			}
		})
		r.VideoLoadedFraction(func(fraction float32, err error) {
			if err == nil {
				b.send(loadedMsg{fraction})
			}
		})
		r.PlaybackRate(func(rate float32, err error) {
			if err == nil {
				b.send(rateMsg{rate})
			}
		})
	})
}

func (b *statefulBubble) fetchRates() {
	b.remote(func(r Remote) {
		r.AvailablePlaybackRates(func(rates []float32, err error) {
			if err == nil {
				b.send(ratesMsg{rates})
			}
		})
	})
}
