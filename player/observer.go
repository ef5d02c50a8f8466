package player

import (
	"github.com/samber/mo"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/event"
)

// Observer receives player notifications on the host loop.
// It may implement any subset of the capability interfaces below; the rest default.
type Observer any

// ReadyObserver is told once per binding that the player accepts commands.
type ReadyObserver interface {
	Ready()
}

type StateObserver interface {
	StateChanged(state event.State)
}

type QualityObserver interface {
	QualityChanged(quality event.Quality)
}

// ErrorObserver receives playback errors reported by the remote player.
// Errors never fail pending queries and never change the state.
type ErrorObserver interface {
	Error(kind event.ErrorKind)
}

// TimeObserver receives the periodic playback time while playing.
type TimeObserver interface {
	PlayTime(seconds float32)
}

// BackgroundProvider picks the color painted before the remote document renders.
// Defaults to document.DefaultBackground.
type BackgroundProvider interface {
	BackgroundColor() string
}

// PlaceholderProvider supplies HTML shown until the player is ready. Defaults to none.
type PlaceholderProvider interface {
	Placeholder() mo.Option[string]
}

// Funcs implements every capability with optional function fields.
type Funcs struct {
	OnReady          func()
	OnStateChanged   func(event.State)
	OnQualityChanged func(event.Quality)
	OnError          func(event.ErrorKind)
	OnPlayTime       func(float32)
	Background       string
	PlaceholderHTML  mo.Option[string]
}

func (f *Funcs) Ready() {
	if f.OnReady != nil {
		f.OnReady()
	}
}

func (f *Funcs) StateChanged(state event.State) {
	if f.OnStateChanged != nil {
		f.OnStateChanged(state)
	}
}

func (f *Funcs) QualityChanged(quality event.Quality) {
	if f.OnQualityChanged != nil {
		f.OnQualityChanged(quality)
	}
}

func (f *Funcs) Error(kind event.ErrorKind) {
	if f.OnError != nil {
		f.OnError(kind)
	}
}

func (f *Funcs) PlayTime(seconds float32) {
	if f.OnPlayTime != nil {
		f.OnPlayTime(seconds)
	}
}

func (f *Funcs) BackgroundColor() string {
	if f.Background == "" {
		return document.DefaultBackground
	}
	return f.Background
}

func (f *Funcs) Placeholder() mo.Option[string] {
	return f.PlaceholderHTML
}

// slot is a non-owning observer registration. Cancelling empties it.
type slot struct {
	observer Observer
}

// Observe registers o, replacing any previous observer, and returns a function that removes it.
// Nothing is delivered after the returned function is called.
func (c *Controller) Observe(o Observer) (cancel func()) {
	s := &slot{observer: o}
	c.slot = s

	return func() {
		s.observer = nil
		if c.slot == s {
			c.slot = nil
		}
	}
}

func (c *Controller) observer() Observer {
	if c.slot == nil {
		return nil
	}
	return c.slot.observer
}

func (c *Controller) background() string {
	if p, ok := c.observer().(BackgroundProvider); ok {
		if color := p.BackgroundColor(); color != "" {
			return color
		}
	}
	return document.DefaultBackground
}

func (c *Controller) placeholder() mo.Option[string] {
	if p, ok := c.observer().(PlaceholderProvider); ok {
		return p.Placeholder()
	}
	return mo.None[string]()
}

func (c *Controller) notifyReady() {
	if o, ok := c.observer().(ReadyObserver); ok {
		o.Ready()
	}
}

func (c *Controller) notifyState(state event.State) {
	if o, ok := c.observer().(StateObserver); ok {
		o.StateChanged(state)
	}
}

func (c *Controller) notifyQuality(quality event.Quality) {
	if o, ok := c.observer().(QualityObserver); ok {
		o.QualityChanged(quality)
	}
}

func (c *Controller) notifyError(kind event.ErrorKind) {
	if o, ok := c.observer().(ErrorObserver); ok {
		o.Error(kind)
	}
}

func (c *Controller) notifyPlayTime(seconds float32) {
	if o, ok := c.observer().(TimeObserver); ok {
		o.PlayTime(seconds)
	}
}
