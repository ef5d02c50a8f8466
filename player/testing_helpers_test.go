package player

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/transport"
)

// fakeChannel records evaluated commands and lets tests emit messages as the remote document would.
type fakeChannel struct {
	doc      *document.Document
	dispatch transport.Dispatch
	handler  func(raw string)
	commands []string
	closed   bool
	refuse   bool
}

func (f *fakeChannel) Evaluate(command string) error {
	if f.closed || f.refuse {
		return &transport.Error{Op: "evaluate", Err: errors.New("fake host refused")}
	}
	f.commands = append(f.commands, command)
	return nil
}

func (f *fakeChannel) OnMessage(handler func(raw string)) {
	f.handler = handler
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func (f *fakeChannel) emit(action string, params url.Values) {
	raw := "ytplayer://" + action
	if len(params) > 0 {
		raw += "?" + params.Encode()
	}
	f.dispatch(func() { f.handler(raw) })
}

func (f *fakeChannel) notify(action, data string) {
	f.emit(action, url.Values{"data": {data}})
}

func (f *fakeChannel) reply(id uint64, data string) {
	f.emit(transport.ActionReply, url.Values{"id": {fmt.Sprint(id)}, "data": {data}})
}

func (f *fakeChannel) last() string {
	if len(f.commands) == 0 {
		return ""
	}
	return f.commands[len(f.commands)-1]
}

// fakeHost builds fake channels and remembers every one of them.
type fakeHost struct {
	channels []*fakeChannel
	fail     error
}

func (h *fakeHost) factory(doc *document.Document, dispatch transport.Dispatch) (transport.Channel, error) {
	if h.fail != nil {
		return nil, h.fail
	}
	ch := &fakeChannel{doc: doc, dispatch: dispatch}
	h.channels = append(h.channels, ch)
	return ch, nil
}

func (h *fakeHost) current() *fakeChannel {
	return h.channels[len(h.channels)-1]
}

func syncDispatch(fn func()) {
	fn()
}

// recorder collects observer callbacks in arrival order.
type recorder struct {
	ready     int
	states    []event.State
	qualities []event.Quality
	errors    []event.ErrorKind
	times     []float32
}

func (r *recorder) Ready()                         { r.ready++ }
func (r *recorder) StateChanged(s event.State)     { r.states = append(r.states, s) }
func (r *recorder) QualityChanged(q event.Quality) { r.qualities = append(r.qualities, q) }
func (r *recorder) Error(kind event.ErrorKind)     { r.errors = append(r.errors, kind) }
func (r *recorder) PlayTime(seconds float32)       { r.times = append(r.times, seconds) }

// newReadyController returns a controller bound to a fake channel that has reported readiness.
func newReadyController() (*Controller, *fakeHost, *recorder) {
	host := &fakeHost{}
	c := New(host.factory, syncDispatch, Options{})
	rec := &recorder{}
	c.Observe(rec)

	if !c.LoadWithVideoID("M7lc1UVf-VE", nil) {
		panic("load failed")
	}
	host.current().emit(transport.ActionReady, nil)
	return c, host, rec
}
