package session

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/player"
	"golang.org/x/exp/slices"
)

// fanout occupies the controller's observer slot and forwards to every subscriber
// in subscription order. Only touched on the host loop.
type fanout struct {
	background  string
	subscribers map[int]player.Observer
	next        int
}

func newFanout(background string) *fanout {
	return &fanout{
		background:  background,
		subscribers: make(map[int]player.Observer),
	}
}

func (f *fanout) subscribe(o player.Observer) (cancel func()) {
	id := f.next
	f.next++
	f.subscribers[id] = o
	return func() { delete(f.subscribers, id) }
}

func (f *fanout) each(fn func(o player.Observer)) {
	ids := lo.Keys(f.subscribers)
	slices.Sort(ids)
	for _, id := range ids {
		// an earlier subscriber may have cancelled this one
		if o, ok := f.subscribers[id]; ok {
			fn(o)
		}
	}
}

func (f *fanout) Ready() {
	f.each(func(o player.Observer) {
		if r, ok := o.(player.ReadyObserver); ok {
			r.Ready()
		}
	})
}

func (f *fanout) StateChanged(state event.State) {
	f.each(func(o player.Observer) {
		if s, ok := o.(player.StateObserver); ok {
			s.StateChanged(state)
		}
	})
}

func (f *fanout) QualityChanged(quality event.Quality) {
	f.each(func(o player.Observer) {
		if q, ok := o.(player.QualityObserver); ok {
			q.QualityChanged(quality)
		}
	})
}

func (f *fanout) Error(kind event.ErrorKind) {
	f.each(func(o player.Observer) {
		if e, ok := o.(player.ErrorObserver); ok {
			e.Error(kind)
		}
	})
}

func (f *fanout) PlayTime(seconds float32) {
	f.each(func(o player.Observer) {
		if t, ok := o.(player.TimeObserver); ok {
			t.PlayTime(seconds)
		}
	})
}

func (f *fanout) BackgroundColor() string {
	return f.background
}

func (f *fanout) Placeholder() mo.Option[string] {
	return mo.None[string]()
}
