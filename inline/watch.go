package inline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/player"
	"github.com/ytbridge/ytbridge/session"
)

// Progress is where a watched player stopped.
type Progress struct {
	VideoID  string
	Position float64
	Duration float64
}

type WatchOptions struct {
	JSON bool

	// UntilEnded stops watching once the player reports the ended state.
	UntilEnded bool
}

// watcher runs on the host loop; progress is read by Watch after it unsubscribed.
type watcher struct {
	c       *player.Controller
	out     io.Writer
	options WatchOptions

	mu       sync.Mutex
	progress Progress
	ended    chan struct{}
	once     sync.Once
}

// Watch prints player events to out until ctx ends or, optionally, playback ends.
// The player must already be loaded.
func Watch(ctx context.Context, s *session.Session, out io.Writer, options WatchOptions) (*Progress, error) {
	w := &watcher{out: out, options: options, ended: make(chan struct{})}

	var cancel func()
	err := s.Do(ctx, func(c *player.Controller) {
		w.c = c
		cancel = s.Subscribe(w)
		w.refresh()
	})
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
	case <-w.ended:
	}

	_ = s.Do(context.Background(), func(*player.Controller) { cancel() })

	w.mu.Lock()
	defer w.mu.Unlock()
	progress := w.progress
	return &progress, nil
}

func (w *watcher) emit(kind string, value any) {
	if w.options.JSON {
		_ = json.NewEncoder(w.out).Encode(Event{Type: kind, Value: value})
		return
	}

	if value == nil {
		fmt.Fprintln(w.out, kind)
		return
	}
	fmt.Fprintf(w.out, "%s %v\n", kind, value)
}

// refresh asks for what notifications do not carry.
func (w *watcher) refresh() {
	w.c.VideoURL(func(u *url.URL, err error) {
		if err != nil || u == nil {
			return
		}
		if id := u.Query().Get("v"); id != "" {
			w.mu.Lock()
			if id != w.progress.VideoID {
				w.progress = Progress{VideoID: id}
			}
			w.mu.Unlock()
		}
	})
	w.c.Duration(func(seconds float64, err error) {
		if err == nil && seconds > 0 {
			w.mu.Lock()
			w.progress.Duration = seconds
			w.mu.Unlock()
		}
	})
}

func (w *watcher) Ready() {
	w.emit("ready", nil)
}

func (w *watcher) StateChanged(state event.State) {
	w.emit("state", state.String())

	switch state {
	case event.StatePlaying, event.StateCued:
		w.refresh()
	case event.StateEnded:
		if w.options.UntilEnded {
			w.once.Do(func() { close(w.ended) })
		}
	}
}

func (w *watcher) QualityChanged(quality event.Quality) {
	w.emit("quality", quality.String())
}

func (w *watcher) Error(kind event.ErrorKind) {
	w.emit("error", kind.String())
}

func (w *watcher) PlayTime(seconds float32) {
	w.mu.Lock()
	w.progress.Position = float64(seconds)
	w.mu.Unlock()

	w.emit("time", seconds)
}
