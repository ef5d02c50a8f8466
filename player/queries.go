package player

import (
	"fmt"
	"net/url"

	"github.com/ytbridge/ytbridge/codec"
	"github.com/ytbridge/ytbridge/correlator"
	"github.com/ytbridge/ytbridge/event"
)

// Queries never block. The completion runs later on the host loop with either
// the decoded value or an error, exactly once. A nil completion makes the call a no-op.
// The bridge applies no timeout; a query without a reply stays pending until the binding is replaced.

func (c *Controller) query(getter string, kind codec.Kind, done correlator.Completion) {
	if !c.Ready() {
		c.dispatch(func() { done(nil, ErrNotReady) })
		return
	}

	id := c.queries.Issue(kind, done)

	cmd, err := codec.EncodeCommand(codec.FnQuery, uint64(id), getter)
	if err == nil {
		err = c.channel.Evaluate(cmd)
	}
	if err != nil {
		c.logger.Errorf("query %s: %v", getter, err)
		c.dispatch(func() { c.queries.Reject(id, err) })
	}
}

func typed[T any](done func(T, error)) correlator.Completion {
	return func(value any, err error) {
		var zero T
		if err != nil {
			done(zero, err)
			return
		}

		v, ok := value.(T)
		if !ok {
			done(zero, fmt.Errorf("unexpected reply type %T", value))
			return
		}
		done(v, nil)
	}
}

func (c *Controller) PlaybackRate(done func(rate float32, err error)) {
	if done != nil {
		c.query(codec.GetPlaybackRate, codec.KindFloat, typed(done))
	}
}

// AvailablePlaybackRates completes with the rates the current video supports, in ascending order.
func (c *Controller) AvailablePlaybackRates(done func(rates []float32, err error)) {
	if done == nil {
		return
	}
	c.query(codec.GetAvailablePlaybackRates, codec.KindArray, typed(func(values []any, err error) {
		if err != nil {
			done(nil, err)
			return
		}
		done(codec.Float32s(values))
	}))
}

// VideoLoadedFraction completes with the buffered share of the video between 0 and 1.
func (c *Controller) VideoLoadedFraction(done func(fraction float32, err error)) {
	if done != nil {
		c.query(codec.GetVideoLoadedFraction, codec.KindFloat, typed(done))
	}
}

// PlayerState asks the remote player for its state. It does not change State().
func (c *Controller) PlayerState(done func(state event.State, err error)) {
	if done != nil {
		c.query(codec.GetPlayerState, codec.KindState, typed(done))
	}
}

func (c *Controller) CurrentTime(done func(seconds float32, err error)) {
	if done != nil {
		c.query(codec.GetCurrentTime, codec.KindFloat, typed(done))
	}
}

// Duration completes with the video length in seconds. It may be 0 until metadata has loaded.
func (c *Controller) Duration(done func(seconds float64, err error)) {
	if done != nil {
		c.query(codec.GetDuration, codec.KindDouble, typed(done))
	}
}

func (c *Controller) VideoURL(done func(u *url.URL, err error)) {
	if done != nil {
		c.query(codec.GetVideoURL, codec.KindURL, typed(done))
	}
}

func (c *Controller) VideoEmbedCode(done func(html string, err error)) {
	if done != nil {
		c.query(codec.GetVideoEmbedCode, codec.KindString, typed(done))
	}
}

// Playlist completes with the video ids of the current playlist, in playlist order.
func (c *Controller) Playlist(done func(videoIDs []string, err error)) {
	if done == nil {
		return
	}
	c.query(codec.GetPlaylist, codec.KindArray, typed(func(values []any, err error) {
		if err != nil {
			done(nil, err)
			return
		}
		done(codec.Strings(values))
	}))
}

func (c *Controller) PlaylistIndex(done func(index int, err error)) {
	if done != nil {
		c.query(codec.GetPlaylistIndex, codec.KindInt, typed(done))
	}
}
