// Package inline implements the non-interactive modes: probing a player and watching its events.
package inline

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/player"
	"github.com/ytbridge/ytbridge/session"
)

// settle is how long a probe waits for the first state report after readiness.
const settle = 2 * time.Second

// Probe loads target, waits for the player to settle and answers every query.
func Probe(ctx context.Context, s *session.Session, target session.Target) (*Report, error) {
	report := &Report{
		Target:   target.Label(),
		Failures: make(map[string]string),
	}
	stated := make(chan struct{}, 1)

	var cancel func()
	err := s.Do(ctx, func(*player.Controller) {
		cancel = s.Subscribe(&player.Funcs{
			OnError: func(kind event.ErrorKind) {
				report.Errors = append(report.Errors, kind.String())
			},
			OnStateChanged: func(event.State) {
				select {
				case stated <- struct{}{}:
				default:
				}
			},
		})
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.Do(context.Background(), func(*player.Controller) { cancel() })
	}()

	if err := s.Load(ctx, target); err != nil {
		return nil, err
	}

	select {
	case <-stated:
	case <-time.After(settle):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	answered := make(chan struct{})
	err = s.Do(ctx, func(c *player.Controller) {
		report.Binding = c.BindingID()
		report.State = c.State().String()
		report.Quality = c.Quality().String()
		ask(c, report, func() { close(answered) })
	})
	if err != nil {
		return nil, err
	}

	select {
	case <-answered:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for replies: %w", ctx.Err())
	}

	if len(report.Failures) == 0 {
		report.Failures = nil
	}
	return report, nil
}

// ask issues every query. Completions run on the host loop, so report needs no locking;
// done is called after the last one.
func ask(c *player.Controller, report *Report, done func()) {
	remaining := 10
	complete := func(name string, err error) {
		if err != nil {
			report.Failures[name] = err.Error()
		}
		if remaining--; remaining == 0 {
			done()
		}
	}

	c.Duration(func(v float64, err error) { report.Duration = v; complete("duration", err) })
	c.CurrentTime(func(v float32, err error) { report.CurrentTime = v; complete("current_time", err) })
	c.VideoLoadedFraction(func(v float32, err error) { report.LoadedFraction = v; complete("loaded_fraction", err) })
	c.PlaybackRate(func(v float32, err error) { report.PlaybackRate = v; complete("playback_rate", err) })
	c.AvailablePlaybackRates(func(v []float32, err error) {
		report.AvailablePlaybackRates = v
		complete("available_playback_rates", err)
	})
	c.VideoURL(func(v *url.URL, err error) {
		if v != nil {
			report.VideoURL = v.String()
		}
		complete("video_url", err)
	})
	c.VideoEmbedCode(func(v string, err error) { report.EmbedCode = v; complete("embed_code", err) })
	c.Playlist(func(v []string, err error) { report.Playlist = v; complete("playlist", err) })
	c.PlaylistIndex(func(v int, err error) { report.PlaylistIndex = v; complete("playlist_index", err) })
	c.PlayerState(func(v event.State, err error) {
		if err == nil {
			report.State = v.String()
		}
		complete("player_state", err)
	})
}
