package player

import (
	"fmt"
	"math"
	"net/url"

	"github.com/samber/mo"
	"github.com/ytbridge/ytbridge/codec"
)

// Fire-and-forget commands return false only when the command could not be sent:
// the player is not ready, an argument is malformed or the host refused it.
// Their effect is observed later through state notifications.

func (c *Controller) command(name string, args ...any) bool {
	if !c.Ready() {
		c.logger.Warnf("%s: %v", name, ErrNotReady)
		return false
	}
	return c.evaluate(name, args...)
}

func (c *Controller) evaluate(name string, args ...any) bool {
	if c.channel == nil {
		return false
	}

	cmd, err := codec.EncodeCommand(name, args...)
	if err != nil {
		c.logger.Warnf("%v", err)
		return false
	}

	if err := c.channel.Evaluate(cmd); err != nil {
		c.logger.Errorf("%s: %v", name, err)
		return false
	}

	c.logger.Debugf("evaluated %s", cmd)
	return true
}

// PlayVideo starts or resumes playback.
func (c *Controller) PlayVideo() bool {
	return c.command(codec.FnPlayVideo)
}

func (c *Controller) PauseVideo() bool {
	return c.command(codec.FnPauseVideo)
}

func (c *Controller) StopVideo() bool {
	return c.command(codec.FnStopVideo)
}

// SeekTo moves playback to seconds. With allowSeekAhead the player may fetch unbuffered data.
func (c *Controller) SeekTo(seconds float32, allowSeekAhead bool) bool {
	if !validTime(seconds) {
		return false
	}
	return c.command(codec.FnSeekTo, seconds, allowSeekAhead)
}

// CueVideoByID loads the video without starting playback.
func (c *Controller) CueVideoByID(videoID string, start float32, end mo.Option[float32]) bool {
	args, ok := videoArgs(videoID, validID(videoID), start, end)
	return ok && c.command(codec.FnCueVideoByID, args...)
}

// LoadVideoByID loads the video and starts playback.
func (c *Controller) LoadVideoByID(videoID string, start float32, end mo.Option[float32]) bool {
	args, ok := videoArgs(videoID, validID(videoID), start, end)
	return ok && c.command(codec.FnLoadVideoByID, args...)
}

// CueVideoByURL cues a video given its full watch or embed URL.
func (c *Controller) CueVideoByURL(videoURL string, start float32, end mo.Option[float32]) bool {
	args, ok := videoArgs(videoURL, validURL(videoURL), start, end)
	return ok && c.command(codec.FnCueVideoByURL, args...)
}

func (c *Controller) LoadVideoByURL(videoURL string, start float32, end mo.Option[float32]) bool {
	args, ok := videoArgs(videoURL, validURL(videoURL), start, end)
	return ok && c.command(codec.FnLoadVideoByURL, args...)
}

// CuePlaylist cues the playlist at its start index without starting playback.
func (c *Controller) CuePlaylist(playlist Playlist) bool {
	args, err := playlist.args()
	if err != nil {
		c.logger.Warnf("cue playlist: %v", err)
		return false
	}
	return c.command(codec.FnCuePlaylist, args...)
}

// LoadPlaylist loads the playlist and starts playing at its start index.
func (c *Controller) LoadPlaylist(playlist Playlist) bool {
	args, err := playlist.args()
	if err != nil {
		c.logger.Warnf("load playlist: %v", err)
		return false
	}
	return c.command(codec.FnLoadPlaylist, args...)
}

func (c *Controller) NextVideo() bool {
	return c.command(codec.FnNextVideo)
}

func (c *Controller) PreviousVideo() bool {
	return c.command(codec.FnPreviousVideo)
}

// PlayVideoAt plays the playlist entry at the zero-based index.
func (c *Controller) PlayVideoAt(index int) bool {
	if index < 0 {
		return false
	}
	return c.command(codec.FnPlayVideoAt, index)
}

// SetPlaybackRate suggests a rate. The player may round it to one of AvailablePlaybackRates.
func (c *Controller) SetPlaybackRate(rate float32) bool {
	if !validTime(rate) || rate == 0 {
		return false
	}
	return c.command(codec.FnSetPlaybackRate, rate)
}

// SetLoop makes the playlist restart after its last video.
func (c *Controller) SetLoop(loop bool) bool {
	return c.command(codec.FnSetLoop, loop)
}

func (c *Controller) SetShuffle(shuffle bool) bool {
	return c.command(codec.FnSetShuffle, shuffle)
}

func validTime(seconds float32) bool {
	f := float64(seconds)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func videoArgs(target string, valid bool, start float32, end mo.Option[float32]) ([]any, bool) {
	if !valid || !validTime(start) {
		return nil, false
	}

	args := []any{target, start}
	if e, ok := end.Get(); ok {
		if !validTime(e) || e <= start {
			return nil, false
		}
		args = append(args, e)
	}
	return args, true
}

// Playlist references either a remote playlist by id or an ad hoc list of videos.
type Playlist struct {
	ID     string
	Videos []string

	// Index is the zero-based entry playback starts from.
	Index int

	// Start is the offset in seconds into the first played video.
	Start float32
}

func (p Playlist) args() ([]any, error) {
	if p.Index < 0 {
		return nil, fmt.Errorf("negative playlist index %d", p.Index)
	}
	if !validTime(p.Start) {
		return nil, fmt.Errorf("invalid start %v", p.Start)
	}

	switch {
	case p.ID != "" && len(p.Videos) > 0:
		return nil, fmt.Errorf("playlist has both an id and videos")
	case p.ID != "":
		if !validID(p.ID) {
			return nil, fmt.Errorf("malformed playlist id %q", p.ID)
		}
		return []any{p.ID, p.Index, p.Start}, nil
	case len(p.Videos) > 0:
		for _, id := range p.Videos {
			if !validID(id) {
				return nil, fmt.Errorf("malformed video id %q", id)
			}
		}
		if p.Index >= len(p.Videos) {
			return nil, fmt.Errorf("index %d out of range for %d videos", p.Index, len(p.Videos))
		}
		videos := make([]string, len(p.Videos))
		copy(videos, p.Videos)
		return []any{videos, p.Index, p.Start}, nil
	default:
		return nil, fmt.Errorf("empty playlist")
	}
}
