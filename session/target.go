package session

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/player"
)

// Target is what a session loads: a single video, a remote playlist or a list of videos.
type Target struct {
	VideoID    string
	PlaylistID string
	Videos     []string

	// Index is the playlist entry to start at.
	Index int

	// Start is the offset in seconds into the first video.
	Start float64

	Autoplay bool

	// Vars override the session defaults for this load.
	Vars document.Params
}

func (t Target) Validate() error {
	set := lo.Count([]bool{t.VideoID != "", t.PlaylistID != "", len(t.Videos) > 0}, true)
	switch {
	case set == 0:
		return errors.New("nothing to load: give a video id, a playlist id or videos")
	case set > 1:
		return errors.New("give only one of a video id, a playlist id or videos")
	case t.Index < 0 || len(t.Videos) > 0 && t.Index >= len(t.Videos):
		return fmt.Errorf("playlist index %d out of range", t.Index)
	case t.Start < 0:
		return fmt.Errorf("negative start %g", t.Start)
	}
	return nil
}

// Label names the target for display.
func (t Target) Label() string {
	switch {
	case t.VideoID != "":
		return t.VideoID
	case t.PlaylistID != "":
		return "playlist " + t.PlaylistID
	default:
		return fmt.Sprintf("%d videos", len(t.Videos))
	}
}

func (t Target) vars() document.Params {
	vars := document.Params{}
	if t.Autoplay {
		vars["autoplay"] = 1
	}
	if t.Start > 0 {
		vars["start"] = int(t.Start)
	}
	if t.PlaylistID != "" && t.Index > 0 {
		vars["index"] = t.Index
	}
	return vars.Merge(t.Vars)
}

// load starts a new binding for the target. A list of videos is only sent once the player is ready.
func (t Target) load(c *player.Controller) bool {
	switch {
	case t.VideoID != "":
		return c.LoadWithVideoID(t.VideoID, t.vars())
	case t.PlaylistID != "":
		return c.LoadWithPlaylistID(t.PlaylistID, t.vars())
	default:
		vars := t.vars()
		delete(vars, "start")
		return c.LoadWithParams(vars)
	}
}

// afterReady sends what could not be part of the document.
func (t Target) afterReady(c *player.Controller) bool {
	if len(t.Videos) == 0 {
		return true
	}

	playlist := player.Playlist{Videos: t.Videos, Index: t.Index, Start: float32(t.Start)}
	if t.Autoplay {
		return c.LoadPlaylist(playlist)
	}
	return c.CuePlaylist(playlist)
}
