package player

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/log"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func validID(id string) bool {
	return idPattern.MatchString(id)
}

// LoadWithVideoID binds a fresh player created with a single video.
// It returns false when the id or vars are malformed or the host cannot be started.
// Remote failures, such as an unknown video, arrive later as error notifications.
func (c *Controller) LoadWithVideoID(videoID string, vars document.Params) bool {
	if !validID(videoID) {
		log.Warnf("rejecting load: malformed video id %q", videoID)
		return false
	}
	return c.load(videoID, vars)
}

// LoadWithPlaylistID binds a fresh player created with a playlist.
func (c *Controller) LoadWithPlaylistID(playlistID string, vars document.Params) bool {
	if !validID(playlistID) {
		log.Warnf("rejecting load: malformed playlist id %q", playlistID)
		return false
	}
	return c.load("", vars.Merge(document.Params{
		"list":     playlistID,
		"listType": "playlist",
	}))
}

// LoadWithParams binds a fresh player created only from player parameters.
func (c *Controller) LoadWithParams(params document.Params) bool {
	return c.load("", params)
}

func (c *Controller) load(videoID string, vars document.Params) bool {
	doc := &document.Document{
		Origin:       c.options.Origin,
		Background:   c.background(),
		Placeholder:  c.placeholder(),
		VideoID:      videoID,
		Vars:         c.options.Vars.Merge(vars),
		TimeInterval: c.options.TimeInterval,
	}

	if err := doc.Validate(); err != nil {
		log.Warnf("rejecting load: %v", err)
		return false
	}

	_ = c.unbind("reloaded")

	channel, err := c.factory(doc, c.dispatch)
	if err != nil {
		log.Errorf("starting script host: %v", err)
		return false
	}

	binding := uuid.NewString()
	c.channel = channel
	c.binding = binding
	c.logger = log.WithField("binding", binding)

	channel.OnMessage(func(raw string) {
		if c.binding != binding {
			log.WithField("binding", binding).Debugf("dropping message from stale binding: %s", raw)
			return
		}
		c.handle(raw)
	})

	c.logger.Infof("loaded player document at %s", doc.URL())
	return true
}
