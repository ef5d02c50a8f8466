package player

import (
	"github.com/ytbridge/ytbridge/codec"
	"github.com/ytbridge/ytbridge/correlator"
	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/transport"
)

// handle classifies one inbound origin string as a query reply or a standing notification.
// Replies and notifications are independent streams; neither waits for the other.
func (c *Controller) handle(raw string) {
	msg, err := transport.ParseMessage(raw)
	if err != nil {
		c.logger.Debugf("ignoring message: %v", err)
		return
	}

	switch msg.Action {
	case transport.ActionReady:
		c.onReady()
	case transport.ActionStateChange:
		c.applyState(event.NormalizeState(msg.Data()))
	case transport.ActionQualityChange:
		c.applyQuality(event.NormalizeQuality(msg.Data()))
	case transport.ActionError:
		kind := event.NormalizeError(msg.Data())
		c.logger.Warnf("player error %s (code %q)", kind, msg.Data())
		c.notifyError(kind)
	case transport.ActionPlayTime:
		c.notifyPlayTime(event.NormalizeTime(msg.Data()))
	case transport.ActionReply:
		c.onReply(msg)
	case transport.ActionIframeAPIFailed:
		c.logger.Errorf("iframe api failed to load")
		c.evaluate(codec.FnHidePlaceholder)
		c.notifyError(event.ErrorUnknown)
	default:
		c.logger.Debugf("ignoring unknown action %q", msg.Action)
	}
}

func (c *Controller) onReady() {
	if c.ready {
		c.logger.Debugf("ignoring duplicate ready notification")
		return
	}

	c.ready = true
	c.evaluate(codec.FnHidePlaceholder)
	c.notifyReady()
}

func (c *Controller) onReply(msg transport.Message) {
	id, err := correlator.ParseID(msg.Params.Get("id"))
	if err != nil {
		c.logger.Debugf("ignoring reply with malformed id: %v", err)
		return
	}

	if msg.Params.Has("error") {
		c.queries.RejectRemote(id, msg.Params.Get("error"))
		return
	}

	c.queries.Resolve(id, msg.Data())
}

// applyState is idempotent: repeating the current state is not reported again.
func (c *Controller) applyState(state event.State) {
	if c.stateReported && state == c.state {
		return
	}

	c.stateReported = true
	c.state = state
	c.notifyState(state)
}

func (c *Controller) applyQuality(quality event.Quality) {
	if c.qualityReported && quality == c.quality {
		return
	}

	c.qualityReported = true
	c.quality = quality
	c.notifyQuality(quality)
}
