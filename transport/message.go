package transport

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ytbridge/ytbridge/constant"
)

// Actions emitted by the player document.
const (
	ActionReady           = "onReady"
	ActionStateChange     = "onStateChange"
	ActionQualityChange   = "onPlaybackQualityChange"
	ActionError           = "onError"
	ActionPlayTime        = "onPlayTime"
	ActionReply           = "onReply"
	ActionIframeAPIFailed = "onYouTubeIframeAPIFailedToLoad"
)

// Message is a parsed origin string.
type Message struct {
	Action string
	Params url.Values
}

// Data returns the bare notification payload.
func (m Message) Data() string {
	return m.Params.Get("data")
}

// ParseMessage parses an origin string of the form ytplayer://<action>?k=v.
// Origins with any other scheme are foreign navigations and are rejected.
func ParseMessage(raw string) (Message, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Message{}, fmt.Errorf("parse message: %w", err)
	}

	if !strings.EqualFold(u.Scheme, constant.MessageScheme) {
		return Message{}, fmt.Errorf("parse message: foreign scheme %q", u.Scheme)
	}

	// ytplayer://onReady parses with the action as host, ytplayer:onReady as opaque.
	action := u.Host
	if action == "" {
		action = strings.TrimPrefix(u.Opaque, "//")
	}
	if action == "" {
		return Message{}, fmt.Errorf("parse message: missing action in %q", raw)
	}

	params, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return Message{}, fmt.Errorf("parse message: %w", err)
	}

	return Message{Action: action, Params: params}, nil
}
