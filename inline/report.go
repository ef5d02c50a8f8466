package inline

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// Report is everything a probe learns about a loaded player.
type Report struct {
	// Target names what was loaded.
	Target string `json:"target"`
	// Binding identifies the channel binding the answers came from.
	Binding string `json:"binding"`

	State   string   `json:"state" jsonschema:"enum=unstarted,enum=ended,enum=playing,enum=paused,enum=buffering,enum=cued,enum=unknown"`
	Quality string   `json:"quality"`
	Errors  []string `json:"errors,omitempty"`

	Duration               float64   `json:"duration"`
	CurrentTime            float32   `json:"current_time"`
	LoadedFraction         float32   `json:"loaded_fraction"`
	PlaybackRate           float32   `json:"playback_rate"`
	AvailablePlaybackRates []float32 `json:"available_playback_rates"`
	VideoURL               string    `json:"video_url,omitempty"`
	EmbedCode              string    `json:"embed_code,omitempty"`
	Playlist               []string  `json:"playlist,omitempty"`
	PlaylistIndex          int       `json:"playlist_index"`

	// Failures maps each query that failed to its error.
	Failures map[string]string `json:"failures,omitempty"`
}

// Event is one line of watch output.
type Event struct {
	Type  string `json:"type" jsonschema:"enum=ready,enum=state,enum=quality,enum=error,enum=time"`
	Value any    `json:"value,omitempty"`
}

// Schema returns the JSON schema of the report, or of watch events.
func Schema(events bool) *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return "inline." + t.Name()
	}

	if events {
		return reflector.Reflect(&Event{})
	}
	return reflector.Reflect(&Report{})
}
