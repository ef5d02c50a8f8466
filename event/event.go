// Package event maps the raw notification codes emitted by the remote player onto typed playback enumerations.
//
// Every normalizer is total: codes the remote API may introduce later map to
// the Unknown member of the enumeration instead of failing.
package event

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/ytbridge/ytbridge/log"
)

// State is the playback state last reported by the remote player.
type State int

const (
	StateUnstarted State = iota
	StateEnded
	StatePlaying
	StatePaused
	StateBuffering
	StateCued
	StateUnknown
)

var stateCodes = map[string]State{
	"-1": StateUnstarted,
	"0":  StateEnded,
	"1":  StatePlaying,
	"2":  StatePaused,
	"3":  StateBuffering,
	"5":  StateCued,
}

var stateNames = [...]string{
	StateUnstarted: "unstarted",
	StateEnded:     "ended",
	StatePlaying:   "playing",
	StatePaused:    "paused",
	StateBuffering: "buffering",
	StateCued:      "cued",
	StateUnknown:   "unknown",
}

// NormalizeState converts a wire state code into a State.
func NormalizeState(code string) State {
	if s, ok := stateCodes[strings.TrimSpace(code)]; ok {
		return s
	}
	return StateUnknown
}

// Code returns the wire code of the state, or an empty string for StateUnknown.
func (s State) Code() string {
	for code, state := range stateCodes {
		if state == s {
			return code
		}
	}
	return ""
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return stateNames[StateUnknown]
	}
	return stateNames[s]
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Quality is the playback resolution last reported by the remote player.
type Quality int

const (
	QualitySmall Quality = iota
	QualityMedium
	QualityLarge
	QualityHD720
	QualityHD1080
	QualityHighRes
	// QualityAuto is reported for live events.
	QualityAuto
	QualityDefault
	QualityUnknown
)

var qualityNames = [...]string{
	QualitySmall:   "small",
	QualityMedium:  "medium",
	QualityLarge:   "large",
	QualityHD720:   "hd720",
	QualityHD1080:  "hd1080",
	QualityHighRes: "highres",
	QualityAuto:    "auto",
	QualityDefault: "default",
	QualityUnknown: "unknown",
}

// NormalizeQuality converts a wire quality token into a Quality.
func NormalizeQuality(code string) Quality {
	code = strings.ToLower(strings.TrimSpace(code))
	for q, name := range qualityNames {
		if Quality(q) != QualityUnknown && name == code {
			return Quality(q)
		}
	}
	return QualityUnknown
}

// Code returns the wire token of the quality, or an empty string for QualityUnknown.
func (q Quality) Code() string {
	if q == QualityUnknown {
		return ""
	}
	return q.String()
}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return qualityNames[QualityUnknown]
	}
	return qualityNames[q]
}

func (q Quality) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.String())
}

// ErrorKind is a playback error reported by the remote player.
type ErrorKind int

const (
	ErrorInvalidParam ErrorKind = iota
	ErrorHTML5
	// ErrorVideoNotFound covers the remote codes 100 and 105.
	ErrorVideoNotFound
	// ErrorNotEmbeddable covers the remote codes 101 and 150.
	ErrorNotEmbeddable
	ErrorUnknown
)

// Codes 100/105 and 101/150 are functionally equivalent on the remote side
// and are collapsed on purpose; callers rely on the coarse taxonomy.
var errorCodes = map[string]ErrorKind{
	"2":   ErrorInvalidParam,
	"5":   ErrorHTML5,
	"100": ErrorVideoNotFound,
	"105": ErrorVideoNotFound,
	"101": ErrorNotEmbeddable,
	"150": ErrorNotEmbeddable,
}

var errorNames = [...]string{
	ErrorInvalidParam:  "invalid_param",
	ErrorHTML5:         "html5_error",
	ErrorVideoNotFound: "video_not_found",
	ErrorNotEmbeddable: "not_embeddable",
	ErrorUnknown:       "unknown",
}

// NormalizeError converts a wire error code into an ErrorKind.
func NormalizeError(code string) ErrorKind {
	if k, ok := errorCodes[strings.TrimSpace(code)]; ok {
		return k
	}
	return ErrorUnknown
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorNames) {
		return errorNames[ErrorUnknown]
	}
	return errorNames[k]
}

func (k ErrorKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// NormalizeTime parses a playback time notification in seconds.
// Malformed values are logged and reported as 0 so that periodic telemetry never interrupts the lifecycle.
func NormalizeTime(raw string) float32 {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		log.Warnf("malformed playback time %q, reporting 0", raw)
		return 0
	}
	return float32(seconds)
}
