// Package codec converts Go values into script-literal commands for the player document and parses its replies.
package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/ytbridge/ytbridge/constant"
)

// Remote bridge functions installed by the player document.
const (
	FnPlayVideo       = "playVideo"
	FnPauseVideo      = "pauseVideo"
	FnStopVideo       = "stopVideo"
	FnSeekTo          = "seekTo"
	FnCueVideoByID    = "cueVideoById"
	FnLoadVideoByID   = "loadVideoById"
	FnCueVideoByURL   = "cueVideoByUrl"
	FnLoadVideoByURL  = "loadVideoByUrl"
	FnCuePlaylist     = "cuePlaylist"
	FnLoadPlaylist    = "loadPlaylist"
	FnNextVideo       = "nextVideo"
	FnPreviousVideo   = "previousVideo"
	FnPlayVideoAt     = "playVideoAt"
	FnSetPlaybackRate = "setPlaybackRate"
	FnSetLoop         = "setLoop"
	FnSetShuffle      = "setShuffle"
	FnHidePlaceholder = "hidePlaceholder"
	FnQuery           = "query"
)

// Remote getters reachable through FnQuery.
const (
	GetPlaybackRate           = "getPlaybackRate"
	GetAvailablePlaybackRates = "getAvailablePlaybackRates"
	GetVideoLoadedFraction    = "getVideoLoadedFraction"
	GetPlayerState            = "getPlayerState"
	GetCurrentTime            = "getCurrentTime"
	GetDuration               = "getDuration"
	GetVideoURL               = "getVideoUrl"
	GetVideoEmbedCode         = "getVideoEmbedCode"
	GetPlaylist               = "getPlaylist"
	GetPlaylistIndex          = "getPlaylistIndex"
)

var functions = lo.SliceToMap([]string{
	FnPlayVideo, FnPauseVideo, FnStopVideo, FnSeekTo,
	FnCueVideoByID, FnLoadVideoByID, FnCueVideoByURL, FnLoadVideoByURL,
	FnCuePlaylist, FnLoadPlaylist,
	FnNextVideo, FnPreviousVideo, FnPlayVideoAt,
	FnSetPlaybackRate, FnSetLoop, FnSetShuffle,
	FnHidePlaceholder, FnQuery,
}, func(name string) (string, struct{}) { return name, struct{}{} })

var getters = lo.SliceToMap([]string{
	GetPlaybackRate, GetAvailablePlaybackRates, GetVideoLoadedFraction,
	GetPlayerState, GetCurrentTime, GetDuration, GetVideoURL,
	GetVideoEmbedCode, GetPlaylist, GetPlaylistIndex,
}, func(name string) (string, struct{}) { return name, struct{}{} })

// IsGetter reports whether name is a remote getter that may be passed to FnQuery.
func IsGetter(name string) bool {
	_, ok := getters[name]
	return ok
}

// EncodeCommand renders a call of the named bridge function with positional arguments.
//
// Arguments must be strings, bools, integer or float numbers, or a flat []string.
func EncodeCommand(name string, args ...any) (string, error) {
	if _, ok := functions[name]; !ok {
		return "", &EncodingError{Function: name, Arg: -1, Reason: "function is not part of the player bridge"}
	}

	if name == FnQuery {
		if len(args) != 2 {
			return "", &EncodingError{Function: name, Arg: -1, Reason: "query takes an id and a getter"}
		}
		if getter, ok := args[1].(string); !ok || !IsGetter(getter) {
			return "", &EncodingError{Function: name, Arg: 1, Reason: fmt.Sprintf("unknown getter %v", args[1])}
		}
	}

	literals := make([]string, len(args))
	for i, arg := range args {
		literal, err := encodeValue(arg)
		if err != nil {
			return "", &EncodingError{Function: name, Arg: i, Reason: err.Error()}
		}
		literals[i] = literal
	}

	return fmt.Sprintf("%s.%s(%s);", constant.BridgeObject, name, strings.Join(literals, ", ")), nil
}

func encodeValue(v any) (string, error) {
	switch value := v.(type) {
	case string:
		return quote(value), nil
	case bool:
		return strconv.FormatBool(value), nil
	case int:
		return strconv.FormatInt(int64(value), 10), nil
	case int32:
		return strconv.FormatInt(int64(value), 10), nil
	case int64:
		return strconv.FormatInt(value, 10), nil
	case uint:
		return strconv.FormatUint(uint64(value), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(value), 10), nil
	case uint64:
		return strconv.FormatUint(value, 10), nil
	case float32:
		return encodeFloat(float64(value), 32)
	case float64:
		return encodeFloat(value, 64)
	case []string:
		return "[" + strings.Join(lo.Map(value, func(s string, _ int) string { return quote(s) }), ", ") + "]", nil
	default:
		return "", fmt.Errorf("unsupported argument type %T", v)
	}
}

func encodeFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("non-finite number %v", f)
	}
	return strconv.FormatFloat(f, 'g', -1, bits), nil
}

// quote renders s as a JSON string literal, which is also a valid script string literal.
func quote(s string) string {
	return string(lo.Must(json.Marshal(s)))
}
