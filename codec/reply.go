package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/ytbridge/ytbridge/event"
)

// Kind is the expected shape of a query reply.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindDouble
	KindString
	KindArray
	KindURL
	KindState
	KindQuality
)

var kindNames = [...]string{
	KindInt:     "int",
	KindFloat:   "float",
	KindDouble:  "double",
	KindString:  "string",
	KindArray:   "array",
	KindURL:     "url",
	KindState:   "state",
	KindQuality: "quality",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// DecodeReply parses a raw reply payload according to kind.
//
// The concrete result types are int, float32, float64, string, []any,
// *url.URL, event.State and event.Quality respectively.
func DecodeReply(raw string, kind Kind) (any, error) {
	fail := func(err error) (any, error) {
		return nil, &DecodingError{Kind: kind, Raw: raw, Err: err}
	}

	trimmed := strings.TrimSpace(raw)

	switch kind {
	case KindInt:
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			// Integral values may arrive in float notation, e.g. "3.0".
			f, ferr := strconv.ParseFloat(trimmed, 64)
			if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
				return fail(errors.New("not an integer"))
			}
			if f < math.MinInt || f >= -math.MinInt {
				return fail(errors.New("integer out of range"))
			}
			n = int(f)
		}
		return n, nil
	case KindFloat:
		f, err := parseFinite(trimmed, 32)
		if err != nil {
			return fail(err)
		}
		return float32(f), nil
	case KindDouble:
		f, err := parseFinite(trimmed, 64)
		if err != nil {
			return fail(err)
		}
		return f, nil
	case KindString:
		return raw, nil
	case KindArray:
		// The player document sends an absent array (null) as an empty payload.
		if trimmed == "" {
			return []any{}, nil
		}

		var values []any
		if err := json.Unmarshal([]byte(trimmed), &values); err != nil {
			return fail(fmt.Errorf("not an array: %w", err))
		}
		if values == nil {
			values = []any{}
		}
		return values, nil
	case KindURL:
		u, err := url.Parse(trimmed)
		if err != nil {
			return fail(err)
		}
		if !u.IsAbs() {
			return fail(errors.New("not an absolute url"))
		}
		return u, nil
	case KindState:
		if _, err := strconv.Atoi(trimmed); err != nil {
			return fail(errors.New("not a state code"))
		}
		return event.NormalizeState(trimmed), nil
	case KindQuality:
		if trimmed == "" {
			return fail(errors.New("empty quality token"))
		}
		return event.NormalizeQuality(trimmed), nil
	default:
		return fail(fmt.Errorf("unsupported kind %d", int(kind)))
	}
}

func parseFinite(s string, bits int) (float64, error) {
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("non-finite number")
	}
	return f, nil
}

// Strings converts a decoded array into a slice of strings.
func Strings(values []any) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, &DecodingError{Kind: KindArray, Raw: fmt.Sprint(values), Err: fmt.Errorf("element %d is %T, not a string", i, v)}
		}
		out[i] = s
	}
	return out, nil
}

// Float32s converts a decoded array into a slice of float32.
func Float32s(values []any) ([]float32, error) {
	out := make([]float32, len(values))
	for i, v := range values {
		f, ok := v.(float64)
		if !ok {
			return nil, &DecodingError{Kind: KindArray, Raw: fmt.Sprint(values), Err: fmt.Errorf("element %d is %T, not a number", i, v)}
		}
		out[i] = float32(f)
	}
	return out, nil
}
