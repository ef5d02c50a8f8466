package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/ytbridge/ytbridge/filesystem"
	"gopkg.in/yaml.v3"
)

// Params maps player parameter names to string, number or boolean values.
// See https://developers.google.com/youtube/player_parameters for the accepted names.
type Params map[string]any

// Validate checks that every value is a scalar. Names and values are not checked against the remote API.
func (p Params) Validate() error {
	for name, value := range p {
		if name == "" {
			return fmt.Errorf("player parameter with empty name")
		}

		switch v := value.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64:
		case float32:
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return fmt.Errorf("player parameter %s: non-finite number", name)
			}
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("player parameter %s: non-finite number", name)
			}
		default:
			return fmt.Errorf("player parameter %s: unsupported value of type %T", name, value)
		}
	}

	return nil
}

// Merge returns a copy of p overridden by other.
func (p Params) Merge(other Params) Params {
	merged := lo.Assign(p, other)
	if merged == nil {
		merged = make(Params)
	}
	return merged
}

// ParseVars parses name=value pairs. Values that look like integers, floats or
// booleans are converted, everything else is kept as a string.
func ParseVars(pairs []string) (Params, error) {
	params := make(Params, len(pairs))

	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid player parameter %q, expected name=value", pair)
		}

		params[name] = parseScalar(strings.TrimSpace(value))
	}

	return params, nil
}

func parseScalar(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}

	if b, err := strconv.ParseBool(value); err == nil && (value == "true" || value == "false") {
		return b
	}

	return value
}

// LoadVars reads player parameters from a YAML mapping file.
func LoadVars(path string) (Params, error) {
	contents, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read player parameters: %w", err)
	}

	var params Params
	if err := yaml.Unmarshal(contents, &params); err != nil {
		return nil, fmt.Errorf("parse player parameters %s: %w", path, err)
	}

	if params == nil {
		params = make(Params)
	}

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return params, nil
}
