package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/ytbridge/ytbridge/constant"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/icon"
	"github.com/ytbridge/ytbridge/key"
)

// ErrUnknownKey is returned for keys missing from Default.
var ErrUnknownKey = errors.New("unknown key")

// validators check values beyond their type. Keys without one accept any value of the right type.
var validators = map[string]func(v any) error{
	key.PlayerOrigin: func(v any) error {
		return (&document.Document{Origin: v.(string)}).Validate()
	},
	key.PlayerHost: oneOf(constant.HostGoja, constant.HostBrowser),
	key.PlayerBackground: func(v any) error {
		return (&document.Document{Origin: constant.DefaultOrigin, Background: v.(string)}).Validate()
	},
	key.PlayerTimeInterval: func(v any) error {
		if v.(int) <= 0 {
			return errors.New("must be a positive number of milliseconds")
		}
		return nil
	},
	key.PlayerVars: func(v any) error {
		vars, err := document.ParseVars(v.([]string))
		if err != nil {
			return err
		}
		return vars.Validate()
	},
	key.LogsLevel: func(v any) error {
		_, err := logrus.ParseLevel(v.(string))
		return err
	},
	key.IconsVariant: oneOf(icon.AvailableVariants()...),
}

func oneOf(choices ...string) func(v any) error {
	return func(v any) error {
		if !lo.Contains(choices, v.(string)) {
			return fmt.Errorf("must be one of %v", choices)
		}
		return nil
	}
}

// Parse converts raw command line values into the type of k's default and validates the result.
func Parse(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownKey, k)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: value is required", k)
	}

	var (
		v   any
		err error
	)

	switch field.Value.(type) {
	case string:
		v = raw[0]
	case int:
		v, err = strconv.Atoi(raw[0])
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case []string:
		v = raw
	default:
		return nil, fmt.Errorf("%s: unsupported type %s", k, field.typeName())
	}

	if err != nil {
		return nil, fmt.Errorf("%s: invalid %s value %q", k, field.typeName(), raw[0])
	}

	if validate, ok := validators[k]; ok {
		if err := validate(v); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
	}

	return v, nil
}
