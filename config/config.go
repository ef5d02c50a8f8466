// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/ytbridge/ytbridge/constant"
	"github.com/ytbridge/ytbridge/filesystem"
	"github.com/ytbridge/ytbridge/where"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	// Synchronize environment variable bindings.
	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	// Initialize factory default values.
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// Path is the location of the config file.
func Path() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// Set validates raw for k, applies it and persists the config file.
// It returns the previous and the stored value.
func Set(k string, raw []string) (previous, value any, err error) {
	value, err = Parse(k, raw)
	if err != nil {
		return nil, nil, err
	}

	previous = viper.Get(k)
	viper.Set(k, value)
	return previous, value, Write()
}

// Restore restores the given keys, or every key when none are given, and persists the config file.
func Restore(keys ...string) error {
	if len(keys) == 0 {
		for k, field := range Default {
			viper.Set(k, field.Value)
		}
		return Write()
	}

	for _, k := range keys {
		field, ok := Default[k]
		if !ok {
			return fmt.Errorf("%w %s", ErrUnknownKey, k)
		}
		viper.Set(k, field.Value)
	}
	return Write()
}

// Write persists the current values, creating the config file when missing.
func Write() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}
