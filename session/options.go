package session

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/ytbridge/ytbridge/constant"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/key"
	"github.com/ytbridge/ytbridge/transport"
	"github.com/ytbridge/ytbridge/transport/gojahost"
	"github.com/ytbridge/ytbridge/transport/rodhost"
	"github.com/ytbridge/ytbridge/where"
)

// Script hosts a session can run the player document in.
const (
	HostGoja    = constant.HostGoja
	HostBrowser = constant.HostBrowser
)

// Hosts lists the accepted values of Options.Host.
func Hosts() []string {
	return []string{HostGoja, HostBrowser}
}

type Options struct {
	Host         string
	Origin       string
	Background   string
	TimeInterval time.Duration

	// Vars are the default player parameters of every load.
	Vars document.Params

	Browser rodhost.Options
}

// FromConfig reads the options from the configuration.
func FromConfig() (Options, error) {
	vars, err := document.ParseVars(viper.GetStringSlice(key.PlayerVars))
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", key.PlayerVars, err)
	}

	return Options{
		Host:         viper.GetString(key.PlayerHost),
		Origin:       viper.GetString(key.PlayerOrigin),
		Background:   viper.GetString(key.PlayerBackground),
		TimeInterval: time.Duration(viper.GetInt(key.PlayerTimeInterval)) * time.Millisecond,
		Vars:         vars,
		Browser: rodhost.Options{
			Bin:         viper.GetString(key.BrowserBin),
			Headless:    viper.GetBool(key.BrowserHeadless),
			DownloadDir: where.Browser(),
		},
	}, nil
}

// Factory returns the transport.Factory of the configured host.
func (o Options) Factory() (transport.Factory, error) {
	switch o.Host {
	case HostGoja, "":
		return gojahost.Factory(), nil
	case HostBrowser:
		return rodhost.Factory(o.Browser), nil
	default:
		return nil, fmt.Errorf("unknown host %q, expected one of %v", o.Host, Hosts())
	}
}
