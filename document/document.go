// Package document renders the player document every channel binding is loaded from.
//
// The document hosts the remote IFrame player, installs the ytbridge command
// object and forwards player events through the ytbridgePost native binding.
package document

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/samber/mo"
	"github.com/ytbridge/ytbridge/constant"
)

//go:embed assets/player.html
var pageTemplate string

//go:embed assets/bridge.js
var bridgeScript string

//go:embed assets/simulator.js
var simulatorScript string

var page = template.Must(template.New("player").Parse(pageTemplate))

const (
	DefaultBackground = "#ffffff"
	DefaultInterval   = 500 * time.Millisecond
)

var backgroundPattern = regexp.MustCompile(`^(#[0-9A-Fa-f]{3,8}|[A-Za-z]+|rgba?\([0-9.,%\s]+\))$`)

// Document describes one rendering of the player page.
type Document struct {
	// Origin is the URL the page is served from. The remote player only accepts commands from it.
	Origin string

	// Background is a CSS color painted before the remote player renders.
	Background string

	// Placeholder is HTML shown until the player reports readiness.
	Placeholder mo.Option[string]

	// VideoID is the video the player is created with. Empty for playlist and raw parameter loads.
	VideoID string

	// Vars are forwarded verbatim as the player's playerVars.
	Vars Params

	// TimeInterval is the period of playback time notifications while playing.
	TimeInterval time.Duration
}

// Validate checks the document can be rendered.
func (d *Document) Validate() error {
	origin, err := url.Parse(d.Origin)
	if err != nil {
		return fmt.Errorf("invalid origin: %w", err)
	}
	if origin.Scheme != "http" && origin.Scheme != "https" || origin.Host == "" {
		return fmt.Errorf("invalid origin %q: must be an absolute http(s) url", d.Origin)
	}

	if d.Background != "" && !backgroundPattern.MatchString(d.Background) {
		return fmt.Errorf("invalid background color %q", d.Background)
	}

	if d.TimeInterval < 0 {
		return errors.New("negative time interval")
	}

	return d.Vars.Validate()
}

// URL is the address the page is served at.
func (d *Document) URL() string {
	return strings.TrimRight(d.Origin, "/") + "/"
}

func (d *Document) background() string {
	if d.Background == "" {
		return DefaultBackground
	}
	return d.Background
}

func (d *Document) interval() time.Duration {
	if d.TimeInterval == 0 {
		return DefaultInterval
	}
	return d.TimeInterval
}

// Bootstrap renders the script that creates the player once the IFrame API is available.
func (d *Document) Bootstrap() (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	vars := d.Vars.Merge(nil)
	if _, ok := vars["origin"]; !ok {
		vars["origin"] = strings.TrimRight(d.Origin, "/")
	}

	config := map[string]any{
		"playerVars": vars,
		"interval":   d.interval().Milliseconds(),
	}
	if d.VideoID != "" {
		config["videoId"] = d.VideoID
	}

	// json.Marshal escapes <, > and &, so the config is safe inside a script element.
	encoded, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("encode player config: %w", err)
	}

	return fmt.Sprintf("%s.boot(%s);", constant.BridgeObject, encoded), nil
}

// HTML renders the complete page.
func (d *Document) HTML() (string, error) {
	bootstrap, err := d.Bootstrap()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	err = page.Execute(&b, struct {
		Background  string
		Placeholder string
		Bridge      string
		Bootstrap   string
		IframeAPI   string
	}{
		Background:  d.background(),
		Placeholder: d.Placeholder.OrElse(""),
		Bridge:      bridgeScript,
		Bootstrap:   bootstrap,
		IframeAPI:   constant.IframeAPI,
	})
	if err != nil {
		return "", fmt.Errorf("render player document: %w", err)
	}

	return b.String(), nil
}

// BridgeScript returns the script that installs the ytbridge command object.
func BridgeScript() string {
	return bridgeScript
}

// SimulatorScript returns an offline stand-in for the IFrame API, for hosts without network access.
func SimulatorScript() string {
	return simulatorScript
}

// Scripts returns, in evaluation order, every script a non-browser host must run to bring the document up.
func (d *Document) Scripts() ([]string, error) {
	bootstrap, err := d.Bootstrap()
	if err != nil {
		return nil, err
	}
	return []string{SimulatorScript(), BridgeScript(), bootstrap}, nil
}
