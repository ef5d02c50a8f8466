// Package player drives the embedded YouTube IFrame player through a script host.
//
// A Controller owns at most one channel binding at a time. Every method and
// every observer callback runs on the host loop behind the controller's Dispatch;
// none of them are safe to call from other goroutines.
package player

import (
	"errors"
	"fmt"
	"time"

	"github.com/ytbridge/ytbridge/constant"
	"github.com/ytbridge/ytbridge/correlator"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/log"
	"github.com/ytbridge/ytbridge/transport"
)

// ErrNotReady is reported for commands and queries issued before the player signalled readiness.
var ErrNotReady = errors.New("player is not ready")

// Options shape every document the controller renders.
type Options struct {
	// Origin the document is served from. Defaults to constant.DefaultOrigin.
	Origin string

	// TimeInterval is the period of playback time notifications.
	TimeInterval time.Duration

	// Vars are default player parameters. Parameters passed to a load override them.
	Vars document.Params
}

// Controller is the bridge between Go callers and the remote player.
type Controller struct {
	factory  transport.Factory
	dispatch transport.Dispatch
	options  Options

	channel transport.Channel
	binding string
	queries *correlator.Correlator
	slot    *slot
	logger  log.Entry

	state   event.State
	quality event.Quality
	ready   bool

	// The first report of each binding is always delivered, even when it repeats the default.
	stateReported   bool
	qualityReported bool
}

// New returns a controller without a binding. Nothing is loaded until one of the Load methods is called.
func New(factory transport.Factory, dispatch transport.Dispatch, options Options) *Controller {
	if options.Origin == "" {
		options.Origin = constant.DefaultOrigin
	}

	return &Controller{
		factory:  factory,
		dispatch: dispatch,
		options:  options,
		queries:  correlator.New(),
		logger:   log.WithField("binding", ""),
		state:    event.StateUnstarted,
		quality:  event.QualityUnknown,
	}
}

// State is the playback state last reported by the remote player.
func (c *Controller) State() event.State {
	return c.state
}

// Quality is the playback quality last reported by the remote player.
func (c *Controller) Quality() event.Quality {
	return c.quality
}

// Ready reports whether the current binding accepts commands.
func (c *Controller) Ready() bool {
	return c.ready && c.channel != nil
}

// BindingID identifies the current binding, or is empty when nothing is loaded.
func (c *Controller) BindingID() string {
	return c.binding
}

// Pending returns the number of queries awaiting a reply.
func (c *Controller) Pending() int {
	return c.queries.Len()
}

// Close tears the current binding down. Outstanding queries fail with correlator.ErrTeardown.
func (c *Controller) Close() error {
	return c.unbind("closed")
}

func (c *Controller) unbind(reason string) error {
	old, binding := c.channel, c.binding

	c.channel = nil
	c.binding = ""
	c.ready = false
	c.state = event.StateUnstarted
	c.quality = event.QualityUnknown
	c.stateReported = false
	c.qualityReported = false

	var err error
	if old != nil {
		if err = old.Close(); err != nil {
			c.logger.Warnf("closing channel: %v", err)
			err = fmt.Errorf("close binding %s: %w", binding, err)
		}
	}

	// Completions run with the binding already detached, so a query issued from one fails with ErrNotReady.
	if n := c.queries.FailAll(fmt.Errorf("%w: %s", correlator.ErrTeardown, reason)); n > 0 {
		c.logger.Infof("failed %d pending queries: %s", n, reason)
	}

	c.logger = log.WithField("binding", "")
	return err
}
