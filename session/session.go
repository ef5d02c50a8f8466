// Package session runs a player controller on its own host loop for the commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ytbridge/ytbridge/log"
	"github.com/ytbridge/ytbridge/loop"
	"github.com/ytbridge/ytbridge/player"
)

// closeTimeout bounds how long Close waits for the host to tear down.
const closeTimeout = 5 * time.Second

var ErrLoadRefused = errors.New("load refused")

// Session owns a host loop and the controller living on it.
type Session struct {
	loop       *loop.Loop
	controller *player.Controller
	fanout     *fanout

	cancel context.CancelFunc
	done   chan struct{}
}

// Open starts the host loop and a controller for options. The session lives until Close or ctx ends.
func Open(ctx context.Context, options Options) (*Session, error) {
	factory, err := options.Factory()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		loop:   loop.New(),
		fanout: newFanout(options.Background),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		if err := s.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warnf("session: host loop: %v", err)
		}
	}()

	s.controller = player.New(factory, s.loop.Dispatch, player.Options{
		Origin:       options.Origin,
		TimeInterval: options.TimeInterval,
		Vars:         options.Vars,
	})

	if err := s.loop.Do(ctx, func() { s.controller.Observe(s.fanout) }); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// Do runs fn on the host loop and waits for it.
func (s *Session) Do(ctx context.Context, fn func(c *player.Controller)) error {
	return s.loop.Do(ctx, func() { fn(s.controller) })
}

// Dispatch schedules fn on the host loop without waiting.
func (s *Session) Dispatch(fn func()) {
	s.loop.Dispatch(fn)
}

// Subscribe adds an observer. It must be called on the host loop.
func (s *Session) Subscribe(o player.Observer) (cancel func()) {
	return s.fanout.subscribe(o)
}

// Load binds the controller to target and waits until the player is ready.
func (s *Session) Load(ctx context.Context, target Target) error {
	if err := target.Validate(); err != nil {
		return err
	}

	ready := make(chan struct{})
	var (
		refused     bool
		abandoned   bool
		unsubscribe func()
	)

	// abandon runs on the loop after the scheduled load, so a load whose caller gave up
	// never cues its target on a later binding.
	abandon := func() {
		s.Dispatch(func() {
			abandoned = true
			if unsubscribe != nil {
				unsubscribe()
			}
		})
	}

	err := s.Do(ctx, func(c *player.Controller) {
		unsubscribe = s.Subscribe(&player.Funcs{
			OnReady: func() {
				unsubscribe()
				if abandoned {
					return
				}
				if !target.afterReady(c) {
					log.Warnf("session: could not queue %s", target.Label())
				}
				close(ready)
			},
		})

		if !target.load(c) {
			unsubscribe()
			refused = true
		}
	})
	if err != nil {
		abandon()
		return err
	}
	if refused {
		return fmt.Errorf("%w: %s", ErrLoadRefused, target.Label())
	}

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		abandon()
		return fmt.Errorf("waiting for the player: %w", ctx.Err())
	}
}

// Remote adapts the session for the monitor: observers are subscribed instead of replacing each other.
func (s *Session) Remote() *Remote {
	return &Remote{Controller: s.controller, session: s}
}

// Close tears down the binding and stops the host loop.
func (s *Session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var closeErr error
	err := s.Do(ctx, func(c *player.Controller) { closeErr = c.Close() })

	s.cancel()
	<-s.done

	if err != nil && !errors.Is(err, loop.ErrStopped) {
		return err
	}
	return closeErr
}

// Remote is a controller whose Observe subscribes to the session.
type Remote struct {
	*player.Controller
	session *Session
}

func (r *Remote) Observe(o player.Observer) (cancel func()) {
	return r.session.Subscribe(o)
}
