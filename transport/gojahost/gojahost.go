// Package gojahost runs the player document inside an embedded JavaScript engine.
//
// The remote IFrame API is replaced by an offline simulator, so a host needs
// neither a browser nor network access. Used by the probe command and tests.
package gojahost

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/eventloop"
	"github.com/ytbridge/ytbridge/constant"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/log"
	"github.com/ytbridge/ytbridge/transport"
)

var errClosed = errors.New("host closed")

// Host is a transport.Channel backed by a goja runtime on its own event loop.
type Host struct {
	loop     *eventloop.EventLoop
	dispatch transport.Dispatch
	closed   atomic.Bool

	mu      sync.Mutex
	handler func(raw string)
	backlog []string
}

// Factory returns a transport.Factory that starts a Host per binding.
func Factory() transport.Factory {
	return func(doc *document.Document, dispatch transport.Dispatch) (transport.Channel, error) {
		return New(doc, dispatch)
	}
}

// New starts an event loop and evaluates the document scripts on it.
func New(doc *document.Document, dispatch transport.Dispatch) (*Host, error) {
	scripts, err := doc.Scripts()
	if err != nil {
		return nil, err
	}

	programs := make([]*goja.Program, len(scripts))
	for i, script := range scripts {
		programs[i], err = goja.Compile(fmt.Sprintf("document-%d.js", i), script, false)
		if err != nil {
			return nil, fmt.Errorf("compile document script %d: %w", i, err)
		}
	}

	h := &Host{
		loop:     eventloop.NewEventLoop(),
		dispatch: dispatch,
	}
	h.loop.Start()

	installed := make(chan error, 1)
	h.loop.RunOnLoop(func(vm *goja.Runtime) {
		installed <- h.install(vm, programs)
	})

	if err := <-installed; err != nil {
		h.closed.Store(true)
		h.loop.Stop()
		return nil, err
	}

	log.Debugf("gojahost: document up for %s", doc.URL())
	return h, nil
}

func (h *Host) install(vm *goja.Runtime, programs []*goja.Program) error {
	if err := vm.Set(constant.PostBinding, h.post); err != nil {
		return fmt.Errorf("install %s: %w", constant.PostBinding, err)
	}

	for _, program := range programs {
		if _, err := vm.RunProgram(program); err != nil {
			return fmt.Errorf("run document script: %w", err)
		}
	}
	return nil
}

// post runs on the goja loop. Messages emitted before a handler is registered are kept in order.
func (h *Host) post(raw string) {
	if h.closed.Load() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.handler == nil {
		h.backlog = append(h.backlog, raw)
		return
	}

	handler := h.handler
	h.dispatch(func() { handler(raw) })
}

// Evaluate schedules command on the goja loop. Script exceptions are logged, not returned,
// because execution is asynchronous.
func (h *Host) Evaluate(command string) error {
	if h.closed.Load() {
		return &transport.Error{Op: "evaluate", Err: errClosed}
	}

	h.loop.RunOnLoop(func(vm *goja.Runtime) {
		if _, err := vm.RunString(command); err != nil {
			log.Warnf("gojahost: %s: %v", command, err)
		}
	})
	return nil
}

func (h *Host) OnMessage(handler func(raw string)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.handler = handler
	for _, raw := range h.backlog {
		raw := raw
		h.dispatch(func() { handler(raw) })
	}
	h.backlog = nil
}

func (h *Host) Close() error {
	if h.closed.Swap(true) {
		return nil
	}

	h.loop.Stop()
	return nil
}
