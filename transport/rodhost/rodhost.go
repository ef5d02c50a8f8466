// Package rodhost loads the player document into a Chromium page driven over the DevTools protocol.
package rodhost

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
	"github.com/ytbridge/ytbridge/constant"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/log"
	"github.com/ytbridge/ytbridge/transport"
)

const DefaultQueueSize = 64

var (
	errClosed    = errors.New("host closed")
	errQueueFull = errors.New("evaluation queue is full")
)

type Options struct {
	// Bin is the browser executable. Empty looks one up on the system and
	// falls back to downloading Chromium into DownloadDir.
	Bin string

	DownloadDir string

	Headless bool

	// QueueSize bounds the commands waiting to be evaluated in the page.
	QueueSize int
}

// Host is a transport.Channel backed by a browser page.
// Commands are evaluated in order by a single worker goroutine.
type Host struct {
	dispatch transport.Dispatch
	eval     func(js string) error

	queue  chan string
	done   chan struct{}
	closed atomic.Bool

	teardown []func() error

	mu      sync.Mutex
	handler func(raw string)
	backlog []string
}

// Factory returns a transport.Factory that launches a browser per binding.
func Factory(options Options) transport.Factory {
	return func(doc *document.Document, dispatch transport.Dispatch) (transport.Channel, error) {
		return New(doc, dispatch, options)
	}
}

func newHost(dispatch transport.Dispatch, eval func(string) error, size int) *Host {
	if size <= 0 {
		size = DefaultQueueSize
	}

	h := &Host{
		dispatch: dispatch,
		eval:     eval,
		queue:    make(chan string, size),
		done:     make(chan struct{}),
	}
	go h.work()
	return h
}

// New launches a browser, serves the rendered document at its origin and navigates to it.
func New(doc *document.Document, dispatch transport.Dispatch, options Options) (*Host, error) {
	html, err := doc.HTML()
	if err != nil {
		return nil, err
	}

	bin, err := Resolve(options)
	if err != nil {
		return nil, &transport.Error{Op: "resolve browser", Err: err}
	}

	l := launcher.New().Bin(bin).Headless(options.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, &transport.Error{Op: "launch browser", Err: err}
	}

	var page *rod.Page
	h := newHost(dispatch, func(js string) error {
		_, err := page.Eval("() => { " + js + " }")
		return err
	}, options.QueueSize)
	h.teardown = append(h.teardown, func() error {
		l.Kill()
		l.Cleanup()
		return nil
	})

	fail := func(op string, err error) (*Host, error) {
		_ = h.Close()
		return nil, &transport.Error{Op: op, Err: err}
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fail("connect browser", err)
	}
	h.teardown = append(h.teardown, browser.Close)

	page, err = browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fail("open page", err)
	}

	stopExpose, err := page.Expose(constant.PostBinding, func(j gson.JSON) (interface{}, error) {
		h.post(j.Str())
		return nil, nil
	})
	if err != nil {
		return fail("expose "+constant.PostBinding, err)
	}
	h.teardown = append(h.teardown, stopExpose)

	router := page.HijackRequests()
	err = router.Add(doc.URL(), "", func(ctx *rod.Hijack) {
		ctx.Response.SetHeader("Content-Type", "text/html; charset=utf-8")
		ctx.Response.SetBody(html)
	})
	if err != nil {
		return fail("serve document", err)
	}
	go router.Run()
	h.teardown = append(h.teardown, router.Stop)

	if err := page.Navigate(doc.URL()); err != nil {
		return fail("navigate", err)
	}

	log.Debugf("rodhost: document up for %s", doc.URL())
	return h, nil
}

// Resolve returns the browser executable a host would launch.
func Resolve(options Options) (string, error) {
	if options.Bin != "" {
		return options.Bin, nil
	}

	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}

	b := launcher.NewBrowser()
	if options.DownloadDir != "" {
		b.RootDir = options.DownloadDir
	}
	log.Infof("rodhost: no browser found, downloading into %s", b.RootDir)
	return b.Get()
}

func (h *Host) work() {
	for {
		select {
		case <-h.done:
			return
		case js := <-h.queue:
			if h.closed.Load() {
				return
			}
			if err := h.eval(js); err != nil {
				log.Warnf("rodhost: %s: %v", js, err)
			}
		}
	}
}

// post runs on the DevTools event goroutine.
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

// Evaluate queues command for the page. It fails only when the host is closed or saturated.
func (h *Host) Evaluate(command string) error {
	if h.closed.Load() {
		return &transport.Error{Op: "evaluate", Err: errClosed}
	}

	select {
	case h.queue <- command:
		return nil
	default:
		return &transport.Error{Op: "evaluate", Err: errQueueFull}
	}
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

// Close stops the worker and releases the page, the browser and its process, newest first.
func (h *Host) Close() error {
	if h.closed.Swap(true) {
		return nil
	}
	close(h.done)

	var errs []error
	for i := len(h.teardown) - 1; i >= 0; i-- {
		if err := h.teardown[i](); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close browser host: %w", err)
	}
	return nil
}
