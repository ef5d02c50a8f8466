// Package transport abstracts the script host that runs the player document.
//
// A Channel evaluates command strings in the remote environment and delivers
// the origin strings the environment emits, in emission order, on the host loop.
package transport

import (
	"errors"
	"fmt"

	"github.com/ytbridge/ytbridge/document"
)

// Dispatch schedules fn on the host loop. Implementations must run scheduled
// functions one at a time and in the order they were scheduled.
type Dispatch func(fn func())

// Channel is a live binding to a script host.
type Channel interface {
	// Evaluate schedules command for execution in the remote environment and returns immediately.
	// A non-nil error is a *Error and means the command never reached the environment.
	Evaluate(command string) error

	// OnMessage registers the single consumer of the outbound message stream.
	// Registering again replaces the previous handler.
	OnMessage(handler func(raw string))

	// Close tears the host down. Evaluate fails afterwards and no more messages are delivered.
	Close() error
}

// Factory builds a fresh Channel bound to the rendered document.
type Factory func(doc *document.Document, dispatch Dispatch) (Channel, error)

// ErrUnreachable is matched by every *Error.
var ErrUnreachable = errors.New("remote environment unreachable")

// Error reports that an operation could not reach the remote environment.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transport %s: %s", e.Op, ErrUnreachable)
	}
	return fmt.Sprintf("transport %s: %s: %v", e.Op, ErrUnreachable, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrUnreachable
}
