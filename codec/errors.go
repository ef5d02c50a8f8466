package codec

import "fmt"

// EncodingError is returned when a command or one of its arguments cannot be rendered.
// It is raised locally, before anything reaches the transport.
type EncodingError struct {
	Function string
	// Arg is the index of the offending argument, or -1 when the command itself is rejected.
	Arg    int
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Arg < 0 {
		return fmt.Sprintf("encode %s: %s", e.Function, e.Reason)
	}
	return fmt.Sprintf("encode %s: argument %d: %s", e.Function, e.Arg, e.Reason)
}

// DecodingError is returned when a reply payload does not have the expected shape.
// It fails only the query that received the reply.
type DecodingError struct {
	Kind Kind
	Raw  string
	Err  error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode %s reply %q: %v", e.Kind, e.Raw, e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}
