// Package correlator tracks one-shot queries sent to the player document until their replies arrive.
//
// A Correlator is not safe for concurrent use; it is owned by a single host loop.
package correlator

import (
	"errors"
	"strconv"

	"github.com/samber/lo"
	"github.com/ytbridge/ytbridge/codec"
	"github.com/ytbridge/ytbridge/log"
	"golang.org/x/exp/slices"
)

// ID identifies an outstanding query. IDs are never reissued by the same Correlator.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses an id echoed back by the remote environment.
func ParseID(raw string) (ID, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// Completion receives either the decoded reply or an error, exactly once.
type Completion func(value any, err error)

// ErrTeardown fails every query outstanding when its channel is rebound or closed.
var ErrTeardown = errors.New("channel torn down")

// ErrRemote is wrapped by the decoding error of a query whose getter threw in the remote environment.
var ErrRemote = errors.New("remote getter failed")

type pending struct {
	kind codec.Kind
	done Completion
}

// Correlator is an id-keyed table of pending completions.
type Correlator struct {
	last    ID
	pending map[ID]pending
}

func New() *Correlator {
	return &Correlator{pending: make(map[ID]pending)}
}

// Issue stores done under a fresh id. The reply is expected to decode as kind.
func (c *Correlator) Issue(kind codec.Kind, done Completion) ID {
	c.last++
	c.pending[c.last] = pending{kind: kind, done: done}
	return c.last
}

// Resolve decodes raw and completes the query registered under id.
// Unknown or already completed ids are dropped and false is returned.
func (c *Correlator) Resolve(id ID, raw string) bool {
	p, ok := c.take(id)
	if !ok {
		log.Debugf("dropping reply for unknown query %s", id)
		return false
	}

	value, err := codec.DecodeReply(raw, p.kind)
	p.done(value, err)
	return true
}

// Reject completes the query registered under id with err.
func (c *Correlator) Reject(id ID, err error) bool {
	p, ok := c.take(id)
	if !ok {
		return false
	}

	p.done(nil, err)
	return true
}

// RejectRemote fails the query registered under id because the remote side reported message instead of a value.
// The query completes with a *codec.DecodingError wrapping ErrRemote.
func (c *Correlator) RejectRemote(id ID, message string) bool {
	p, ok := c.take(id)
	if !ok {
		return false
	}

	p.done(nil, &codec.DecodingError{Kind: p.kind, Raw: message, Err: ErrRemote})
	return true
}

// FailAll completes every outstanding query with err and returns how many there were.
// The table is emptied before any completion runs.
func (c *Correlator) FailAll(err error) int {
	if len(c.pending) == 0 {
		return 0
	}

	failed := c.pending
	c.pending = make(map[ID]pending)

	// Completions run in issue order.
	ids := lo.Keys(failed)
	slices.Sort(ids)

	for _, id := range ids {
		failed[id].done(nil, err)
	}
	return len(ids)
}

// Len returns the number of outstanding queries.
func (c *Correlator) Len() int {
	return len(c.pending)
}

func (c *Correlator) take(id ID) (pending, bool) {
	p, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	return p, ok
}
