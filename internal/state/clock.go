package state

import (
	"github.com/google/uuid"
)

// clock stamps ops emitted by one controller. The session id changes every
// time a controller is created so that viewers can tell two hosts apart.
type clock struct {
	session string
	seq     uint64
}

func newClock() clock {
	return clock{session: uuid.NewString()}
}

func (c *clock) stamp(op Op) Op {
	c.seq++
	op.Seq = c.seq
	op.Session = c.session
	return op
}

// accept reports whether a remote op is the next one to apply and advances
// the clock past it.
func (c *clock) accept(op Op) bool {
	if op.Session != c.session || op.Seq <= c.seq {
		return false
	}
	c.seq = op.Seq
	return true
}
