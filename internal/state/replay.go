package state

import (
	"fmt"
	"log"
)

// Checkpoint captures a controller so a late viewer can catch up. Image is
// the PNG-encoded base buffer; Pending rebuilds an in-progress stroke on top
// of it.
type Checkpoint struct {
	Session string   `json:"session"`
	Seq     uint64   `json:"seq"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Tool    ToolKind `json:"tool"`
	Image   []byte   `json:"image"`
	Pending []Op     `json:"pending,omitempty"`
}

// Apply replays an op issued by another controller. Ops from a different
// session, or that were already applied, are ignored.
func (c *Controller) Apply(op Op) bool {
	if !c.clock.accept(op) {
		log.Printf("[REPLAY] Ignoring %s op %d from session %s", op.Type, op.Seq, op.Session)
		return false
	}
	c.apply(op)
	return true
}

func (c *Controller) apply(op Op) {
	switch op.Type {
	case OpSelect:
		c.selectTool(op.Tool)
	case OpDown:
		c.pointerDown(op.point())
	case OpMove:
		if c.stroke != nil {
			c.pointerMove(op.point())
		}
	case OpUp:
		c.pointerUp()
	case OpResize:
		c.resize(op.W, op.H)
	default:
		log.Printf("[REPLAY] Unknown op type %q", op.Type)
	}
}

// Checkpoint snapshots the controller. For preview tools the base image is
// the pre-stroke snapshot, so the viewer redraws the current shape itself.
func (c *Controller) Checkpoint() (Checkpoint, error) {
	base := c.buf
	var pending []Op
	if s := c.stroke; s != nil {
		if s.Snapshot != nil {
			base = s.Snapshot
		}
		down := s.Anchor
		if s.Tool == ToolFreehand {
			down = s.Previous
		}
		pending = append(pending,
			Op{Type: OpSelect, Tool: s.Tool},
			Op{Type: OpDown, Tool: s.Tool, X: down.X, Y: down.Y},
		)
		if s.Snapshot != nil && s.Moved {
			pending = append(pending, Op{Type: OpMove, Tool: s.Tool, X: s.Last.X, Y: s.Last.Y})
		}
	}

	data, err := base.EncodePNG()
	if err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: %w", err)
	}
	return Checkpoint{
		Session: c.clock.session,
		Seq:     c.clock.seq,
		Width:   base.Width(),
		Height:  base.Height(),
		Tool:    c.tool,
		Image:   data,
		Pending: pending,
	}, nil
}

// Restore replaces the controller's buffer and clock with a checkpoint.
func (c *Controller) Restore(cp Checkpoint) error {
	buf, err := DecodeRaster(cp.Image)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if buf.Width() != cp.Width || buf.Height() != cp.Height {
		buf.Close()
		return fmt.Errorf("restore: image is %dx%d, checkpoint says %dx%d",
			buf.Width(), buf.Height(), cp.Width, cp.Height)
	}

	c.pointerUp()
	if err := c.buf.Close(); err != nil {
		log.Printf("[REPLAY] Failed to release previous buffer: %v", err)
	}
	c.buf = buf
	c.clock = clock{session: cp.Session, seq: cp.Seq}

	for _, op := range cp.Pending {
		c.apply(op)
	}
	c.selectTool(cp.Tool)
	c.refresh()
	log.Printf("[REPLAY] Restored %dx%d canvas from session %s at op %d", cp.Width, cp.Height, cp.Session, cp.Seq)
	return nil
}
