package arp

import "github.com/justyntemme/cvarp/pkg/dsp"

type lane struct {
	gate    bool // effective gate on the previous sample
	pending bool // gate is high but values are not frozen yet
	since   int  // samples since the gate rose
}

// Capture tracks per-lane gates and owns the ordered note sequence.
type Capture struct {
	lanes   [dsp.MaxChannels]lane
	seq     Sequence
	sampler Sampler
	held    int
}

// Sequence returns the captured notes in play order.
func (c *Capture) Sequence() *Sequence {
	return &c.seq
}

// Sampler returns the settle-delay sampler used for new notes.
func (c *Capture) Sampler() *Sampler {
	return &c.sampler
}

// Held returns how many notes are being kept alive by hold.
func (c *Capture) Held() int {
	return c.held
}

// Update applies one frame and reports whether the sequence changed.
//
// When hold is set, the note owned by selected survives its gate falling
// and is marked held. Every other falling lane is dropped.
func (c *Capture) Update(f *Frame, hold bool, selected int) bool {
	changed := false
	n := f.lanes()

	for ch := range c.lanes {
		l := &c.lanes[ch]
		high := ch < n && dsp.IsHigh(f.gate(ch))

		switch {
		case high && !l.gate:
			// A new lifetime replaces any held note on this lane.
			changed = c.drop(ch) || changed
			l.pending = true
			l.since = 0
			c.sampler.Arm(ch)
		case !high && l.gate:
			l.pending = false
			changed = c.Release(ch, hold && ch == selected) || changed
		}
		l.gate = high

		if l.pending {
			if p, s, ok := c.sampler.Sample(ch, f.Primary[ch], f.secondary(ch), l.since); ok {
				l.pending = false
				c.seq.Insert(Note{Primary: p, Secondary: s, Channel: ch})
				changed = true
			} else {
				l.since++
			}
		}
	}
	return changed
}

// Release ends channel's note. With keep set the note stays in the
// sequence marked held instead.
func (c *Capture) Release(channel int, keep bool) bool {
	i := c.seq.Index(channel)
	if i < 0 {
		return false
	}
	if keep {
		if !c.seq.At(i).Held() {
			c.seq.setHeld(channel)
			c.held++
		}
		return false
	}
	return c.drop(channel)
}

// PruneHeld removes held notes except the one owned by keep. Pass -1 to
// remove them all.
func (c *Capture) PruneHeld(keep int) bool {
	if c.held == 0 {
		return false
	}
	changed := false
	for i := c.seq.Len() - 1; i >= 0; i-- {
		note := c.seq.At(i)
		if note.Held() && note.Channel != keep {
			changed = c.drop(note.Channel) || changed
		}
	}
	return changed
}

// Clear forgets every lane and note.
func (c *Capture) Clear() {
	c.lanes = [dsp.MaxChannels]lane{}
	c.seq.Clear()
	c.held = 0
}

func (c *Capture) drop(channel int) bool {
	i := c.seq.Index(channel)
	if i < 0 {
		return false
	}
	if c.seq.At(i).Held() {
		c.held--
	}
	return c.seq.Remove(channel)
}
