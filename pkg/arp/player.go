package arp

// State describes where the play pointer is.
type State int

const (
	// StateEmpty means there is nothing to play.
	StateEmpty State = iota
	// StateRewound means the next clock edge plays the first note.
	StateRewound
	// StateIdle means the pointer rests on a note between clock edges.
	StateIdle
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateRewound:
		return "rewound"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Player steps a pointer through a Sequence.
//
// The pointer and the selected channel are tracked separately: a rewind
// moves the pointer back before the first note while the last note keeps
// sounding until the next edge.
type Player struct {
	pointer int
	channel int
}

// NewPlayer creates a rewound player.
func NewPlayer() *Player {
	p := &Player{}
	p.clear()
	return p
}

// Pointer returns the current index, or -1 when rewound or empty.
func (p *Player) Pointer() int {
	return p.pointer
}

// Channel returns the channel of the selected note, or -1.
func (p *Player) Channel() int {
	return p.channel
}

// State returns the pointer state against seq.
func (p *Player) State(seq *Sequence) State {
	switch {
	case seq.Len() == 0:
		return StateEmpty
	case p.pointer < 0:
		return StateRewound
	}
	return StateIdle
}

// Selected returns the selected note if it is still in seq.
func (p *Player) Selected(seq *Sequence) (Note, bool) {
	if p.channel < 0 {
		return Note{}, false
	}
	i := seq.Index(p.channel)
	if i < 0 {
		return Note{}, false
	}
	return seq.At(i), true
}

// Clock advances by one step, wrapping at the end, and reports whether a
// note is selected afterwards.
func (p *Player) Clock(seq *Sequence) bool {
	n := seq.Len()
	if n == 0 {
		p.clear()
		return false
	}
	if p.pointer < 0 {
		p.pointer = 0
	} else {
		p.pointer = (p.pointer + 1) % n
	}
	p.channel = seq.At(p.pointer).Channel
	return true
}

// Restart selects the first note and reports whether there was one.
func (p *Player) Restart(seq *Sequence) bool {
	p.pointer = -1
	return p.Clock(seq)
}

// Rewind makes the next Clock play the first note. The selected note is
// left alone.
func (p *Player) Rewind() {
	p.pointer = -1
}

// Rebuilt re-anchors the pointer after seq changed. A selected note that
// is still present keeps the pointer; otherwise the pointer drops to the
// nearest lower index so the following edge continues where it left off.
func (p *Player) Rebuilt(seq *Sequence) {
	n := seq.Len()
	if n == 0 {
		p.clear()
		return
	}
	if p.channel >= 0 {
		if i := seq.Index(p.channel); i >= 0 {
			if p.pointer >= 0 {
				p.pointer = i
			}
			return
		}
	}

	if p.pointer < 0 {
		p.channel = -1
		return
	}
	p.pointer--
	if p.pointer >= n {
		p.pointer = n - 1
	}
	if p.pointer < 0 {
		p.pointer = -1
		p.channel = -1
		return
	}
	p.channel = seq.At(p.pointer).Channel
}

func (p *Player) clear() {
	p.pointer = -1
	p.channel = -1
}
