package arp

// Rhythm wraps a Player and rewinds it every Length played steps, so the
// pattern restarts from the lowest note regardless of how many notes are
// held. A length of zero means no limit.
type Rhythm struct {
	player  *Player
	length  int
	counter int
}

// NewRhythm wraps player.
func NewRhythm(player *Player) *Rhythm {
	return &Rhythm{player: player}
}

// SetLength sets the pattern length in steps.
func (r *Rhythm) SetLength(steps int) {
	if steps < 0 {
		steps = 0
	}
	r.length = steps
}

// Length returns the pattern length in steps.
func (r *Rhythm) Length() int {
	return r.length
}

// Clock advances the player one step.
func (r *Rhythm) Clock(seq *Sequence) bool {
	ok := r.player.Clock(seq)
	if ok {
		r.step()
	}
	return ok
}

// Restart jumps the player to the first note, which counts as step one.
func (r *Rhythm) Restart(seq *Sequence) bool {
	r.counter = 0
	ok := r.player.Restart(seq)
	if ok {
		r.step()
	}
	return ok
}

// Reset rewinds the player and the step counter.
func (r *Rhythm) Reset() {
	r.player.Rewind()
	r.counter = 0
}

func (r *Rhythm) step() {
	r.counter++
	if r.length > 0 && r.counter >= r.length {
		r.player.Rewind()
		r.counter = 0
	}
}
