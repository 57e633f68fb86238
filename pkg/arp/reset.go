package arp

// ResetMode selects how a reset pulse moves the play pointer.
type ResetMode uint32

const (
	// ResetImmediate jumps to the first note on the reset edge and then
	// ignores clock edges for the refractory window.
	ResetImmediate ResetMode = iota
	// ResetDeferred waits and applies the jump on the next clock edge in
	// place of the normal advance.
	ResetDeferred
)

// String returns the string representation of the reset mode.
func (m ResetMode) String() string {
	switch m {
	case ResetImmediate:
		return "immediate"
	case ResetDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// ResetPolicy holds the refractory countdown and the queued-reset flag.
type ResetPolicy struct {
	refractory int
	countdown  int
	queued     bool
}

// SetRefractory sets how many samples of clock edges an immediate reset
// suppresses.
func (r *ResetPolicy) SetRefractory(samples int) {
	if samples < 0 {
		samples = 0
	}
	r.refractory = samples
}

// Refractory returns the refractory window in samples.
func (r *ResetPolicy) Refractory() int {
	return r.refractory
}

// Tick counts down one sample. It runs every sample, edge or not.
func (r *ResetPolicy) Tick() {
	if r.countdown > 0 {
		r.countdown--
	}
}

// Trigger handles a reset rising edge and reports whether the pointer
// must jump now.
func (r *ResetPolicy) Trigger(mode ResetMode) bool {
	if mode == ResetDeferred {
		r.queued = true
		return false
	}
	r.queued = false
	r.countdown = r.refractory
	return true
}

// Absorb reports whether a clock edge falls inside the refractory window.
func (r *ResetPolicy) Absorb() bool {
	return r.countdown > 0
}

// TakeQueued consumes a deferred reset.
func (r *ResetPolicy) TakeQueued() bool {
	q := r.queued
	r.queued = false
	return q
}

// Pending reports whether a deferred reset is waiting for a clock edge.
func (r *ResetPolicy) Pending() bool {
	return r.queued
}

// Clear drops the countdown and any queued reset.
func (r *ResetPolicy) Clear() {
	r.countdown = 0
	r.queued = false
}
