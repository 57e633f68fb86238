package arp

import "github.com/justyntemme/cvarp/pkg/dsp"

// Note is one captured lane: the pitch and auxiliary voltages frozen when
// its gate went high.
type Note struct {
	Primary   float32
	Secondary float32
	Channel   int

	held bool
}

// Held reports whether the note outlived its gate because hold is on.
func (n Note) Held() bool {
	return n.held
}

// before orders notes by pitch, breaking ties by channel.
func (n Note) before(o Note) bool {
	if n.Primary != o.Primary {
		return n.Primary < o.Primary
	}
	return n.Channel < o.Channel
}

// Sequence holds at most one note per channel in ascending pitch order.
// Storage is fixed so edits never allocate.
type Sequence struct {
	notes [dsp.MaxChannels]Note
	n     int
}

// Len returns the number of notes.
func (s *Sequence) Len() int {
	return s.n
}

// At returns the note at index i. i must be in [0, Len()).
func (s *Sequence) At(i int) Note {
	return s.notes[i]
}

// Index returns the position of the note owned by channel, or -1.
func (s *Sequence) Index(channel int) int {
	for i := 0; i < s.n; i++ {
		if s.notes[i].Channel == channel {
			return i
		}
	}
	return -1
}

// Notes returns the ordered notes. The slice aliases internal storage and
// is only valid until the next edit.
func (s *Sequence) Notes() []Note {
	return s.notes[:s.n]
}

// Insert adds a note at its sorted position, replacing any note already
// owned by the same channel.
func (s *Sequence) Insert(note Note) {
	if note.Channel < 0 || note.Channel >= dsp.MaxChannels {
		return
	}
	s.Remove(note.Channel)

	i := s.n
	for i > 0 && note.before(s.notes[i-1]) {
		s.notes[i] = s.notes[i-1]
		i--
	}
	s.notes[i] = note
	s.n++
}

// Remove deletes the note owned by channel and reports whether one existed.
func (s *Sequence) Remove(channel int) bool {
	i := s.Index(channel)
	if i < 0 {
		return false
	}
	copy(s.notes[i:s.n-1], s.notes[i+1:s.n])
	s.n--
	s.notes[s.n] = Note{}
	return true
}

// Clear removes every note.
func (s *Sequence) Clear() {
	for i := 0; i < s.n; i++ {
		s.notes[i] = Note{}
	}
	s.n = 0
}

func (s *Sequence) setHeld(channel int) {
	if i := s.Index(channel); i >= 0 {
		s.notes[i].held = true
	}
}
