package arp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRhythmUnlimited(t *testing.T) {
	p := NewPlayer()
	r := NewRhythm(p)
	s := seqOf(1, 2, 3)

	var got []float32
	for i := 0; i < 5; i++ {
		r.Clock(s)
		got = append(got, selectedPitch(t, p, s))
	}
	assert.Equal(t, []float32{1, 2, 3, 1, 2}, got)
}

func TestRhythmLength(t *testing.T) {
	p := NewPlayer()
	r := NewRhythm(p)
	r.SetLength(2)
	s := seqOf(1, 2, 3)

	var got []float32
	for i := 0; i < 6; i++ {
		r.Clock(s)
		got = append(got, selectedPitch(t, p, s))
	}
	assert.Equal(t, []float32{1, 2, 1, 2, 1, 2}, got)
}

func TestRhythmLengthLongerThanSequence(t *testing.T) {
	p := NewPlayer()
	r := NewRhythm(p)
	r.SetLength(4)
	s := seqOf(1, 2, 3)

	var got []float32
	for i := 0; i < 8; i++ {
		r.Clock(s)
		got = append(got, selectedPitch(t, p, s))
	}
	assert.Equal(t, []float32{1, 2, 3, 1, 1, 2, 3, 1}, got)
}

func TestRhythmRestartCountsFirstStep(t *testing.T) {
	p := NewPlayer()
	r := NewRhythm(p)
	r.SetLength(2)
	s := seqOf(1, 2, 3)

	r.Clock(s)
	r.Restart(s)
	assert.Equal(t, float32(1), selectedPitch(t, p, s))
	r.Clock(s)
	assert.Equal(t, float32(2), selectedPitch(t, p, s))
	r.Clock(s)
	assert.Equal(t, float32(1), selectedPitch(t, p, s))
}

func TestRhythmReset(t *testing.T) {
	p := NewPlayer()
	r := NewRhythm(p)
	r.SetLength(3)
	s := seqOf(1, 2, 3)

	r.Clock(s)
	r.Clock(s)
	r.Reset()
	r.Clock(s)
	assert.Equal(t, float32(1), selectedPitch(t, p, s))

	r.SetLength(-2)
	assert.Equal(t, 0, r.Length())
}

func TestRhythmEmpty(t *testing.T) {
	r := NewRhythm(NewPlayer())
	assert.False(t, r.Clock(&Sequence{}))
	assert.False(t, r.Restart(&Sequence{}))
}
