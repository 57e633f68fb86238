package arp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameOf(gates ...float32) *Frame {
	f := &Frame{Channels: len(gates), GateChannels: len(gates), SecondaryChannels: len(gates)}
	for ch, g := range gates {
		f.Primary[ch] = float32(10 - ch)
		f.Gate[ch] = g
	}
	return f
}

func TestCaptureOrdersByPitch(t *testing.T) {
	var c Capture
	assert.True(t, c.Update(frameOf(10, 10, 0), false, -1))

	seq := c.Sequence()
	require.Equal(t, 2, seq.Len())
	assert.Equal(t, 1, seq.At(0).Channel)
	assert.Equal(t, 0, seq.At(1).Channel)

	assert.False(t, c.Update(frameOf(10, 10, 0), false, -1), "steady gates change nothing")
}

func TestCaptureReleaseDrops(t *testing.T) {
	var c Capture
	c.Update(frameOf(10, 10), false, -1)

	assert.True(t, c.Update(frameOf(10, 0), false, 1))
	assert.Equal(t, 1, c.Sequence().Len())
	assert.Equal(t, 0, c.Held())
}

func TestCaptureHoldKeepsSelected(t *testing.T) {
	var c Capture
	c.Update(frameOf(10, 10), true, -1)

	c.Update(frameOf(0, 0), true, 1)
	require.Equal(t, 1, c.Sequence().Len())
	assert.Equal(t, 1, c.Sequence().At(0).Channel)
	assert.True(t, c.Sequence().At(0).Held())
	assert.Equal(t, 1, c.Held())

	assert.True(t, c.PruneHeld(-1))
	assert.Equal(t, 0, c.Sequence().Len())
	assert.Equal(t, 0, c.Held())
}

func TestCaptureRetriggerReplacesHeld(t *testing.T) {
	var c Capture
	c.Update(frameOf(10), true, -1)
	c.Update(frameOf(0), true, 0)
	require.Equal(t, 1, c.Held())

	f := frameOf(10)
	f.Primary[0] = 3
	c.Update(f, true, 0)

	require.Equal(t, 1, c.Sequence().Len())
	assert.False(t, c.Sequence().At(0).Held())
	assert.Equal(t, float32(3), c.Sequence().At(0).Primary)
	assert.Equal(t, 0, c.Held())
}

func TestCaptureSettlePending(t *testing.T) {
	var c Capture
	c.Sampler().SetDelay(2)

	assert.False(t, c.Update(frameOf(10), false, -1))
	assert.False(t, c.Update(frameOf(10), false, -1))
	assert.True(t, c.Update(frameOf(10), false, -1))
	assert.Equal(t, 1, c.Sequence().Len())
}

func TestCaptureClear(t *testing.T) {
	var c Capture
	c.Update(frameOf(10, 10), true, -1)
	c.Clear()

	assert.Equal(t, 0, c.Sequence().Len())
	assert.True(t, c.Update(frameOf(10, 10), true, -1), "cleared lanes see a fresh rising edge")
}

func TestCaptureRetriggerWithoutHold(t *testing.T) {
	var c Capture
	c.Update(frameOf(10, 10), false, -1)

	require.True(t, c.Update(frameOf(0, 10), false, 0))
	require.Equal(t, 1, c.Sequence().Len())

	f := frameOf(10, 10)
	f.Primary[0] = 6
	require.True(t, c.Update(f, false, 1))

	seq := c.Sequence()
	require.Equal(t, 2, seq.Len())
	assert.Equal(t, Note{Primary: 6, Channel: 0}, seq.At(0), "the new lifetime takes the new pitch")
	assert.Equal(t, 1, seq.At(1).Channel)
	assert.Equal(t, 0, c.Held())
}

func TestCaptureGateFallsWhileSettling(t *testing.T) {
	var c Capture
	c.Sampler().SetDelay(3)

	c.Update(frameOf(10), false, -1)
	c.Update(frameOf(10), false, -1)
	assert.False(t, c.Update(frameOf(0), false, -1), "a note that never settled has nothing to release")
	for i := 0; i < 10; i++ {
		c.Update(frameOf(0), false, -1)
	}
	assert.Equal(t, 0, c.Sequence().Len())

	f := frameOf(10)
	f.Primary[0] = 8
	for i := 0; i < 3; i++ {
		assert.False(t, c.Update(f, false, -1), "sample %d is inside the settle window", i)
	}
	require.True(t, c.Update(f, false, -1))
	require.Equal(t, 1, c.Sequence().Len())
	assert.Equal(t, float32(8), c.Sequence().At(0).Primary)
}
