package arp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetPolicyImmediate(t *testing.T) {
	var r ResetPolicy
	r.SetRefractory(3)

	r.Tick()
	assert.True(t, r.Trigger(ResetImmediate))
	assert.True(t, r.Absorb(), "same-sample clock is absorbed")
	assert.False(t, r.Pending())

	r.Tick()
	assert.True(t, r.Absorb())
	r.Tick()
	assert.True(t, r.Absorb())
	r.Tick()
	assert.False(t, r.Absorb())
}

func TestResetPolicyDeferred(t *testing.T) {
	var r ResetPolicy
	r.SetRefractory(10)

	assert.False(t, r.Trigger(ResetDeferred))
	assert.False(t, r.Absorb(), "deferred resets never suppress clocks")
	assert.True(t, r.Pending())
	assert.True(t, r.TakeQueued())
	assert.False(t, r.TakeQueued())
}

func TestResetPolicyImmediateCancelsQueued(t *testing.T) {
	var r ResetPolicy
	r.Trigger(ResetDeferred)
	r.Trigger(ResetImmediate)
	assert.False(t, r.Pending())
}

func TestResetPolicyClear(t *testing.T) {
	var r ResetPolicy
	r.SetRefractory(5)
	r.Trigger(ResetImmediate)
	r.Trigger(ResetDeferred)

	r.Clear()
	assert.False(t, r.Absorb())
	assert.False(t, r.Pending())
	assert.Equal(t, 5, r.Refractory())

	r.SetRefractory(-1)
	assert.Equal(t, 0, r.Refractory())
}

func TestResetModeString(t *testing.T) {
	assert.Equal(t, "immediate", ResetImmediate.String())
	assert.Equal(t, "deferred", ResetDeferred.String())
	assert.Equal(t, "unknown", ResetMode(7).String())
}
