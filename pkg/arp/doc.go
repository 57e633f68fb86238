// Package arp implements a polyphonic control-voltage arpeggiator.
//
// An Engine is fed one Frame per audio sample: polyphonic pitch (primary)
// and auxiliary (secondary) voltages, a mono or polyphonic gate, and mono
// clock and reset signals. Lanes whose gate is high are captured into a
// Sequence ordered by pitch, and each clock rising edge steps a play
// pointer through that sequence. The selected note is emitted as a mono
// CV/CV2/gate output.
//
// The per-sample path never allocates or locks. Options are written from
// any goroutine and snapshot once per sample.
package arp
