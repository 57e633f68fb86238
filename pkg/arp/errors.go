package arp

import "errors"

// ErrInvalidSampleRate is returned when a sample rate is zero, negative or
// not a number.
var ErrInvalidSampleRate = errors.New("arp: invalid sample rate")
