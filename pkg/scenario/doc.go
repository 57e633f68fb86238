// Package scenario drives an arpeggiator module from Lua scripts and
// records what it plays.
//
// A script sets input voltages, advances time and checks the outputs.
// Channels are numbered from 0, voltages are plain numbers and gate-like
// inputs also accept booleans (true is 10V). Time only moves inside step
// and pulse:
//
//	channels(3)
//	cv(0, 2) cv(1, 3) cv(2, 4)
//	gate(0, true) gate(1, true) gate(2, true)
//	for i, want in ipairs({2, 3, 4, 2}) do
//	  expect(pulse() == want, "note " .. i)
//	end
//
// Functions available to scripts:
//
//	channels(n [, gates [, cv2]])  connected channel counts; gates and cv2 default to n
//	cv(ch, v) cv2(ch, v) gate(ch, v)
//	clock(v) reset(v)              mono input levels, held until changed
//	hold(on) delay(on)             switches
//	reset_mode(name)               "immediate" or "deferred"
//	length(steps)                  pattern length, 0 for none
//	refractory(ms)                 reset suppress window
//	set(name, text) get(name)      any parameter by name, as displayed text
//	step([n])                      run n samples (default 1); returns cv, cv2, gate
//	pulse([n])                     n clock pulses, one low and one high sample each
//	out()                          cv, cv2, gate, pointer of the last sample
//	notes()                        number of notes in the sequence
//	expect(cond [, msg])           fail the scenario unless cond holds
//
// Every step and pulse call appends a Row to the Trace.
package scenario
