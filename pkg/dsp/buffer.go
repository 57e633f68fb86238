package dsp

// Buffer helpers shared by ports and outputs. None of them allocate.

// Clear zeroes a buffer
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// Fill sets every sample of a buffer to v
func Fill(buffer []float32, v float32) {
	for i := range buffer {
		buffer[i] = v
	}
}
