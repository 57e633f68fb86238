package bus

import (
	"testing"
)

func testConfiguration() *Configuration {
	return NewConfiguration(
		Info{Name: "CV", Direction: DirectionInput, Signal: SignalCV, Channels: 16},
		Info{Name: "Clock", Direction: DirectionInput, Signal: SignalTrigger, Channels: 1},
		Info{Name: "Out", Direction: DirectionOutput, Signal: SignalCV, Channels: 1},
	)
}

func TestConfigurationCounts(t *testing.T) {
	config := testConfiguration()

	if got := config.GetBusCount(DirectionInput); got != 2 {
		t.Errorf("Expected 2 inputs, got %d", got)
	}
	if got := config.GetBusCount(DirectionOutput); got != 1 {
		t.Errorf("Expected 1 output, got %d", got)
	}
}

func TestGetBusInfo(t *testing.T) {
	config := testConfiguration()

	clock := config.GetBusInfo(DirectionInput, 1)
	if clock == nil {
		t.Fatal("Expected second input to exist")
	}
	if clock.Name != "Clock" || clock.Poly() {
		t.Errorf("Unexpected jack %+v", *clock)
	}

	out := config.GetBusInfo(DirectionOutput, 0)
	if out == nil || out.Name != "Out" {
		t.Errorf("Expected output 'Out', got %+v", out)
	}

	if config.GetBusInfo(DirectionOutput, 1) != nil {
		t.Error("Expected nil for out of range index")
	}
}

func TestFind(t *testing.T) {
	config := testConfiguration()

	cv, ok := config.Find("CV")
	if !ok || !cv.Poly() {
		t.Errorf("Expected polyphonic CV jack, got %+v", cv)
	}
	if _, ok := config.Find("Missing"); ok {
		t.Error("Found a jack that does not exist")
	}
}

func TestValidate(t *testing.T) {
	if err := testConfiguration().Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		jacks []Info
	}{
		{"empty name", []Info{{Channels: 1}}},
		{"duplicate", []Info{{Name: "A", Channels: 1}, {Name: "A", Channels: 1}}},
		{"no channels", []Info{{Name: "A"}}},
		{"too many channels", []Info{{Name: "A", Channels: 17}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewConfiguration(tt.jacks...).Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestSignalString(t *testing.T) {
	if SignalTrigger.String() != "trigger" || Signal(9).String() != "unknown" {
		t.Error("Unexpected signal names")
	}
}
