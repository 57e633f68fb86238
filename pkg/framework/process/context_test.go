package process

import (
	"testing"

	"github.com/justyntemme/cvarp/pkg/dsp"
	"github.com/justyntemme/cvarp/pkg/framework/param"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext(32, nil)

	if ctx.MaxSamples() != 32 || ctx.NumSamples() != 32 {
		t.Errorf("expected 32 samples, got %d/%d", ctx.NumSamples(), ctx.MaxSamples())
	}
	if len(ctx.OutCV) != 32 || len(ctx.OutCV2) != 32 || len(ctx.OutGate) != 32 {
		t.Error("output buffers not sized to the block")
	}
	for ch := 0; ch < dsp.MaxChannels; ch++ {
		if len(ctx.CV.Buffers[ch]) != 32 {
			t.Fatalf("CV channel %d has %d samples", ch, len(ctx.CV.Buffers[ch]))
		}
	}
	if ctx.Clock.Channels != dsp.Mono || ctx.Reset.Channels != dsp.Mono {
		t.Error("clock and reset should be mono")
	}
	if ctx.CV.Channels != 0 {
		t.Error("CV should start unpatched")
	}

	if small := NewContext(0, nil); small.MaxSamples() != dsp.MinBufferSize {
		t.Errorf("expected minimum block %d, got %d", dsp.MinBufferSize, small.MaxSamples())
	}
}

func TestContextNumSamples(t *testing.T) {
	ctx := NewContext(16, nil)

	ctx.SetNumSamples(8)
	if ctx.NumSamples() != 8 {
		t.Errorf("expected 8, got %d", ctx.NumSamples())
	}
	ctx.SetNumSamples(100)
	if ctx.NumSamples() != 16 {
		t.Errorf("expected clamp to 16, got %d", ctx.NumSamples())
	}
	ctx.SetNumSamples(-1)
	if ctx.NumSamples() != 0 {
		t.Errorf("expected clamp to 0, got %d", ctx.NumSamples())
	}
}

func TestContextParams(t *testing.T) {
	registry := param.NewRegistry()
	p := param.New(1, "Length").Range(0, 10).Default(5).Build()
	if err := registry.Add(p); err != nil {
		t.Fatal(err)
	}

	ctx := NewContext(4, registry)
	if ctx.Param(1) != 0.5 {
		t.Errorf("expected normalized 0.5, got %f", ctx.Param(1))
	}
	if ctx.ParamPlain(1) != 5 {
		t.Errorf("expected plain 5, got %f", ctx.ParamPlain(1))
	}
	if ctx.Param(99) != 0 || ctx.ParamPlain(99) != 0 {
		t.Error("unknown parameter should read 0")
	}

	bare := NewContext(4, nil)
	if bare.Param(1) != 0 || bare.ParamPlain(1) != 0 {
		t.Error("context without registry should read 0")
	}
}

func TestContextClear(t *testing.T) {
	ctx := NewContext(4, nil)
	for i := range ctx.OutGate {
		ctx.OutCV[i] = 1
		ctx.OutCV2[i] = 2
		ctx.OutGate[i] = 10
	}

	ctx.Clear()
	for i := 0; i < 4; i++ {
		if ctx.OutCV[i] != 0 || ctx.OutCV2[i] != 0 || ctx.OutGate[i] != 0 {
			t.Fatalf("sample %d not cleared", i)
		}
	}
}

func TestPortVoltage(t *testing.T) {
	ctx := NewContext(4, nil)
	ctx.CV.SetChannels(2)
	ctx.CV.Fill(0, 1.5)
	ctx.CV.Set(1, 2, 3)
	ctx.CV.Fill(5, 9)

	if v := ctx.CV.Voltage(0, 3); v != 1.5 {
		t.Errorf("expected 1.5, got %f", v)
	}
	if v := ctx.CV.Voltage(1, 2); v != 3 {
		t.Errorf("expected 3, got %f", v)
	}
	if v := ctx.CV.Voltage(5, 0); v != 0 {
		t.Errorf("unconnected channel should read 0, got %f", v)
	}
	if v := ctx.CV.Voltage(0, 10); v != 0 {
		t.Errorf("out of range sample should read 0, got %f", v)
	}

	ctx.CV.SetChannels(40)
	if ctx.CV.Channels != dsp.MaxChannels {
		t.Errorf("expected clamp to %d, got %d", dsp.MaxChannels, ctx.CV.Channels)
	}
	ctx.CV.SetChannels(-2)
	if ctx.CV.Channels != 0 {
		t.Errorf("expected clamp to 0, got %d", ctx.CV.Channels)
	}
}
