package scenario

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/cvarp/pkg/dsp"
	"github.com/justyntemme/cvarp/pkg/framework/debug"
)

func run(t *testing.T, script string) (*Trace, error) {
	t.Helper()
	return NewRunner(dsp.SampleRate44k1).Run(context.Background(), t.Name(), script)
}

func TestRunFiles(t *testing.T) {
	files, err := filepath.Glob("testdata/*.lua")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	r := NewRunner(dsp.SampleRate44k1)
	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			tr, err := r.RunFile(context.Background(), f)
			require.NoError(t, err)
			assert.NotEmpty(t, tr.Rows)
			assert.Equal(t, strings.TrimSuffix(filepath.Base(f), ".lua"), tr.Name)
		})
	}
}

func TestRunResetTrace(t *testing.T) {
	tr, err := NewRunner(dsp.SampleRate44k1).RunFile(context.Background(), "testdata/reset.lua")
	require.NoError(t, err)

	assert.Equal(t, []float32{2, 3, 4, 2, 3, 2, 2, 2, 2, 3}, tr.CV())
	assert.Equal(t, "pulse", tr.Rows[0].Call)
	assert.Equal(t, "step", tr.Rows[5].Call)
	assert.Equal(t, 2+2+2+2+2+1+2+2+100+2, tr.Samples)
}

func TestRunDeferredReset(t *testing.T) {
	tr, err := run(t, `
		channels(3)
		reset_mode("deferred")
		cv(0, 2) cv(1, 3) cv(2, 4)
		for ch = 0, 2 do gate(ch, true) end
		pulse(5)
		reset(true)
		expect(step() == 3, "deferred reset waits for the clock")
		reset(false)
		expect(pulse() == 2)
		expect(pulse() == 3)
	`)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3, 4, 2, 3, 3, 2, 3}, tr.CV())
}

func TestRunSettleDelay(t *testing.T) {
	for _, tc := range []struct {
		delay string
		want  float32
	}{
		{"false", 7},
		{"true", 2},
	} {
		t.Run("delay "+tc.delay, func(t *testing.T) {
			tr, err := run(t, `
				channels(1)
				delay(`+tc.delay+`)
				cv(0, 7)
				gate(0, true)
				step()
				cv(0, 2)
				step(10)
				pulse()
			`)
			require.NoError(t, err)
			require.Len(t, tr.Rows, 3)
			assert.Equal(t, tc.want, tr.Rows[2].CV)
		})
	}
}

func TestRunMonoGate(t *testing.T) {
	tr, err := run(t, `
		channels(4, 1)
		gate(0, true)
		for ch = 0, 3 do cv(ch, 10 + ch) end
		pulse(5)
	`)
	require.NoError(t, err)
	require.Len(t, tr.Rows, 5)
	assert.Equal(t, []float32{10, 11, 12, 13, 10}, tr.CV())
	assert.Equal(t, []float32{10, 10, 10, 10, 10}, tr.Gates())
}

func TestRunSecondary(t *testing.T) {
	_, err := run(t, `
		channels(2, 2, 1)
		cv2(0, 303)
		cv(0, 1) cv(1, 2)
		gate(0, true) gate(1, true)
		local _, aux = pulse()
		expect(aux == 303, "mono CV2 feeds every lane")
		_, aux = pulse()
		expect(aux == 303, "mono CV2 feeds every lane")
	`)
	assert.NoError(t, err)
}

func TestRunOut(t *testing.T) {
	_, err := run(t, `
		channels(2)
		local v, _, g, ptr = out()
		expect(v == 0 and g == 0 and ptr == -1, "idle before any clock")
		cv(0, 1) gate(0, true)
		pulse()
		v, _, g, ptr = out()
		expect(v == 1 and g == 10 and ptr == 0)
	`)
	assert.NoError(t, err)
}

func TestRunParametersByName(t *testing.T) {
	_, err := run(t, `
		set("length", "2 steps")
		set("Reset Mode", "queued")
		set("hold", "on")
		expect(get("Length") == "2 steps", get("Length"))
		expect(get("reset mode") == "Deferred", get("reset mode"))
		expect(get("Hold") == "On")
	`)
	require.NoError(t, err)

	_, err = run(t, `set("tempo", "120")`)
	assert.Error(t, err)
	_, err = run(t, `set("length", "lots")`)
	assert.Error(t, err)
}

func TestRunExpectationFailure(t *testing.T) {
	tr, err := run(t, `
		channels(1)
		cv(0, 4) gate(0, true)
		pulse()
		expect(pulse() == 5, "wrong note")
		pulse()
	`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpectation)
	assert.Contains(t, err.Error(), "wrong note")
	require.NotNil(t, tr)
	assert.Len(t, tr.Rows, 2, "trace stops at the failure")
}

func TestRunScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"syntax", `channels(`},
		{"runtime", `undefined_function()`},
		{"channel range", `gate(16, true)`},
		{"bad voltage", `cv(0, "loud")`},
		{"reset mode", `reset_mode("sideways")`},
		{"length", `length(-1)`},
		{"negative step", `step(-1)`},
		{"no os library", `os.exit(1)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.script)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrExpectation)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(dsp.SampleRate44k1).Run(ctx, "cancelled", `step(100000)`)
	assert.Error(t, err)
}

func TestRunInvalidSampleRate(t *testing.T) {
	_, err := NewRunner(0).Run(context.Background(), "bad rate", `step()`)
	assert.Error(t, err)
}

func TestRunProfiler(t *testing.T) {
	r := NewRunner(dsp.SampleRate48k)
	r.BlockSize = 32
	r.Profiler = debug.NewProfiler()

	_, err := r.Run(context.Background(), "profiled", `step(100) pulse(3)`)
	require.NoError(t, err)

	m, ok := r.Profiler.Get(ProcessSection)
	require.True(t, ok)
	assert.Equal(t, uint64(106), m.Samples)
	assert.Equal(t, uint64(4+3), m.Count, "100 samples take 4 blocks of 32")
}

func TestTraceCSV(t *testing.T) {
	tr := &Trace{
		Name: "demo",
		Rows: []Row{
			{Sample: 2, Call: "pulse", Clock: 10, CV: 1.5, Gate: 10, Pointer: 0, Notes: 2},
			{Sample: 4, Call: "pulse", Clock: 10, CV: -0.25, Gate: 10, Pointer: 1, Notes: 2},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tr.WriteCSV(&buf, true))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, CSVHeader, recs[0])
	assert.Equal(t, []string{"demo", "2", "pulse", "10", "1.5", "0", "10", "0", "2"}, recs[1])
	assert.Equal(t, "-0.25", recs[2][4])

	buf.Reset()
	require.NoError(t, tr.WriteCSV(&buf, false))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestTraceTable(t *testing.T) {
	tr := &Trace{
		Name:       "demo",
		SampleRate: 44100,
		Samples:    2,
		Rows:       []Row{{Sample: 2, Call: "pulse", Clock: 10, CV: 3, Gate: 10}},
	}

	var buf bytes.Buffer
	require.NoError(t, tr.WriteTable(&buf))
	out := buf.String()
	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "44100 Hz")
	assert.Contains(t, out, "pulse")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}
