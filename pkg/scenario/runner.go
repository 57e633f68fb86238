package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/justyntemme/cvarp/pkg/arp"
	"github.com/justyntemme/cvarp/pkg/dsp"
	"github.com/justyntemme/cvarp/pkg/framework/debug"
)

// ErrExpectation is returned when a script's expect call fails.
var ErrExpectation = errors.New("expectation failed")

// ProcessSection is the profiler section timing each processed block.
const ProcessSection = "process"

// DefaultBlockSize is the block size used when a Runner has none.
const DefaultBlockSize = 64

// Runner executes scenarios. A Runner may be shared by goroutines; each
// Run gets its own module and Lua state.
type Runner struct {
	SampleRate float64
	BlockSize  int
	Logger     *debug.Logger
	Profiler   *debug.Profiler // optional
}

// NewRunner creates a runner at sampleRate with the default block size.
func NewRunner(sampleRate float64) *Runner {
	return &Runner{
		SampleRate: sampleRate,
		BlockSize:  DefaultBlockSize,
		Logger:     debug.Default(),
	}
}

// RunFile loads and runs the script at path, named after its file.
func (r *Runner) RunFile(ctx context.Context, path string) (*Trace, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return r.Run(ctx, name, string(src))
}

// Run executes script and returns the trace recorded up to the point it
// stopped. A failed expect call yields an error wrapping ErrExpectation.
func (r *Runner) Run(ctx context.Context, name, script string) (*Trace, error) {
	s, err := r.newSession(ctx, name)
	if err != nil {
		return nil, err
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)

	if err := openLibs(L); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	s.register(L)

	fn, err := L.Load(strings.NewReader(script), name)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	L.Push(fn)
	err = L.PCall(0, lua.MultRet, nil)

	switch {
	case s.failure != "":
		r.logger().Warn("scenario %s failed at sample %d: %s", name, s.sample, s.failure)
		return s.trace, fmt.Errorf("scenario %s: %w: %s", name, ErrExpectation, s.failure)
	case err != nil:
		return s.trace, fmt.Errorf("scenario %s: %w", name, err)
	}

	r.logger().Debug("scenario %s: %d samples, %d rows", name, s.sample, len(s.trace.Rows))
	return s.trace, nil
}

func (r *Runner) newSession(ctx context.Context, name string) (*session, error) {
	block := r.BlockSize
	if block < dsp.MinBufferSize {
		block = DefaultBlockSize
	}

	m := arp.NewModule()
	if err := m.Initialize(r.SampleRate, block); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	m.Engine().SetLogger(r.logger().With(name))

	return &session{
		goctx:    ctx,
		module:   m,
		pctx:     m.NewContext(),
		profiler: r.Profiler,
		trace:    &Trace{Name: name, SampleRate: r.SampleRate},
	}, nil
}

func (r *Runner) logger() *debug.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return debug.Default()
}

// openLibs loads the side-effect free standard libraries only.
func openLibs(L *lua.LState) error {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("open %s library: %w", lib.name, err)
		}
	}
	return nil
}
