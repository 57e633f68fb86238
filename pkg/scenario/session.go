package scenario

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/justyntemme/cvarp/pkg/arp"
	"github.com/justyntemme/cvarp/pkg/dsp"
	"github.com/justyntemme/cvarp/pkg/framework/debug"
	"github.com/justyntemme/cvarp/pkg/framework/process"
)

// session is the state one script manipulates.
type session struct {
	goctx    context.Context
	module   *arp.Module
	pctx     *process.Context
	profiler *debug.Profiler
	trace    *Trace

	channels     int
	gateChannels int
	cv2Channels  int
	cv           [dsp.MaxChannels]float32
	cv2          [dsp.MaxChannels]float32
	gate         [dsp.MaxChannels]float32
	clock        float32
	reset        float32

	sample  int
	last    arp.Output
	failure string
}

func (s *session) register(L *lua.LState) {
	for name, fn := range map[string]lua.LGFunction{
		"channels":   s.luaChannels,
		"cv":         s.luaCV,
		"cv2":        s.luaCV2,
		"gate":       s.luaGate,
		"clock":      s.luaClock,
		"reset":      s.luaReset,
		"hold":       s.luaHold,
		"delay":      s.luaDelay,
		"reset_mode": s.luaResetMode,
		"length":     s.luaLength,
		"refractory": s.luaRefractory,
		"set":        s.luaSet,
		"get":        s.luaGet,
		"step":       s.luaStep,
		"pulse":      s.luaPulse,
		"out":        s.luaOut,
		"notes":      s.luaNotes,
		"expect":     s.luaExpect,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

// voltage reads argument n as a number, or a boolean gate level.
func voltage(L *lua.LState, n int) float32 {
	switch v := L.Get(n).(type) {
	case lua.LBool:
		if v {
			return dsp.GateHigh
		}
		return dsp.GateLow
	case lua.LNumber:
		return float32(v)
	}
	L.ArgError(n, "number or boolean expected")
	return 0
}

func channel(L *lua.LState, n int) int {
	ch := L.CheckInt(n)
	if ch < 0 || ch >= dsp.MaxChannels {
		L.ArgError(n, fmt.Sprintf("channel must be 0..%d", dsp.MaxChannels-1))
	}
	return ch
}

func (s *session) luaChannels(L *lua.LState) int {
	n := L.CheckInt(1)
	s.channels = n
	s.gateChannels = L.OptInt(2, n)
	s.cv2Channels = L.OptInt(3, n)
	return 0
}

func (s *session) luaCV(L *lua.LState) int {
	s.cv[channel(L, 1)] = voltage(L, 2)
	return 0
}

func (s *session) luaCV2(L *lua.LState) int {
	s.cv2[channel(L, 1)] = voltage(L, 2)
	return 0
}

func (s *session) luaGate(L *lua.LState) int {
	s.gate[channel(L, 1)] = voltage(L, 2)
	return 0
}

func (s *session) luaClock(L *lua.LState) int {
	s.clock = voltage(L, 1)
	return 0
}

func (s *session) luaReset(L *lua.LState) int {
	s.reset = voltage(L, 1)
	return 0
}

func (s *session) setParam(id uint32, plain float64) {
	if p := s.module.Parameters().Get(id); p != nil {
		p.SetPlainValue(plain)
	}
}

func (s *session) luaHold(L *lua.LState) int {
	s.setParam(arp.ParamHold, onOff(L.CheckBool(1)))
	return 0
}

func (s *session) luaDelay(L *lua.LState) int {
	s.setParam(arp.ParamGateDelay, onOff(L.CheckBool(1)))
	return 0
}

func (s *session) luaResetMode(L *lua.LState) int {
	p := s.module.Parameters().Get(arp.ParamResetMode)
	v, err := p.ParseValue(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	p.SetValue(v)
	return 0
}

func (s *session) luaLength(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 || n > arp.MaxLength {
		L.ArgError(1, fmt.Sprintf("length must be 0..%d", arp.MaxLength))
	}
	s.setParam(arp.ParamLength, float64(n))
	return 0
}

func (s *session) luaRefractory(L *lua.LState) int {
	s.setParam(arp.ParamResetSuppress, float64(L.CheckNumber(1)))
	return 0
}

func (s *session) luaSet(L *lua.LState) int {
	p := s.module.Parameters().Lookup(L.CheckString(1))
	if p == nil {
		L.ArgError(1, "unknown parameter")
		return 0
	}
	v, err := p.ParseValue(L.CheckString(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	p.SetValue(v)
	return 0
}

func (s *session) luaGet(L *lua.LState) int {
	p := s.module.Parameters().Lookup(L.CheckString(1))
	if p == nil {
		L.ArgError(1, "unknown parameter")
		return 0
	}
	L.Push(lua.LString(p.FormatValue(p.GetValue())))
	return 1
}

func (s *session) luaStep(L *lua.LState) int {
	n := L.OptInt(1, 1)
	if n < 0 {
		L.ArgError(1, "sample count must not be negative")
	}
	clock := s.clock
	s.run(L, n, func(int) float32 { return clock })
	s.record("step")
	return s.pushOutput(L)
}

func (s *session) luaPulse(L *lua.LState) int {
	n := L.OptInt(1, 1)
	if n < 0 {
		L.ArgError(1, "pulse count must not be negative")
	}
	for i := 0; i < n; i++ {
		s.run(L, 2, func(j int) float32 {
			if j == 0 {
				return dsp.GateLow
			}
			return dsp.GateHigh
		})
		s.clock = dsp.GateHigh
		s.record("pulse")
	}
	return s.pushOutput(L)
}

func (s *session) luaOut(L *lua.LState) int {
	s.pushOutput(L)
	L.Push(lua.LNumber(s.module.Engine().Pointer()))
	return 4
}

func (s *session) luaNotes(L *lua.LState) int {
	L.Push(lua.LNumber(s.module.Engine().Sequence().Len()))
	return 1
}

func (s *session) luaExpect(L *lua.LState) int {
	if L.ToBool(1) {
		return 0
	}
	s.failure = fmt.Sprintf("%s (sample %d, cv %g, gate %g)",
		L.OptString(2, "expect"), s.sample, s.last.Primary, s.last.Gate)
	L.RaiseError("%s", s.failure)
	return 0
}

func (s *session) pushOutput(L *lua.LState) int {
	L.Push(lua.LNumber(s.last.Primary))
	L.Push(lua.LNumber(s.last.Secondary))
	L.Push(lua.LNumber(s.last.Gate))
	return 3
}

// run processes n samples in blocks, with the clock level of each sample
// given by clock.
func (s *session) run(L *lua.LState, n int, clock func(i int) float32) {
	ctx := s.pctx
	for done := 0; done < n; {
		if err := s.goctx.Err(); err != nil {
			L.RaiseError("%v", err)
			return
		}

		k := min(n-done, ctx.MaxSamples())
		ctx.SetNumSamples(k)
		s.fill(k, done, clock)

		stop := func() {}
		if s.profiler != nil {
			stop = s.profiler.Start(ProcessSection, k)
		}
		s.module.ProcessAudio(ctx)
		stop()

		s.last = arp.Output{
			Primary:   ctx.OutCV[k-1],
			Secondary: ctx.OutCV2[k-1],
			Gate:      ctx.OutGate[k-1],
		}
		done += k
		s.sample += k
	}
}

func (s *session) fill(k, offset int, clock func(i int) float32) {
	ctx := s.pctx
	ctx.CV.SetChannels(s.channels)
	ctx.CV2.SetChannels(s.cv2Channels)
	ctx.Gate.SetChannels(s.gateChannels)

	for ch := 0; ch < dsp.MaxChannels; ch++ {
		ctx.CV.Fill(ch, s.cv[ch])
		ctx.CV2.Fill(ch, s.cv2[ch])
		ctx.Gate.Fill(ch, s.gate[ch])
	}
	ctx.Reset.Fill(0, s.reset)
	for i := 0; i < k; i++ {
		ctx.Clock.Set(0, i, clock(offset+i))
	}
}

func (s *session) record(call string) {
	e := s.module.Engine()
	s.trace.Samples = s.sample
	s.trace.Rows = append(s.trace.Rows, Row{
		Sample:  s.sample,
		Call:    call,
		Clock:   s.clock,
		CV:      s.last.Primary,
		CV2:     s.last.Secondary,
		Gate:    s.last.Gate,
		Pointer: e.Pointer(),
		Notes:   e.Sequence().Len(),
	})
}

func onOff(on bool) float64 {
	if on {
		return 1
	}
	return 0
}
