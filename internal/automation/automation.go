package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/mnyrenius/awesome-audio-plugins/plugin/param"
)

// ErrScript wraps every failure raised while loading or running a script.
var ErrScript = errors.New("automation: script failed")

// Engine binds a parameter set to the Lua globals.
type Engine struct {
	params *param.Set
	logger *slog.Logger
}

// NewEngine returns an engine driving params. A nil logger discards output.
func NewEngine(params *param.Set, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{params: params, logger: logger}
}

// RunFile loads and runs the script at path until it returns or ctx is
// cancelled. Cancellation is not an error.
func (e *Engine) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScript, err)
	}
	return e.RunString(ctx, path, string(src))
}

// RunString runs src, using name in error messages.
func (e *Engine) RunString(ctx context.Context, name, src string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)
	e.install(ctx, L)

	fn, err := L.LoadString(src)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScript, name, err)
	}

	e.logger.Info("automation started", "script", name)
	L.Push(fn)
	err = L.PCall(0, lua.MultRet, nil)
	if ctx.Err() != nil {
		e.logger.Info("automation stopped", "script", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScript, name, err)
	}
	e.logger.Info("automation finished", "script", name)
	return nil
}

func (e *Engine) install(ctx context.Context, L *lua.LState) {
	L.SetGlobal("set", L.NewFunction(e.luaSet))
	L.SetGlobal("get", L.NewFunction(e.luaGet))
	L.SetGlobal("reset", L.NewFunction(e.luaReset))
	L.SetGlobal("params", L.NewFunction(e.luaParams))
	L.SetGlobal("log", L.NewFunction(e.luaLog))
	L.SetGlobal("sleep", L.NewFunction(func(L *lua.LState) int {
		ms := float64(L.CheckNumber(1))
		if ms <= 0 {
			return 0
		}
		timer := time.NewTimer(time.Duration(ms * float64(time.Millisecond)))
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
		return 0
	}))
}

func (e *Engine) lookup(L *lua.LState, arg int) *param.Param {
	name := L.CheckString(arg)
	p, err := e.params.Lookup(name)
	if err != nil {
		L.ArgError(arg, err.Error())
	}
	return p
}

func (e *Engine) luaSet(L *lua.LState) int {
	p := e.lookup(L, 1)
	v := p.Set(float32(L.CheckNumber(2)))
	e.logger.Debug("automation set", "param", p.Name(), "value", v)
	L.Push(lua.LNumber(v))
	return 1
}

func (e *Engine) luaGet(L *lua.LState) int {
	p := e.lookup(L, 1)
	L.Push(lua.LNumber(p.Get()))
	return 1
}

func (e *Engine) luaReset(L *lua.LState) int {
	if L.GetTop() == 0 {
		e.params.Reset()
		return 0
	}
	e.lookup(L, 1).Reset()
	return 0
}

func (e *Engine) luaParams(L *lua.LState) int {
	tbl := L.NewTable()
	for _, name := range e.params.Names() {
		tbl.Append(lua.LString(name))
	}
	L.Push(tbl)
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	e.logger.Info("script", "msg", strings.Join(parts, " "))
	return 0
}
